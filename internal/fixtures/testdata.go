// Package fixtures builds the preconditions scenarios need: generated test
// data, authenticated identities, and seeded catalog or cart state.
package fixtures

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/simplecom/storefront-e2e/internal/api"
)

// Generated data markers
const (
	ThrowawayDomain   = "e2e.example.com"
	TestProductPrefix = "Test Product "
	DeleteMePrefix    = "Delete Me "
	TestProductPrice  = 19.99
	TestProductStock  = 9999
	TestProductImage  = "https://example.com/images/test.jpg"
)

// MinPasswordLength is the shortest password the factory will emit
const MinPasswordLength = 8

const passwordLength = 12

// Markers identifies data created by the harness
type Markers struct {
	EmailDomain     string
	ProductPrefixes []string
}

// TestDataMarkers returns the markers every generator in this package stamps on its output
func TestDataMarkers() Markers {
	return Markers{
		EmailDomain:     ThrowawayDomain,
		ProductPrefixes: []string{TestProductPrefix, DeleteMePrefix},
	}
}

// RandomEmail returns first.last.<12 hex>@e2e.example.com.
// The uuid suffix keeps concurrent scenarios from colliding.
func RandomEmail() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s.%s.%s@%s", localPart(gofakeit.FirstName(), "user"), localPart(gofakeit.LastName(), "e2e"), suffix, ThrowawayDomain)
}

func localPart(s, fallback string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

// IsThrowawayEmail reports whether email was produced by RandomEmail
func IsThrowawayEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+ThrowawayDomain)
}

// RandomPassword returns a 12 character alphanumeric password
func RandomPassword() string {
	return gofakeit.Password(true, true, true, false, false, passwordLength)
}

// RandomName returns a full person name
func RandomName() string {
	return gofakeit.Name()
}

// RandomCredentials returns a complete, unique registration payload
func RandomCredentials() api.Credentials {
	return api.Credentials{
		Email:    RandomEmail(),
		Password: RandomPassword(),
		Name:     RandomName(),
	}
}

// RandomProduct returns a realistic product with a price in [10, 1000] and stock in [1, 100]
func RandomProduct(categoryID int) api.ProductPayload {
	return api.ProductPayload{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(10),
		Price:       math.Round(gofakeit.Price(10, 1000)*100) / 100,
		Stock:       gofakeit.Number(1, 100),
		CategoryID:  categoryID,
		ImageURL:    fmt.Sprintf("https://example.com/images/%s.jpg", slugify(gofakeit.ProductName())),
	}
}

// TestProduct returns a product with a fixed price and a stock no scenario can exhaust.
// Only the name is randomized.
func TestProduct(categoryID int) api.ProductPayload {
	return api.ProductPayload{
		Name:        TestProductPrefix + gofakeit.Password(true, true, true, false, false, 6),
		Description: gofakeit.Sentence(10),
		Price:       TestProductPrice,
		Stock:       TestProductStock,
		CategoryID:  categoryID,
		ImageURL:    TestProductImage,
	}
}

// IsTestProduct reports whether name carries one of the generated product prefixes
func IsTestProduct(name string) bool {
	for _, prefix := range TestDataMarkers().ProductPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
