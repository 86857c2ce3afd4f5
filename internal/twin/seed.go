package twin

import (
	"fmt"
	"strings"

	"github.com/simplecom/storefront-e2e/internal/models"
)

// Account is a seeded login
type Account struct {
	Email    string
	Password string
	Name     string
}

// SeedOptions names the accounts the store starts with
type SeedOptions struct {
	Admin Account
	User  Account
}

var seedCategories = []models.Category{
	{ID: 1, Name: "Electronics"},
	{ID: 2, Name: "Books"},
	{ID: 3, Name: "Clothing"},
	{ID: 4, Name: "Home"},
}

var seedProducts = []struct {
	name     string
	price    float64
	stock    int
	category int
}{
	{"Wireless Headphones", 89.99, 50, 1},
	{"Mechanical Keyboard", 129.50, 35, 1},
	{"USB-C Hub", 39.99, 120, 1},
	{"Smart Watch", 199.00, 25, 1},
	{"Bluetooth Speaker", 59.95, 60, 1},
	{"Webcam HD", 49.99, 40, 1},
	{"Go Programming Guide", 34.99, 80, 2},
	{"Distributed Systems Handbook", 54.00, 30, 2},
	{"Mystery Novel", 12.99, 200, 2},
	{"Cookbook Classics", 24.50, 75, 2},
	{"History of Computing", 29.99, 45, 2},
	{"Poetry Collection", 9.99, 90, 2},
	{"Cotton T-Shirt", 19.99, 150, 3},
	{"Denim Jacket", 79.00, 40, 3},
	{"Running Shoes", 99.99, 55, 3},
	{"Wool Scarf", 22.00, 70, 3},
	{"Rain Coat", 64.50, 30, 3},
	{"Baseball Cap", 15.00, 110, 3},
	{"Ceramic Mug", 11.99, 140, 4},
	{"Desk Lamp", 45.00, 35, 4},
	{"Throw Pillow", 18.75, 85, 4},
	{"Cast Iron Pan", 42.99, 28, 4},
	{"Wall Clock", 27.50, 48, 4},
	{"Plant Pot", 14.25, 95, 4},
}

// Seed loads categories, the catalog, both accounts and one pending order for the user
func Seed(s *Store, opts SeedOptions) error {
	for _, c := range seedCategories {
		s.AddCategory(c)
	}

	for _, p := range seedProducts {
		_, err := s.CreateProduct(models.Product{
			Name:        p.name,
			Description: fmt.Sprintf("A dependable %s for everyday use.", strings.ToLower(p.name)),
			Price:       p.price,
			Stock:       p.stock,
			CategoryID:  p.category,
			ImageURL:    "https://example.com/images/" + slug(p.name) + ".jpg",
		})
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
	}

	if _, err := s.Register(opts.Admin.Email, opts.Admin.Password, opts.Admin.Name, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	user, err := s.Register(opts.User.Email, opts.User.Password, opts.User.Name, models.RoleUser)
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	if _, err := s.AddToCart(user.ID, 1, 1); err != nil {
		return fmt.Errorf("failed to seed order: %w", err)
	}
	if _, err := s.PlaceOrder(user.ID); err != nil {
		return fmt.Errorf("failed to seed order: %w", err)
	}
	return nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
