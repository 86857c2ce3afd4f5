package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simplecom/storefront-e2e/internal/fixtures"
)

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"e2e.example.com", "%@e2e.example.com"},
		{"under_score.io", `%@under\_score.io`},
		{"100%.test", `%@100\%.test`},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := EmailPattern(tt.domain); got != tt.want {
				t.Errorf("EmailPattern(%q) = %q, want %q", tt.domain, got, tt.want)
			}
		})
	}
}

func TestProductPatterns(t *testing.T) {
	// GIVEN the default markers plus an empty prefix
	prefixes := append(fixtures.TestDataMarkers().ProductPrefixes, "", `C:\_`)

	// WHEN
	got := ProductPatterns(prefixes)

	// THEN every prefix is escaped and anchored at the start
	want := []string{"Test Product %", "Delete Me %", `C:\\\_%`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ProductPatterns() mismatch (-want +got):\n%s", diff)
	}
}

func TestPurgeRepository_RequiresEmailDomain(t *testing.T) {
	// GIVEN markers that would match every account
	repo := NewPurgeRepository(nil)
	markers := fixtures.Markers{ProductPrefixes: []string{"Test Product "}}

	// WHEN / THEN both operations refuse before touching the database
	if _, err := repo.Count(context.Background(), markers); !errors.Is(err, ErrNoEmailDomain) {
		t.Errorf("Count() error = %v, want ErrNoEmailDomain", err)
	}
	if _, err := repo.Purge(context.Background(), markers); !errors.Is(err, ErrNoEmailDomain) {
		t.Errorf("Purge() error = %v, want ErrNoEmailDomain", err)
	}
}

func TestPurgeCounts_Total(t *testing.T) {
	c := PurgeCounts{CartItems: 1, OrderItems: 2, Orders: 3, Users: 4, Products: 5}
	if c.Total() != 15 {
		t.Errorf("Total() = %d, want 15", c.Total())
	}
}
