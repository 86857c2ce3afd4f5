package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/simplecom/storefront-e2e/internal/fixtures"
	"github.com/simplecom/storefront-e2e/internal/repository"
)

// Purger removes generated test data from a storefront database
type Purger interface {
	Count(ctx context.Context, m fixtures.Markers) (repository.PurgeCounts, error)
	Purge(ctx context.Context, m fixtures.Markers) (repository.PurgeCounts, error)
}

// RunPurge deletes, or with dryRun only counts, the data carrying markers and reports it on out
func RunPurge(ctx context.Context, p Purger, m fixtures.Markers, dryRun bool, out io.Writer) (repository.PurgeCounts, error) {
	log.Printf("Purging generated data: users @%s, products %q (dry run: %t)", m.EmailDomain, m.ProductPrefixes, dryRun)

	var (
		counts repository.PurgeCounts
		err    error
		verb   = "deleted"
	)
	if dryRun {
		counts, err = p.Count(ctx, m)
		verb = "would delete"
	} else {
		counts, err = p.Purge(ctx, m)
	}
	if err != nil {
		return counts, fmt.Errorf("failed to purge test data: %w", err)
	}

	fmt.Fprintf(out, "%s:\n", verb)
	fmt.Fprintf(out, "  cart_items   %d\n", counts.CartItems)
	fmt.Fprintf(out, "  order_items  %d\n", counts.OrderItems)
	fmt.Fprintf(out, "  orders       %d\n", counts.Orders)
	fmt.Fprintf(out, "  users        %d\n", counts.Users)
	fmt.Fprintf(out, "  products     %d\n", counts.Products)
	return counts, nil
}
