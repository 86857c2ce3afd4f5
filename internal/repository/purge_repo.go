package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/simplecom/storefront-e2e/internal/fixtures"
)

// ErrNoEmailDomain is returned when the markers would match every account
var ErrNoEmailDomain = errors.New("purge markers have no email domain")

// PurgeCounts reports rows matched (dry run) or deleted (purge), per table
type PurgeCounts struct {
	CartItems  int64
	OrderItems int64
	Orders     int64
	Users      int64
	Products   int64
}

// Total returns the number of rows across all tables
func (c PurgeCounts) Total() int64 {
	return c.CartItems + c.OrderItems + c.Orders + c.Users + c.Products
}

// PurgeRepository removes data generated by the suite from the storefront database
type PurgeRepository struct {
	db *sql.DB
}

// NewPurgeRepository creates a new purge repository
func NewPurgeRepository(db *sql.DB) *PurgeRepository {
	return &PurgeRepository{db: db}
}

const (
	throwawayUsers  = `SELECT id FROM users WHERE email ILIKE $1`
	throwawayOrders = `SELECT id FROM orders WHERE user_id IN (` + throwawayUsers + `)`
	// Test products still referenced by a real customer's order are kept.
	purgeableProducts = `SELECT p.id FROM products p
		WHERE p.name LIKE ANY($2)
		AND NOT EXISTS (
			SELECT 1 FROM order_items oi
			WHERE oi.product_id = p.id AND oi.order_id NOT IN (` + throwawayOrders + `)
		)`
	cartItemsWhere = `user_id IN (` + throwawayUsers + `) OR product_id IN (` + purgeableProducts + `)`
)

// step is one table of the purge. Steps run in foreign key order.
type step struct {
	table  string
	where  string
	usesP2 bool
	count  func(*PurgeCounts) *int64
}

var steps = []step{
	{"cart_items", cartItemsWhere, true, func(c *PurgeCounts) *int64 { return &c.CartItems }},
	{"order_items", `order_id IN (` + throwawayOrders + `)`, false, func(c *PurgeCounts) *int64 { return &c.OrderItems }},
	{"orders", `id IN (` + throwawayOrders + `)`, false, func(c *PurgeCounts) *int64 { return &c.Orders }},
	{"users", `id IN (` + throwawayUsers + `)`, false, func(c *PurgeCounts) *int64 { return &c.Users }},
	{"products", `id IN (` + purgeableProducts + `)`, true, func(c *PurgeCounts) *int64 { return &c.Products }},
}

func (s step) args(m fixtures.Markers) []any {
	args := []any{EmailPattern(m.EmailDomain)}
	if s.usesP2 {
		args = append(args, pq.Array(ProductPatterns(m.ProductPrefixes)))
	}
	return args
}

// Count reports how many rows Purge would delete
func (r *PurgeRepository) Count(ctx context.Context, m fixtures.Markers) (PurgeCounts, error) {
	var counts PurgeCounts
	if m.EmailDomain == "" {
		return counts, ErrNoEmailDomain
	}

	for _, s := range steps {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", s.table, s.where)
		if err := r.db.QueryRowContext(ctx, query, s.args(m)...).Scan(s.count(&counts)); err != nil {
			return counts, fmt.Errorf("failed to count %s: %w", s.table, err)
		}
	}
	return counts, nil
}

// Purge deletes generated users with everything they own, then unreferenced
// test products, in one transaction
func (r *PurgeRepository) Purge(ctx context.Context, m fixtures.Markers) (PurgeCounts, error) {
	var counts PurgeCounts
	if m.EmailDomain == "" {
		return counts, ErrNoEmailDomain
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("failed to begin purge: %w", err)
	}
	defer tx.Rollback()

	for _, s := range steps {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s", s.table, s.where)
		result, err := tx.ExecContext(ctx, query, s.args(m)...)
		if err != nil {
			return PurgeCounts{}, fmt.Errorf("failed to purge %s: %w", s.table, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return PurgeCounts{}, fmt.Errorf("failed to get rows affected: %w", err)
		}
		*s.count(&counts) = n
	}

	if err := tx.Commit(); err != nil {
		return PurgeCounts{}, fmt.Errorf("failed to commit purge: %w", err)
	}

	log.Printf("Purged %d rows of generated data", counts.Total())
	return counts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EmailPattern matches every address at domain
func EmailPattern(domain string) string {
	return "%@" + likeEscaper.Replace(domain)
}

// ProductPatterns matches every name starting with one of prefixes
func ProductPatterns(prefixes []string) []string {
	patterns := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		patterns = append(patterns, likeEscaper.Replace(p)+"%")
	}
	return patterns
}
