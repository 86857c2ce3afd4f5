package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/simplecom/storefront-e2e/internal/api"
	"github.com/simplecom/storefront-e2e/internal/config"
	"github.com/simplecom/storefront-e2e/internal/fixtures"
)

// ErrSmokeFailed is returned when at least one smoke check fails
var ErrSmokeFailed = errors.New("smoke checks failed")

// SmokeCheck is one named check against the storefront API
type SmokeCheck struct {
	Name string
	Run  func(ctx context.Context) error
}

// SmokeResult is the outcome of one check
type SmokeResult struct {
	Name string
	Err  error
}

// SmokeChecks returns the checks the smoke command runs, in order
func SmokeChecks(client *api.Client, cfg config.Config) []SmokeCheck {
	return []SmokeCheck{
		{
			Name: "admin login resolves to an admin",
			Run: func(ctx context.Context) error {
				token, err := fixtures.AdminToken(ctx, client.Auth, cfg)
				if err != nil {
					return err
				}
				return expectRole(ctx, client.Auth, token, "admin")
			},
		},
		{
			Name: "product listing is reachable",
			Run: func(ctx context.Context) error {
				resp, err := client.Products.List(ctx, &api.QueryParams{Limit: api.Ptr(1)})
				if err != nil {
					return err
				}
				if !resp.OK() {
					return fmt.Errorf("unexpected status %d: %s", resp.Status(), resp.Text())
				}
				var page api.ProductPage
				if err := resp.JSON(&page); err != nil {
					return err
				}
				if page.Total == 0 {
					return errors.New("catalog is empty")
				}
				return nil
			},
		},
		{
			Name: "throwaway registration logs in as a user",
			Run: func(ctx context.Context) error {
				identity, err := fixtures.RegisterThrowaway(ctx, client.Auth)
				if err != nil {
					return err
				}
				return expectRole(ctx, client.Auth, identity.Token, "user")
			},
		},
		{
			Name: "missing token is forbidden",
			Run: func(ctx context.Context) error {
				resp, err := client.Auth.MeWithoutToken(ctx)
				return expectStatus(resp, err, http.StatusForbidden)
			},
		},
		{
			Name: "malformed token is unauthorized",
			Run: func(ctx context.Context) error {
				resp, err := client.Auth.MeWithInvalidToken(ctx)
				return expectStatus(resp, err, http.StatusUnauthorized)
			},
		},
	}
}

// RunSmoke runs every check, reports each on out and fails if any check failed
func RunSmoke(ctx context.Context, checks []SmokeCheck, out io.Writer) ([]SmokeResult, error) {
	results := make([]SmokeResult, 0, len(checks))
	failed := 0
	for _, check := range checks {
		err := check.Run(ctx)
		results = append(results, SmokeResult{Name: check.Name, Err: err})
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", check.Name, err)
			continue
		}
		fmt.Fprintf(out, "PASS  %s\n", check.Name)
	}

	log.Printf("Smoke run finished: %d passed, %d failed", len(checks)-failed, failed)
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", ErrSmokeFailed, failed, len(checks))
	}
	return results, nil
}

func expectRole(ctx context.Context, auth api.AuthAPI, token, role string) error {
	resp, err := auth.Me(ctx, token)
	if err := expectStatus(resp, err, http.StatusOK); err != nil {
		return err
	}
	var me api.User
	if err := resp.JSON(&me); err != nil {
		return err
	}
	if me.Role != role {
		return fmt.Errorf("%s has role %q, want %q", me.Email, me.Role, role)
	}
	return nil
}

func expectStatus(resp *api.Response, err error, status int) error {
	if err != nil {
		return err
	}
	if resp.Status() != status {
		return fmt.Errorf("got status %d, want %d: %s", resp.Status(), status, resp.Text())
	}
	return nil
}
