package fixtures

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simplecom/storefront-e2e/internal/api"
	"github.com/simplecom/storefront-e2e/internal/config"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

func newTwin(t *testing.T) (*api.Client, config.Config) {
	t.Helper()
	cfg := config.Default()
	tw, err := twin.New(twin.Options{
		JWTSecret: "fixtures-secret",
		Seed: twin.SeedOptions{
			Admin: twin.Account{Email: cfg.Admin.Email, Password: cfg.Admin.Password, Name: "Admin"},
			User:  twin.Account{Email: cfg.User.Email, Password: cfg.User.Password, Name: "User"},
		},
	})
	if err != nil {
		t.Fatalf("twin.New() error = %v", err)
	}
	srv := httptest.NewServer(tw.Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(api.NewHTTPTransport(srv.URL, srv.Client())), cfg
}

// stubAuth answers every login with a canned response
type stubAuth struct {
	api.AuthAPI
	login *api.Response
}

func (s *stubAuth) Login(context.Context, string, string) (*api.Response, error) {
	return s.login, nil
}

func TestSeedTokens(t *testing.T) {
	ctx := context.Background()
	client, cfg := newTwin(t)

	admin, err := AdminToken(ctx, client.Auth, cfg)
	if err != nil {
		t.Fatalf("AdminToken() error = %v", err)
	}
	user, err := UserToken(ctx, client.Auth, cfg)
	if err != nil {
		t.Fatalf("UserToken() error = %v", err)
	}
	if admin == "" || user == "" || admin == user {
		t.Errorf("tokens admin=%q user=%q", admin, user)
	}

	resp, err := client.Auth.Me(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	var me api.User
	if err := resp.JSON(&me); err != nil {
		t.Fatal(err)
	}
	if me.Role != "admin" {
		t.Errorf("admin token resolves to role %q", me.Role)
	}
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	client, cfg := newTwin(t)

	t.Run("wrong password is a status error", func(t *testing.T) {
		cfg := cfg
		cfg.Admin.Password = "not-the-password"

		_, err := AdminToken(ctx, client.Auth, cfg)

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("AdminToken() error = %v, want *StatusError", err)
		}
		if statusErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("StatusCode = %d, want 401", statusErr.StatusCode)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		auth := &stubAuth{login: &api.Response{StatusCode: http.StatusOK, Body: []byte(`{"token_type":"bearer"}`)}}

		_, err := Login(ctx, auth, "a@b.c", "pw")

		if !errors.Is(err, ErrEmptyToken) {
			t.Errorf("Login() error = %v, want ErrEmptyToken", err)
		}
	})
}

func TestRegisterThrowaway(t *testing.T) {
	ctx := context.Background()
	client, _ := newTwin(t)

	identity, err := RegisterThrowaway(ctx, client.Auth)
	if err != nil {
		t.Fatalf("RegisterThrowaway() error = %v", err)
	}
	if !IsThrowawayEmail(identity.Email) || identity.Token == "" {
		t.Errorf("identity = %+v", identity)
	}

	resp, err := client.Auth.Me(ctx, identity.Token)
	if err != nil {
		t.Fatal(err)
	}
	var me api.User
	if err := resp.JSON(&me); err != nil {
		t.Fatal(err)
	}
	if me.Email != identity.Email || me.Role != "user" {
		t.Errorf("me = %+v, want %s as user", me, identity.Email)
	}

	token, err := RegisterAndToken(ctx, client.Auth)
	if err != nil || token == "" || token == identity.Token {
		t.Errorf("RegisterAndToken() = %q, %v", token, err)
	}
}

func TestCreateTestProducts_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	client, cfg := newTwin(t)
	admin, err := AdminToken(ctx, client.Auth, cfg)
	if err != nil {
		t.Fatal(err)
	}

	payloads := []api.ProductPayload{TestProduct(1), TestProduct(2), RandomProduct(3), TestProduct(4)}
	ids, err := CreateProducts(ctx, client.Products, admin, payloads)
	if err != nil {
		t.Fatalf("CreateProducts() error = %v", err)
	}

	for i, id := range ids {
		resp, err := client.Products.Get(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		var p api.Product
		if err := resp.JSON(&p); err != nil {
			t.Fatal(err)
		}
		if p.Name != payloads[i].Name {
			t.Errorf("ids[%d] points at %q, want %q", i, p.Name, payloads[i].Name)
		}
	}

	more, err := CreateTestProducts(ctx, client.Products, admin, 1, 3)
	if err != nil || len(more) != 3 {
		t.Errorf("CreateTestProducts() = %v, %v", more, err)
	}
}

func TestCreateProducts_FailsForNonAdmin(t *testing.T) {
	ctx := context.Background()
	client, cfg := newTwin(t)
	user, err := UserToken(ctx, client.Auth, cfg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = CreateTestProducts(ctx, client.Products, user, 1, 2)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("CreateTestProducts(user) error = %v, want 403 StatusError", err)
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	client, cfg := newTwin(t)
	admin, _ := AdminToken(ctx, client.Auth, cfg)
	user, err := UserToken(ctx, client.Auth, cfg)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := CreateTestProducts(ctx, client.Products, admin, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	// GIVEN a cart holding an unrelated line
	if _, err := client.Cart.AddItem(ctx, user, api.CartItemRef{ProductID: 1, Quantity: 1}); err != nil {
		t.Fatal(err)
	}

	// WHEN placing an order for the test product
	order, err := PlaceOrder(ctx, client.Cart, client.Orders, user, ids[0], 3)

	// THEN only the test product is ordered and the cart is empty
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != ids[0] || order.Items[0].Quantity != 3 {
		t.Errorf("order items = %+v", order.Items)
	}
	if order.Total.Float64() != 59.97 {
		t.Errorf("Total = %v, want 59.97", order.Total)
	}

	resp, err := client.Cart.Get(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	var cart api.Cart
	if err := resp.JSON(&cart); err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart holds %d lines after checkout", len(cart.Items))
	}

	if err := ResetCart(ctx, client.Cart, user); err != nil {
		t.Errorf("ResetCart() on an empty cart error = %v", err)
	}
}
