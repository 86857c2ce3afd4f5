package fixtures

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/simplecom/storefront-e2e/internal/api"
)

// CreateProducts creates every payload concurrently and returns their ids in input order.
// The first failure cancels the remaining calls.
func CreateProducts(ctx context.Context, products api.ProductAPI, adminToken string, payloads []api.ProductPayload) ([]int, error) {
	ids := make([]int, len(payloads))
	g, ctx := errgroup.WithContext(ctx)

	for i, payload := range payloads {
		g.Go(func() error {
			resp, err := products.Create(ctx, adminToken, payload)
			if err != nil {
				return fmt.Errorf("failed to create product %q: %w", payload.Name, err)
			}
			if err := expect("create product "+payload.Name, resp, http.StatusCreated); err != nil {
				return err
			}

			var created api.Product
			if err := resp.JSON(&created); err != nil {
				return fmt.Errorf("failed to create product %q: %w", payload.Name, err)
			}
			ids[i] = created.ID
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateTestProducts creates n fixed-price, high-stock products in categoryID
func CreateTestProducts(ctx context.Context, products api.ProductAPI, adminToken string, categoryID, n int) ([]int, error) {
	payloads := make([]api.ProductPayload, n)
	for i := range payloads {
		payloads[i] = TestProduct(categoryID)
	}
	return CreateProducts(ctx, products, adminToken, payloads)
}

// ResetCart empties the cart of the token's owner
func ResetCart(ctx context.Context, cart api.CartAPI, token string) error {
	resp, err := cart.Clear(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return expect("clear cart", resp, http.StatusNoContent)
}

// PlaceOrder resets the cart, adds quantity of productID and checks out
func PlaceOrder(ctx context.Context, cart api.CartAPI, orders api.OrderAPI, token string, productID, quantity int) (api.Order, error) {
	if err := ResetCart(ctx, cart, token); err != nil {
		return api.Order{}, err
	}

	resp, err := cart.AddItem(ctx, token, api.CartItemRef{ProductID: productID, Quantity: quantity})
	if err != nil {
		return api.Order{}, fmt.Errorf("failed to add product %d to cart: %w", productID, err)
	}
	if err := expect(fmt.Sprintf("add product %d to cart", productID), resp, http.StatusCreated); err != nil {
		return api.Order{}, err
	}

	resp, err = orders.Create(ctx, token)
	if err != nil {
		return api.Order{}, fmt.Errorf("failed to create order: %w", err)
	}
	if err := expect("create order", resp, http.StatusCreated); err != nil {
		return api.Order{}, err
	}

	var order api.Order
	if err := resp.JSON(&order); err != nil {
		return api.Order{}, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}
