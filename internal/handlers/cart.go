package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/simplecom/storefront-e2e/internal/models"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

// Cart renders the logged-in user's cart
func (u *UI) Cart(w http.ResponseWriter, r *http.Request) {
	cart := u.store.Cart(currentUser(r).ID)
	u.render(w, r, http.StatusOK, "cart", pageData{Title: "Cart", Data: cart})
}

// UpdateCartItem sets a line's quantity. Dropping to zero removes the line.
func (u *UI) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		redirectWithError(w, r, "/cart", models.ErrInvalidQuantity)
		return
	}

	userID := currentUser(r).ID
	if qty <= 0 {
		err = u.store.RemoveCartItem(userID, id)
	} else {
		_, err = u.store.UpdateCartItem(userID, id, qty)
	}
	if err != nil {
		redirectWithError(w, r, "/cart", err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// RemoveCartItem drops one line
func (u *UI) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := u.store.RemoveCartItem(currentUser(r).ID, id); err != nil {
		redirectWithError(w, r, "/cart", err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// ClearCart empties the cart
func (u *UI) ClearCart(w http.ResponseWriter, r *http.Request) {
	u.store.ClearCart(currentUser(r).ID)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Checkout turns the cart into an order and shows the order history
func (u *UI) Checkout(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	order, err := u.store.PlaceOrder(user.ID)
	if err != nil {
		if !errors.Is(err, twin.ErrEmptyCart) && !errors.Is(err, models.ErrInsufficientStock) {
			log.Printf("Error placing order for user %d: %v", user.ID, err)
		}
		redirectWithError(w, r, "/cart", err)
		return
	}

	log.Printf("Order %s placed by user %d - Total: %s", order.Reference, user.ID, order.GetFormattedTotal())
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}
