package handlers

import (
	"net/http"
)

// Orders renders the logged-in user's order history, newest first
func (u *UI) Orders(w http.ResponseWriter, r *http.Request) {
	orders := u.store.Orders(currentUser(r).ID)
	u.render(w, r, http.StatusOK, "orders", pageData{Title: "Orders", Data: orders})
}
