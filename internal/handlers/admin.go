package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/simplecom/storefront-e2e/internal/models"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

// Admin tabs
const (
	tabOrders   = "orders"
	tabProducts = "products"
)

// adminOrder is an order card with its customer resolved
type adminOrder struct {
	models.Order
	Customer string
}

// adminData backs the admin dashboard
type adminData struct {
	Tab        string
	Orders     []adminOrder
	Statuses   []models.OrderStatus
	Products   []models.Product
	Categories []models.Category
}

// Admin renders the dashboard on the requested tab, orders by default
func (u *UI) Admin(w http.ResponseWriter, r *http.Request) {
	data := adminData{Tab: tabOrders}
	if r.URL.Query().Get("tab") == tabProducts {
		data.Tab = tabProducts
	}

	switch data.Tab {
	case tabProducts:
		data.Products = u.store.ListProducts(twin.ProductQuery{SortBy: twin.SortNewest, Limit: twin.MaxPageSize}).Items
		data.Categories = u.store.Categories()
	default:
		data.Statuses = models.OrderStatuses
		for _, o := range u.store.AllOrders() {
			card := adminOrder{Order: o}
			if customer, err := u.store.User(o.UserID); err == nil {
				card.Customer = customer.Email
			}
			data.Orders = append(data.Orders, card)
		}
	}

	u.render(w, r, http.StatusOK, "admin", pageData{Title: "Admin", Data: data})
}

// UpdateOrderStatus applies a status button. Pressing the current status changes nothing.
func (u *UI) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	back := "/admin?tab=" + tabOrders
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	status, err := models.ParseOrderStatus(r.FormValue("status"))
	if err != nil {
		redirectWithError(w, r, back, err)
		return
	}

	if u.currentStatus(id) == status {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	order, err := u.store.UpdateOrderStatus(id, status)
	if err != nil {
		if errors.Is(err, twin.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		redirectWithError(w, r, back, err)
		return
	}

	log.Printf("Order %s moved to %s", order.Reference, order.Status)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (u *UI) currentStatus(orderID int) models.OrderStatus {
	for _, o := range u.store.AllOrders() {
		if o.ID == orderID {
			return o.Status
		}
	}
	return ""
}

// CreateProduct handles the Add Product form
func (u *UI) CreateProduct(w http.ResponseWriter, r *http.Request) {
	back := "/admin?tab=" + tabProducts
	product, err := productFromForm(r)
	if err != nil {
		redirectWithError(w, r, back, err)
		return
	}

	created, err := u.store.CreateProduct(product)
	if err != nil {
		redirectWithError(w, r, back, err)
		return
	}

	log.Printf("Created product %d (%s)", created.ID, created.Name)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// DeleteProduct removes a product from the catalog
func (u *UI) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	back := "/admin?tab=" + tabProducts
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := u.store.DeleteProduct(id); err != nil {
		redirectWithError(w, r, back, err)
		return
	}

	log.Printf("Deleted product %d", id)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func productFromForm(r *http.Request) (models.Product, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", models.ErrInvalidPrice, r.FormValue("price"))
	}
	stock, err := strconv.Atoi(strings.TrimSpace(r.FormValue("stock")))
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", models.ErrInvalidStock, r.FormValue("stock"))
	}
	categoryID, err := strconv.Atoi(r.FormValue("category_id"))
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", twin.ErrUnknownCategory, r.FormValue("category_id"))
	}

	return models.Product{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
	}, nil
}
