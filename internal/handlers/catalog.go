package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/simplecom/storefront-e2e/internal/models"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{twin.SortDefault, "Default"},
	{twin.SortPriceAsc, "Price: Low to High"},
	{twin.SortPriceDesc, "Price: High to Low"},
	{twin.SortNameAsc, "Name: A-Z"},
	{twin.SortNewest, "Newest"},
}

// catalogData backs the home screen
type catalogData struct {
	Search     string
	CategoryID int
	SortBy     string
	Categories []models.Category
	Sorts      []sortOption
	Page       twin.ProductPage
	Prev       int
	Next       int
}

// productData backs the product detail screen
type productData struct {
	Product  models.Product
	Category string
}

// Home renders the catalog with search, category filter, sort and paging
func (u *UI) Home(w http.ResponseWriter, r *http.Request) {
	q, err := twin.ParseProductQuery(r.URL.Query())
	if err != nil {
		// Garbage in the query string falls back to the unfiltered listing
		q = twin.ProductQuery{}
	}
	page := u.store.ListProducts(q)

	data := catalogData{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		SortBy:     q.SortBy,
		Categories: u.store.Categories(),
		Sorts:      sortOptions,
		Page:       page,
	}
	if page.Page > 1 {
		data.Prev = page.Page - 1
	}
	if page.Page < page.Pages {
		data.Next = page.Page + 1
	}

	u.render(w, r, http.StatusOK, "home", pageData{Title: "Products", Data: data})
}

// ProductDetail renders one product
func (u *UI) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	product, err := u.store.Product(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := productData{Product: product}
	if category, ok := u.store.Category(product.CategoryID); ok {
		data.Category = category.Name
	}
	page := pageData{Title: product.Name, Data: data}
	if r.URL.Query().Get("added") != "" {
		page.Message = "Added to cart!"
	}
	u.render(w, r, http.StatusOK, "product", page)
}

// AddToCart handles the product screen's add form
func (u *UI) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := fmt.Sprintf("/products/%d", id)

	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		redirectWithError(w, r, back, models.ErrInvalidQuantity)
		return
	}

	user := currentUser(r)
	if _, err := u.store.AddToCart(user.ID, id, qty); err != nil {
		if errors.Is(err, twin.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		redirectWithError(w, r, back, err)
		return
	}

	log.Printf("User %d added %d of product %d to cart", user.ID, qty, id)
	http.Redirect(w, r, back+"?added=1", http.StatusSeeOther)
}
