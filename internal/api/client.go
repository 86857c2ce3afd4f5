package api

// Client groups the four resource facades over one shared transport.
type Client struct {
	Auth     AuthAPI
	Cart     CartAPI
	Orders   OrderAPI
	Products ProductAPI
}

// NewClient builds every facade on transport
func NewClient(transport Transport) *Client {
	return &Client{
		Auth:     NewAuthClient(transport),
		Cart:     NewCartClient(transport),
		Orders:   NewOrderClient(transport),
		Products: NewProductClient(transport),
	}
}
