// Package catalog defines the record types held in memory by the repository:
// products, clients, and the orders owned by each client.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are never mutated after load.
type Product struct {
	Code  int             `json:"code"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}

// Client is an ordering organization. ContactPerson is the only field
// mutated during a run; Orders holds the client's orders in load order.
type Client struct {
	Code          int     `json:"code"`
	Organization  string  `json:"organization"`
	ContactPerson string  `json:"contact_person"`
	Address       string  `json:"address"`
	Orders        []Order `json:"orders,omitempty"`
}

// Order references a product and a client by code. The product code is
// not resolved against the catalog; a dangling reference simply never
// matches a product query.
type Order struct {
	ProductCode int       `json:"product_code"`
	ClientCode  int       `json:"client_code"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
}
