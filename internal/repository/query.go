package repository

import (
	"golang.org/x/text/cases"

	"github.com/avolkov/orderdesk/internal/catalog"
)

// foldEqual compares two strings case-insensitively using Unicode case
// folding, so localized names (the original data set is Cyrillic)
// match correctly.
func foldEqual(a, b string) bool {
	f := cases.Fold()
	return f.String(a) == f.String(b)
}

// ClientRef is the client view carried in query results: identity and
// contact only, without the client's full order book.
type ClientRef struct {
	Code          int    `json:"code"`
	Organization  string `json:"organization"`
	ContactPerson string `json:"contact_person"`
}

// ClientSales pairs a client with its orders for one product.
type ClientSales struct {
	Client ClientRef       `json:"client"`
	Orders []catalog.Order `json:"orders"`
}

// ProductSales is the result of a clients-by-product query: the
// matched product and every client that ordered it, in load order.
type ProductSales struct {
	Product catalog.Product `json:"product"`
	Clients []ClientSales   `json:"clients"`
}

// ClientsByProduct finds the first product whose name matches
// case-insensitively (exact, not substring) and returns every client
// holding at least one order for it. ok is false when no product has
// that name; a matched product with no orders yields an empty Clients
// slice. Clients and orders keep their load order.
func (r *Repository) ClientsByProduct(name string) (ProductSales, bool) {
	var product *catalog.Product
	for i := range r.products {
		if foldEqual(r.products[i].Name, name) {
			product = &r.products[i]
			break
		}
	}
	if product == nil {
		return ProductSales{}, false
	}

	result := ProductSales{Product: *product}
	for _, c := range r.clients {
		var matched []catalog.Order
		for _, o := range c.Orders {
			if o.ProductCode == product.Code {
				matched = append(matched, o)
			}
		}
		if len(matched) > 0 {
			ref := ClientRef{Code: c.Code, Organization: c.Organization, ContactPerson: c.ContactPerson}
			result.Clients = append(result.Clients, ClientSales{Client: ref, Orders: matched})
		}
	}
	return result, true
}

// GoldenClient is the client with the most orders in a period.
type GoldenClient struct {
	Organization string `json:"organization"`
	OrderCount   int    `json:"order_count"`
}

// GoldenClient returns the client with the most orders dated in the
// given year and month. Ties go to the client loaded first. ok is
// false when no client has any order in the period; a zero-order
// "winner" is never reported. Out-of-range months simply match no
// orders.
func (r *Repository) GoldenClient(year, month int) (GoldenClient, bool) {
	var best *catalog.Client
	bestCount := 0
	for _, c := range r.clients {
		count := 0
		for _, o := range c.Orders {
			if o.Date.Year() == year && int(o.Date.Month()) == month {
				count++
			}
		}
		// Strict comparison keeps the first client on ties.
		if count > bestCount {
			best = c
			bestCount = count
		}
	}
	if best == nil {
		return GoldenClient{}, false
	}
	return GoldenClient{Organization: best.Organization, OrderCount: bestCount}, true
}
