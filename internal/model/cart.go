package model

import "time"

// CartItem is one product line in a shopping cart. Quantity is expressed in cartons.
type CartItem struct {
	ID       string    `json:"id"`
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// Cart is an immutable snapshot of a retailer's cart handed to the evaluator.
type Cart struct {
	Items       []CartItem `json:"items"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// BrandIDs returns the distinct brand IDs in the cart in first-seen order.
func (c Cart) BrandIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.Product.BrandID]; ok {
			continue
		}
		seen[item.Product.BrandID] = struct{}{}
		ids = append(ids, item.Product.BrandID)
	}
	return ids
}

// ProductIDs returns the product IDs of every line in the cart.
func (c Cart) ProductIDs() []string {
	ids := make([]string, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.Product.ID
	}
	return ids
}
