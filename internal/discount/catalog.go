package discount

import (
	"strings"

	"lys-checkout/internal/model"
)

// mapCatalog implements Catalog using a map keyed by upper-case code.
type mapCatalog struct {
	codes map[string]*model.DiscountCode
}

// NewMapCatalog creates a new map-based catalog.
func NewMapCatalog(capacity int) Catalog {
	return &mapCatalog{
		codes: make(map[string]*model.DiscountCode, capacity),
	}
}

// NormalizeCode returns the lookup key for a code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Get returns the discount code, if present.
func (c *mapCatalog) Get(code string) (*model.DiscountCode, bool) {
	dc, ok := c.codes[NormalizeCode(code)]
	return dc, ok
}

// Size returns the number of codes in the catalog.
func (c *mapCatalog) Size() int {
	return len(c.codes)
}

// Add stores a code, replacing any existing entry with the same key.
func (c *mapCatalog) Add(dc *model.DiscountCode) {
	dc.Code = NormalizeCode(dc.Code)
	c.codes[dc.Code] = dc
}

// merge copies every entry of other into c; entries of other win.
func (c *mapCatalog) merge(other Catalog) {
	if m, ok := other.(*mapCatalog); ok {
		for k, v := range m.codes {
			c.codes[k] = v
		}
	}
}
