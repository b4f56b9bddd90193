/*
catalog.go - Category-bucketed product catalog

PURPOSE:
  Holds the menu: products grouped under the fixed category set, in insertion
  order within each bucket. Id is the only identity key; names and prices may
  repeat freely.

ID ASSIGNMENT:
  Ids come from a monotonic counter, never wall-clock time, so two rapid adds
  can never collide. The counter is seeded from the highest persisted id when
  a catalog is rebuilt from a snapshot.

CATEGORY MOVES:
  Updating a product removes it from whichever bucket currently holds it and
  re-inserts it into the bucket named by the updated category.

SEE ALSO:
  - defaults.go: the built-in starter catalog
  - session.go: persists the catalog snapshot after every mutation
*/
package pos

import (
	"fmt"
)

// Catalog stores products bucketed by category.
type Catalog struct {
	buckets map[Category][]Product
	nextID  int64
}

// NewCatalog returns a catalog with an empty bucket per category.
func NewCatalog() *Catalog {
	buckets := make(map[Category][]Product, len(Categories))
	for _, c := range Categories {
		buckets[c] = nil
	}
	return &Catalog{buckets: buckets, nextID: 1}
}

// NewCatalogFromBuckets rebuilds a catalog from a persisted snapshot. Unknown
// categories in the snapshot are dropped; the id counter is seeded past the
// highest id seen.
func NewCatalogFromBuckets(buckets map[Category][]Product) *Catalog {
	c := NewCatalog()
	for category, products := range buckets {
		if !category.Valid() {
			continue
		}
		c.buckets[category] = append(c.buckets[category], products...)
		for _, p := range products {
			if p.ID >= c.nextID {
				c.nextID = p.ID + 1
			}
		}
	}
	return c
}

// Add validates the product, assigns the next id, and appends it to its
// category bucket. The input's ID field is ignored.
func (c *Catalog) Add(p Product) (Product, error) {
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	p.ID = c.nextID
	c.nextID++
	c.buckets[p.Category] = append(c.buckets[p.Category], p)
	return p, nil
}

// Update replaces the product with the given id. The product is removed from
// whichever bucket currently holds it and re-inserted into the bucket named
// by the updated category, so category moves are supported. An unknown id is
// a no-op.
func (c *Catalog) Update(id int64, p Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if _, ok := c.Find(id); !ok {
		return nil
	}
	c.Remove(id)
	p.ID = id
	c.buckets[p.Category] = append(c.buckets[p.Category], p)
	return nil
}

// Remove deletes the product from whichever bucket holds it. Unknown ids are
// a no-op.
func (c *Catalog) Remove(id int64) {
	for category, products := range c.buckets {
		for i, p := range products {
			if p.ID == id {
				c.buckets[category] = append(products[:i], products[i+1:]...)
				return
			}
		}
	}
}

// Find returns the product with the given id, searching all buckets.
func (c *Catalog) Find(id int64) (Product, bool) {
	for _, products := range c.buckets {
		for _, p := range products {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Product{}, false
}

// List returns the category-to-products mapping. Buckets are copied; callers
// cannot mutate catalog state through the result.
func (c *Catalog) List() map[Category][]Product {
	out := make(map[Category][]Product, len(c.buckets))
	for category, products := range c.buckets {
		dup := make([]Product, len(products))
		copy(dup, products)
		out[category] = dup
	}
	return out
}

func validateProduct(p Product) error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !p.Price.IsPositive() {
		return &ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}
	return nil
}
