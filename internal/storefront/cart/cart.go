// Package cart holds a shopper's selections for one store between visits.
// Lines are keyed by variant so the same product in the same size and color
// merges instead of duplicating.
package cart

import (
	"encoding/json"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

// Sentinels used in variant keys when a product has no size or color axis.
const (
	noSize  = "no-size"
	noColor = "no-color"
)

const cartKeyPrefix = "mywabiz_cart_"

// VariantKey derives the stable identity of a cart line. Two additions with
// the same key merge into one line.
func VariantKey(productID, size, color string) string {
	if size == "" {
		size = noSize
	}
	if color == "" {
		color = noColor
	}
	return productID + "_" + size + "_" + color
}

// Line is one distinct purchasable selection. Price and name are snapshots
// of the product at add time; the server reprices on submission.
type Line struct {
	VariantKey string `json:"variant_key"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

// Cart is the store-scoped line collection. Every mutation persists the
// full line list under the store's key.
type Cart struct {
	storeSlug string
	storage   Storage
	lines     []Line
}

// Open loads the cart persisted for a store slug. A missing or unreadable
// entry yields an empty cart, never an error.
func Open(storeSlug string, storage Storage) *Cart {
	c := &Cart{storeSlug: storeSlug, storage: storage}
	raw, err := storage.Read(c.key())
	if err != nil || len(raw) == 0 {
		return c
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return c
	}
	c.lines = lines
	return c
}

func (c *Cart) key() string {
	return cartKeyPrefix + c.storeSlug
}

// AddItem puts a product selection in the cart. An existing line with the
// same variant key has its quantity incremented; otherwise a new line
// snapshots the product's current price, name and image.
func (c *Cart) AddItem(p domain.Product, size, color string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	key := VariantKey(p.ID, size, color)
	for i := range c.lines {
		if c.lines[i].VariantKey == key {
			c.lines[i].Quantity += quantity
			return c.persist()
		}
	}
	c.lines = append(c.lines, Line{
		VariantKey: key,
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   quantity,
		Size:       size,
		Color:      color,
		ImageURL:   p.ThumbnailURL,
	})
	return c.persist()
}

// RemoveItem deletes a line. Removing an absent key is a no-op.
func (c *Cart) RemoveItem(variantKey string) error {
	for i := range c.lines {
		if c.lines[i].VariantKey == variantKey {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

// UpdateQuantity overwrites a line's quantity. Anything below one removes
// the line; zero-quantity lines never persist.
func (c *Cart) UpdateQuantity(variantKey string, quantity int) error {
	if quantity < 1 {
		return c.RemoveItem(variantKey)
	}
	for i := range c.lines {
		if c.lines[i].VariantKey == variantKey {
			c.lines[i].Quantity = quantity
			return c.persist()
		}
	}
	return nil
}

// Clear empties the cart and removes its persisted entry.
func (c *Cart) Clear() error {
	c.lines = nil
	return c.storage.Delete(c.key())
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal sums price times quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// ItemCount sums the quantities over all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) persist() error {
	raw, err := json.Marshal(c.lines)
	if err != nil {
		return err
	}
	return c.storage.Write(c.key(), raw)
}
