package cart

import (
	"fmt"
	"sync"
	"time"
)

//
// --- Shopping Cart (in-memory, session-scoped) ---
//
// Each browsing session owns one Cart. A cart holds an ordered list of
// lines, where a line is identified by (product id + personalization
// signature): adding the same product with the same personalization merges
// into the existing line instead of duplicating it.
//

// Personalization holds the optional customization fields for a cake.
// The zero value means "no personalization".
type Personalization struct {
	Size       string `json:"size,omitempty"`       // e.g. "20 personas"
	Message    string `json:"message,omitempty"`    // text written on the cake
	GlazeColor string `json:"glazeColor,omitempty"` // frosting color
}

// Signature returns the identity key that distinguishes otherwise-identical
// product entries. An empty string means the plain, non-personalized line.
func (p Personalization) Signature() string {
	if p == (Personalization{}) {
		return ""
	}
	return p.Size + "|" + p.Message + "|" + p.GlazeColor
}

// ProductSnapshot carries the product fields a cart line copies at add time.
// Lines never re-read the catalog; price changes only affect future adds.
type ProductSnapshot struct {
	ID        int64
	Name      string
	UnitPrice int
	ImageURL  string
}

// Line is one aggregated entry in the cart.
type Line struct {
	ProductID       int64           `json:"productId"`
	Name            string          `json:"name"`
	UnitPrice       int             `json:"unitPrice"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Quantity        int             `json:"quantity"`
	Personalization Personalization `json:"personalization"`
}

// LineTotal is the derived per-line price. Never stored, recomputed on read.
func (l Line) LineTotal() int {
	return l.UnitPrice * l.Quantity
}

// Cart is the per-session container. All methods are safe for concurrent
// use; the HTTP server may touch the same cart from parallel requests.
type Cart struct {
	mu        sync.Mutex
	lines     []*Line
	updatedAt time.Time

	// single-slot notification state, see notify.go
	notice    *Notice
	noticeSeq int64
	timer     *time.Timer
	noticeTTL time.Duration
}

func newCart(noticeTTL time.Duration) *Cart {
	return &Cart{
		noticeTTL: noticeTTL,
		updatedAt: time.Now(),
	}
}

// findLine returns the line matching the full identity, or nil.
// Caller must hold c.mu.
func (c *Cart) findLine(productID int64, sig string) *Line {
	for _, l := range c.lines {
		if l.ProductID == productID && l.Personalization.Signature() == sig {
			return l
		}
	}
	return nil
}

// AddItem merges qty into an existing line with the same identity, or
// appends a new line preserving insertion order. Quantity is assumed
// positive; callers validate before calling. Always issues a success notice.
func (c *Cart) AddItem(snap ProductSnapshot, qty int, pers Personalization) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line := c.findLine(snap.ID, pers.Signature()); line != nil {
		line.Quantity += qty
	} else {
		c.lines = append(c.lines, &Line{
			ProductID:       snap.ID,
			Name:            snap.Name,
			UnitPrice:       snap.UnitPrice,
			ImageURL:        snap.ImageURL,
			Quantity:        qty,
			Personalization: pers,
		})
	}

	c.updatedAt = time.Now()
	c.notify(fmt.Sprintf("Added %d x %s to the cart", qty, snap.Name), SeveritySuccess)
}

// RemoveItem removes every line whose base product id matches, regardless of
// personalization. Removing a nonexistent id is a no-op, not an error, and
// issues no notice (there was nothing to describe).
func (c *Cart) RemoveItem(productID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	var removedName string
	for _, l := range c.lines {
		if l.ProductID == productID {
			removedName = l.Name
			continue
		}
		kept = append(kept, l)
	}
	if removedName == "" {
		return false
	}

	c.lines = kept
	c.updatedAt = time.Now()
	c.notify(fmt.Sprintf("Removed %s from the cart", removedName), SeverityInfo)
	return true
}

// UpdateQuantity sets the quantity of the line matching the full identity
// (product id + personalization signature). A quantity of zero or less
// removes that specific line. Returns false when no such line exists.
func (c *Cart) UpdateQuantity(productID int64, pers Personalization, qty int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	sig := pers.Signature()
	line := c.findLine(productID, sig)
	if line == nil {
		return false
	}

	if qty <= 0 {
		kept := c.lines[:0]
		for _, l := range c.lines {
			if l.ProductID == productID && l.Personalization.Signature() == sig {
				continue
			}
			kept = append(kept, l)
		}
		c.lines = kept
		c.updatedAt = time.Now()
		c.notify(fmt.Sprintf("Removed %s from the cart", line.Name), SeverityInfo)
		return true
	}

	line.Quantity = qty
	c.updatedAt = time.Now()
	c.notify(fmt.Sprintf("Updated %s to %d units", line.Name, qty), SeverityInfo)
	return true
}

// Clear empties the whole cart. Called after a successful checkout commit.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.updatedAt = time.Now()
	c.notify("Cart emptied", SeverityInfo)
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// Subtotal sums unitPrice * quantity over all lines.
func (c *Cart) Subtotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}

// TotalItems sums the quantities over all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// IdleSince reports the time of the last mutation. Used by the purge worker.
func (c *Cart) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}
