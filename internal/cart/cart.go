package cart

import (
	"errors"
	"time"

	"github.com/sbilus/storefront-backend/internal/stock"
	"github.com/shopspring/decimal"
)

var ErrItemNotFound = errors.New("cart item not found")

// LineItem is one (product, size, quantity) entry of the cart. Stock is the
// quantity of the size known when the item was selected.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock"`
}

func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart belongs to one browsing session. Items keep the order they were added in.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Add appends item, or merges it into the line with the same product and
// size. Merged quantities are summed and clamped to the most recent stock.
// It returns the resulting line.
func (c *Cart) Add(item LineItem) LineItem {
	for i, existing := range c.Items {
		if existing.ProductID != item.ProductID || existing.Size != item.Size {
			continue
		}
		merged := item
		merged.Quantity = stock.Clamp(existing.Quantity+item.Quantity, item.Stock)
		c.Items[i] = merged
		return merged
	}
	item.Quantity = stock.Clamp(item.Quantity, item.Stock)
	c.Items = append(c.Items, item)
	return item
}

// SetQuantity sets the quantity of the line at index. Quantities below 1 are
// raised to 1; stock was checked when the line was added.
func (c *Cart) SetQuantity(index, qty int) (LineItem, error) {
	if index < 0 || index >= len(c.Items) {
		return LineItem{}, ErrItemNotFound
	}
	if qty < 1 {
		qty = 1
	}
	item := &c.Items[index]
	item.Quantity = qty
	return *item, nil
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrItemNotFound
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

func (c Cart) Total(deliveryFee decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(deliveryFee)
}

// Count is the number of lines, Units the number of pieces.
func (c Cart) Count() int { return len(c.Items) }

func (c Cart) Units() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// View is the JSON shape of the cart screen.
type View struct {
	SessionID string          `json:"sessionId"`
	Items     []LineItem      `json:"items"`
	Count     int             `json:"count"`
	Units     int             `json:"units"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func (c Cart) View() View {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	return View{
		SessionID: c.SessionID,
		Items:     items,
		Count:     c.Count(),
		Units:     c.Units(),
		Subtotal:  c.Subtotal(),
	}
}
