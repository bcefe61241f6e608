package domain

// MaxLineQuantity is the most units of one product a cart line can hold.
const MaxLineQuantity = 99

// ClampQuantity limits n to [1, MaxLineQuantity].
func ClampQuantity(n int) int {
	return min(max(n, 1), MaxLineQuantity)
}

// CartLine is a single product in the cart. Quantity is always between 1
// and MaxLineQuantity.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns price times quantity, in cents.
func (l CartLine) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Lines is an ordered list of cart lines, oldest first.
type Lines []CartLine

// Subtotal returns the sum of all line totals, in cents.
func (ls Lines) Subtotal() int64 {
	var total int64
	for _, l := range ls {
		total += l.Total()
	}
	return total
}

// TotalItems returns the sum of quantities, not the number of lines.
func (ls Lines) TotalItems() int {
	var count int
	for _, l := range ls {
		count += l.Quantity
	}
	return count
}

// Index returns the position of the line for productID, or -1.
func (ls Lines) Index(productID string) int {
	for i := range ls {
		if ls[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with ls.
func (ls Lines) Clone() Lines {
	if ls == nil {
		return Lines{}
	}
	out := make(Lines, len(ls))
	copy(out, ls)
	return out
}
