package domain

// A CartItem is the persisted cart row. VariantID 0 means the item was
// added without choosing a variant. Rows are unique per
// user+product+variant.
type CartItem struct {
	UserID    string
	ProductID int64
	VariantID int64
	Quantity  int
}

// A CartLine is a display-ready cart entry: the persisted row joined
// with live product and variant data.
type CartLine struct {
	Product  Product
	Variant  ProductVariant
	Quantity int
}
