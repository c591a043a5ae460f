package domain

type (
	Product struct {
		ID          int64
		Slug        string
		Name        string
		Description string
		Price       float64
		Category    Category
		Brand       string
		Tags        []string
		Images      []ProductImage
		Variants    []ProductVariant
		Rating      Rating
	}

	Category struct {
		Slug string
		Name string
	}

	ProductImage struct {
		URL string
		Alt string
	}

	// Rating is the review aggregate kept on the product.
	Rating struct {
		Average float64
		Count   int
	}
)

// A ProductVariant is a purchasable SKU-level configuration of a product.
// Its price may differ from the parent product price.
type ProductVariant struct {
	ID        int64
	ProductID int64
	Size      string
	Color     string
	Price     float64
	Stock     int
}

// DefaultVariant derives a synthetic variant from the parent product,
// used when a cart row references a variant that no longer exists.
func (p Product) DefaultVariant() ProductVariant {
	return ProductVariant{ProductID: p.ID, Price: p.Price}
}

// CatalogQuery carries the storefront listing parameters.
// Zero values mean "not filtered"; Limit is normalized by the service.
type CatalogQuery struct {
	Category string
	Query    string
	Brand    string
	Size     string
	Color    string
	PriceMin float64
	PriceMax float64
	Limit    int
	Offset   int
}

type CatalogPage struct {
	Items []Product
	Total int
}
