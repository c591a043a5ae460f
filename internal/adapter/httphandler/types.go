package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Product struct {
		ID          int64          `json:"id"`
		Slug        string         `json:"slug"`
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Price       float64        `json:"price"`
		Category    Category       `json:"category"`
		Brand       string         `json:"brand"`
		Tags        []string       `json:"tags"`
		Images      []ProductImage `json:"images"`
		Variants    []Variant      `json:"variants"`
		Rating      Rating         `json:"rating"`
	}

	Category struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}

	Variant struct {
		ID        int64   `json:"id"`
		ProductID int64   `json:"product_id"`
		Size      string  `json:"size"`
		Color     string  `json:"color"`
		Price     float64 `json:"price"`
		Stock     int     `json:"stock"`
	}

	Rating struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}
)

type CatalogPage struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Variant  Variant `json:"variant"`
	Quantity int     `json:"quantity"`
}

type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type (
	CheckoutItem struct {
		Variant struct {
			ID int64 `json:"id"`
		} `json:"variant"`
		Quantity int `json:"quantity"`
	}

	CheckoutRequest struct {
		Items             []CheckoutItem `json:"items"`
		ShippingAddressID int64          `json:"shipping_address_id"`
		BillingAddressID  int64          `json:"billing_address_id"`
		PaymentMethod     string         `json:"payment_method"`
		UserID            string         `json:"user_id"`
	}

	CheckoutResponse struct {
		OrderID int64  `json:"orderId"`
		URL     string `json:"url,omitempty"`
	}
)

type (
	Order struct {
		ID            int64       `json:"id"`
		Status        string      `json:"status"`
		Total         float64     `json:"total"`
		PaymentMethod string      `json:"payment_method"`
		CreatedAt     string      `json:"created_at"`
		Items         []OrderItem `json:"items"`
	}

	OrderItem struct {
		VariantID   int64   `json:"variant_id"`
		ProductName string  `json:"product_name"`
		Price       float64 `json:"price"`
		Quantity    int     `json:"quantity"`
	}
)

type Profile struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

type Address struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

func toProduct(p domain.Product) Product {
	v := Product{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    Category{Slug: p.Category.Slug, Name: p.Category.Name},
		Brand:       p.Brand,
		Tags:        p.Tags,
		Rating:      Rating{Average: p.Rating.Average, Count: p.Rating.Count},
	}

	v.Images = make([]ProductImage, len(p.Images))
	for i := range p.Images {
		v.Images[i].URL = p.Images[i].URL
		v.Images[i].Alt = p.Images[i].Alt
	}

	v.Variants = make([]Variant, len(p.Variants))
	for i := range p.Variants {
		v.Variants[i] = toVariant(p.Variants[i])
	}
	return v
}

func toProducts(ps []domain.Product) []Product {
	vs := make([]Product, len(ps))
	for i := range ps {
		vs[i] = toProduct(ps[i])
	}
	return vs
}

func toVariant(v domain.ProductVariant) Variant {
	return Variant{
		ID:        v.ID,
		ProductID: v.ProductID,
		Size:      v.Size,
		Color:     v.Color,
		Price:     v.Price,
		Stock:     v.Stock,
	}
}

func toOrder(o domain.Order) Order {
	v := Order{
		ID:            o.ID,
		Status:        string(o.Status),
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
	}

	v.Items = make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		v.Items[i] = OrderItem{
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		}
	}
	return v
}

func toAddress(a domain.Address) Address {
	return Address{
		ID:         a.ID,
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
		IsDefault:  a.IsDefault,
	}
}

func (a Address) toDomain(userID string, id int64) domain.Address {
	return domain.Address{
		ID:         id,
		UserID:     userID,
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
		IsDefault:  a.IsDefault,
	}
}
