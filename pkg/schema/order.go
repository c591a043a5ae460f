package schema

import "github.com/hamba/avro/v2"

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "long"},
		{"name": "user_id", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "total", "type": "double"},
		{"name": "payment_method", "type": "string"},
		{"name": "payment_ref", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "variant_id", "type": "long"},
					{"name": "product_name", "type": "string"},
					{"name": "price", "type": "double"},
					{"name": "quantity", "type": "int"}
				]
			}
		}}
	]
}`

type (
	OrderPlacedV1 struct {
		OrderID       int64         `avro:"order_id"`
		UserID        string        `avro:"user_id"`
		Status        string        `avro:"status"`
		Total         float64       `avro:"total"`
		PaymentMethod string        `avro:"payment_method"`
		PaymentRef    string        `avro:"payment_ref"`
		Items         []OrderItemV1 `avro:"items"`
	}

	OrderItemV1 struct {
		VariantID   int64   `avro:"variant_id"`
		ProductName string  `avro:"product_name"`
		Price       float64 `avro:"price"`
		Quantity    int     `avro:"quantity"`
	}
)

func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}
