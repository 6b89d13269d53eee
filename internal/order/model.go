package order

import (
	"time"

	"neonix-orders/internal/address"
	"neonix-orders/internal/payment"
	"neonix-orders/internal/user"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCanceled   OrderStatus = "CANCELED"
)

// Valid reports whether s is one of the known fulfillment states.
// The workflow itself only ever assigns StatusPending; the rest arrive
// through updates.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// Order is the aggregate root. Details share its lifecycle and are
// saved and deleted with it, never on their own.
type Order struct {
	ID uint `json:"id"`

	User            *user.User             `json:"user"`
	ShippingAddress *address.Address       `json:"shippingAddress"`
	PaymentMethod   *payment.PaymentMethod `json:"paymentMethod"`

	Details []OrderDetail `json:"orderDetails"`

	Status         OrderStatus `json:"status"`
	ShippingNumber string      `json:"shippingNumber"`
	DeliveryDate   *time.Time  `json:"deliveryDate"`
	TotalAmount    float64     `json:"totalAmount"`

	OrderDate time.Time `json:"orderDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderDetail struct {
	ID      uint `json:"id"`
	OrderID uint `json:"orderId"`

	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}
