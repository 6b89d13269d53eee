package order

import (
	"time"

	"neonix-orders/internal/address"
	"neonix-orders/internal/payment"
	"neonix-orders/internal/user"
)

// Payload is the wire shape of an order request. References arrive as
// bare {id} stubs; pointer fields keep the distinction between an
// absent reference and one that is present without an id, which the
// update rules care about.
type Payload struct {
	User            *EntityRef      `json:"user"`
	ShippingAddress *EntityRef      `json:"shippingAddress"`
	PaymentMethod   *EntityRef      `json:"paymentMethod"`
	Status          OrderStatus     `json:"status"`
	ShippingNumber  string          `json:"shippingNumber"`
	DeliveryDate    *time.Time      `json:"deliveryDate"`
	TotalAmount     float64         `json:"totalAmount"`
	OrderDetails    []DetailPayload `json:"orderDetails"`
}

type EntityRef struct {
	ID uint `json:"id"`
}

type DetailPayload struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// ToOrder maps the payload onto the domain aggregate, preserving the
// nil-ness of every reference.
func (p *Payload) ToOrder() *Order {
	o := &Order{
		Status:         p.Status,
		ShippingNumber: p.ShippingNumber,
		DeliveryDate:   p.DeliveryDate,
		TotalAmount:    p.TotalAmount,
	}

	if p.User != nil {
		o.User = &user.User{ID: p.User.ID}
	}
	if p.ShippingAddress != nil {
		o.ShippingAddress = &address.Address{ID: p.ShippingAddress.ID}
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = &payment.PaymentMethod{ID: p.PaymentMethod.ID}
	}

	for _, d := range p.OrderDetails {
		o.Details = append(o.Details, OrderDetail{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			Price:       d.Price,
		})
	}

	return o
}
