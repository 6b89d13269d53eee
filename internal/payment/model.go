package payment

type MethodType string

const (
	TypeCard     MethodType = "CARD"
	TypeTransfer MethodType = "TRANSFER"
	TypeWallet   MethodType = "WALLET"
)

type PaymentMethod struct {
	ID     uint `json:"id"`
	UserID uint `json:"userId"`

	Type     MethodType `json:"type"`
	Provider string     `json:"provider"`
	Last4    *string    `json:"last4,omitempty"`

	IsDefault bool `json:"isDefault"`
}
