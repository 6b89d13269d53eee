package address

type Address struct {
	ID     uint `json:"id"`
	UserID uint `json:"userId"`

	Street1 string  `json:"street1"`
	Street2 *string `json:"street2,omitempty"`

	City     string `json:"city"`
	Province string `json:"province"`
	Postal   string `json:"postalCode"`
	Country  string `json:"country"`

	IsDefault bool `json:"isDefault"`
}
