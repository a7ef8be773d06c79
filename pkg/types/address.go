package types

// ShippingAddress is embedded into an order at creation and immutable after.
type ShippingAddress struct {
	Address    string `json:"address" gorm:"column:address;not null"`
	City       string `json:"city" gorm:"column:city;not null"`
	PostalCode string `json:"postalCode" gorm:"column:postal_code;not null"`
	Country    string `json:"country" gorm:"column:country;not null"`
	Mobile     string `json:"mobile" gorm:"column:mobile;not null"`
}
