package models

// CustomerInformation is the shipping/contact record captured at checkout.
// Upserted by email, so one row per customer.
type CustomerInformation struct {
	CustomerID uint   `gorm:"primaryKey" json:"customerId"`
	Email      string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Country    string `gorm:"type:varchar(128)" json:"country"`
	FullName   string `gorm:"type:varchar(255)" json:"fullName"`
	Address    string `gorm:"type:varchar(512)" json:"address"`
	Apartment  string `gorm:"type:varchar(128)" json:"apartment"`
	City       string `gorm:"type:varchar(128)" json:"city"`
	State      string `gorm:"type:varchar(128)" json:"state"`
	ZipCode    string `gorm:"type:varchar(32)" json:"zipCode"`
}
