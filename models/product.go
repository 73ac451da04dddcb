package models

import "github.com/shopspring/decimal"

// Product is a catalog entry.
type Product struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	ImgURL           string          `gorm:"type:varchar(1024)" json:"imgUrl"`
	DescriptionShort string          `gorm:"type:varchar(512)" json:"descriptionShort"`
	DescriptionLong  string          `gorm:"type:text" json:"descriptionLong"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Material         string          `gorm:"type:varchar(128)" json:"material"`
	Size             string          `gorm:"type:varchar(128)" json:"size"`
}
