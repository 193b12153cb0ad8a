package models

import "time"

// Branch: Klinik şubesi.
type Branch struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"`
	TaxNumber string `gorm:"size:20"` // vergi no (opsiyonel)
	CreatedAt time.Time
	UpdatedAt time.Time

	Users   []User
	Doctors []Doctor
}
