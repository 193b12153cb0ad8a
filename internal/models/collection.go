package models

import "time"

// Collection: Hasta tahsilatı. Prim hesaplamasında dönem içi tahsilatlar
// bu tablodan çekilir. PaymentMethod serbest metindir (nakit, pos,
// kredi kartı, havale, çek, senet...); sınıflandırma prim motorunda
// anahtar kelimeyle yapılır.
type Collection struct {
	ID            uint `gorm:"primaryKey"`
	BranchID      uint `gorm:"index;not null"`
	Branch        Branch
	DoctorID      uint `gorm:"index;not null"`
	Doctor        Doctor
	PatientID     string    `gorm:"size:50;index"`
	PatientName   string    `gorm:"size:150"`
	Amount        float64   `gorm:"not null"`
	PaymentMethod string    `gorm:"size:50;not null"`
	Date          time.Time `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
