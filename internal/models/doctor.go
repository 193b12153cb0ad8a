package models

import "time"

// Doctor: Hekim kartı. CommissionRate, tahsilatlar yüklenirken önerilen
// varsayılan prim oranıdır; hesaplama sırasında elle değiştirilebilir.
type Doctor struct {
	ID             uint `gorm:"primaryKey"`
	BranchID       uint `gorm:"index;not null"`
	Branch         Branch
	FirstName      string  `gorm:"size:100;not null"`
	LastName       string  `gorm:"size:100;not null"`
	Specialty      string  `gorm:"size:100"` // uzmanlık alanı (opsiyonel)
	CommissionRate float64 `gorm:"default:0"` // varsayılan prim yüzdesi
	IsActive       bool    `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (d Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
