package models

import "time"

// InstallmentRate: Taksit sayısına göre kart kesinti oranı.
// Tablo prim ayarları ekranından yönetilir.
type InstallmentRate struct {
	ID               uint    `gorm:"primaryKey"`
	InstallmentCount int     `gorm:"uniqueIndex;not null"` // 1 = tek çekim
	DeductionRate    float64 `gorm:"not null"`             // yüzde
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ExpenseCategory: "Diğer gider" satırları için kategori listesi.
type ExpenseCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
