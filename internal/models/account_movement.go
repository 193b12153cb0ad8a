package models

import "time"

type MovementType string

const (
	MovementTypeCommission MovementType = "commission" // prim alacağı
	MovementTypeSalary     MovementType = "salary"     // maaş ödemesi
	MovementTypePayment    MovementType = "payment"    // elle girilen ödeme
	MovementTypeManual     MovementType = "manual"     // elle girilen düzeltme kaydı
)

// AccountMovement: Cari hareket. Balance, hareket eklendiği andaki
// yürüyen bakiyedir; düzeltme/silme sonrası ledger servisi tarihe göre
// baştan hesaplar.
type AccountMovement struct {
	ID           uint `gorm:"primaryKey"`
	AccountID    uint `gorm:"index;not null"`
	Account      Account
	Type         MovementType `gorm:"size:20;not null"`
	CommissionID *uint        `gorm:"index"` // prim kaynaklı hareketlerde dolu
	Date         time.Time    `gorm:"index;not null"`
	Description  string       `gorm:"size:255"`
	Credit       float64      `gorm:"default:0"` // alacak
	Debit        float64      `gorm:"default:0"` // borç
	Balance      float64      `gorm:"default:0"` // hareket sonrası yürüyen bakiye
	CreatedBy    string       `gorm:"size:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
