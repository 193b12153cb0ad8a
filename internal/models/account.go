package models

import "time"

type AccountKind string

const (
	AccountKindDoctor   AccountKind = "doctor"   // hekim cari hesabı
	AccountKindStaff    AccountKind = "staff"    // personel cari hesabı
	AccountKindSupplier AccountKind = "supplier" // tedarikçi (laboratuvar, implant firması vb.)
	AccountKindOther    AccountKind = "other"
)

// Account: Cari hesap. Balance alanı hareketlerden türetilir;
// alacak bakiyeyi artırır, borç azaltır.
type Account struct {
	ID        uint        `gorm:"primaryKey"`
	Code      string      `gorm:"size:50;uniqueIndex;not null"` // cari kodu
	Name      string      `gorm:"size:150;not null"`
	Kind      AccountKind `gorm:"size:20;not null;default:other"`
	Phone     string      `gorm:"size:50"`
	Email     string      `gorm:"size:100"`
	Address   string      `gorm:"size:255"`
	Notes     string      `gorm:"size:255"`
	IsActive  bool        `gorm:"default:true"`
	Balance   float64     `gorm:"default:0"` // güncel bakiye (alacak - borç)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DoctorAccountLink: Hekim ile cari hesap eşleştirmesi.
// Aynı hekim+şube için tek aktif eşleştirme tutulur.
type DoctorAccountLink struct {
	ID        uint `gorm:"primaryKey"`
	AccountID uint `gorm:"index;not null"`
	Account   Account
	DoctorID  uint `gorm:"index:idx_doctor_branch,unique;not null"`
	Doctor    Doctor
	BranchID  uint `gorm:"index:idx_doctor_branch,unique;not null"`
	Branch    Branch
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
}
