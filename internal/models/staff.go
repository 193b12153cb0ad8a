package models

import "time"

// Staff: Personel kartı. AccountID, maaş ödemelerinin işlendiği cari
// hesaba işaret eder (personel eklenirken otomatik açılabilir).
type Staff struct {
	ID        uint `gorm:"primaryKey"`
	BranchID  uint `gorm:"index;not null"`
	Branch    Branch
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Position  string `gorm:"size:100"`
	Phone     string `gorm:"size:50"`
	Email     string `gorm:"size:100"`
	HireDate  *time.Time
	AccountID *uint `gorm:"index"`
	Account   *Account
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffSalary: Personelin tanımlı maaş ve sabit yardımları.
// Her personel için tek aktif tanım tutulur, güncelleme üzerine yazar.
type StaffSalary struct {
	ID      uint `gorm:"primaryKey"`
	StaffID uint `gorm:"uniqueIndex;not null"`
	Staff   Staff

	GrossSalary float64 `gorm:"default:0"` // brüt maaş
	NetSalary   float64 `gorm:"default:0"` // net maaş

	// sabit yardımlar (hesaplamaya otomatik eklenir)
	TransportAllowance float64 `gorm:"default:0"` // yol yardımı
	MealAllowance      float64 `gorm:"default:0"` // yemek yardımı
	ChildAllowance     float64 `gorm:"default:0"` // çocuk yardımı
	OtherAllowance     float64 `gorm:"default:0"` // diğer ödenekler

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalaryPayment: Bir dönem için hesaplanıp kaydedilen maaş ödemesi.
// Ara kalemler denetim için saklanır; kayıtla birlikte personelin cari
// hesabına borç hareketi işlenir.
type SalaryPayment struct {
	ID      uint `gorm:"primaryKey"`
	StaffID uint `gorm:"index;not null"`
	Staff   Staff
	Year    int `gorm:"index;not null"`
	Month   int `gorm:"index;not null"` // 1-12

	NetSalary       float64 `gorm:"default:0"`
	AllowanceTotal  float64 `gorm:"default:0"` // sabit yardımlar toplamı
	UnpaidLeaveDays float64 `gorm:"default:0"`
	LeaveDeduction  float64 `gorm:"default:0"`
	OvertimeHours   float64 `gorm:"default:0"`
	OvertimePay     float64 `gorm:"default:0"`
	CommissionPay   float64 `gorm:"default:0"` // elle girilen prim
	Bonus           float64 `gorm:"default:0"`
	PayableTotal    float64 `gorm:"default:0"` // ödenecek tutar

	CreatedBy string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual" // yıllık izin
	LeaveTypeUnpaid LeaveType = "unpaid" // ücretsiz izin
	LeaveTypeSick   LeaveType = "sick"   // rapor
	LeaveTypeOther  LeaveType = "other"
)

// StaffLeave: İzin kaydı. Days kesirli olabilir (yarım gün).
type StaffLeave struct {
	ID          uint `gorm:"primaryKey"`
	StaffID     uint `gorm:"index;not null"`
	Staff       Staff
	Type        LeaveType `gorm:"size:20;not null"`
	StartDate   time.Time `gorm:"index;not null"`
	EndDate     time.Time `gorm:"not null"`
	Days        float64   `gorm:"not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
