package models

import "time"

// Commission: Kaydedilmiş prim hesaplaması. Ara toplamların tamamı
// denetim için saklanır; kayıt sonrası satırlar değiştirilmez, yeniden
// hesaplama yeni kayıt üretir.
type Commission struct {
	ID          uint   `gorm:"primaryKey"`
	ReferenceNo string `gorm:"size:40;uniqueIndex;not null"` // kayıt referansı (uuid)
	BranchID    uint   `gorm:"index;not null"`
	Branch      Branch
	DoctorID    uint `gorm:"index;not null"`
	Doctor      Doctor
	PeriodStart time.Time `gorm:"index;not null"`
	PeriodEnd   time.Time `gorm:"index;not null"`

	GrossCollected   float64 `gorm:"default:0"` // brüt tahsilat
	DeductionTotal   float64 `gorm:"default:0"` // toplam kesinti
	RevenueAdjTotal  float64 `gorm:"default:0"` // net ciro eklemeleri toplamı
	NetCollected     float64 `gorm:"default:0"` // net tahsilat (eklemeler dahil)
	ExpenseTotal     float64 `gorm:"default:0"` // toplam gider
	Base             float64 `gorm:"default:0"` // prim matrahı
	Rate             float64 `gorm:"not null"`  // uygulanan prim oranı (%)
	RawCommission    float64 `gorm:"default:0"` // orana göre hesaplanan prim
	EntitlementTotal float64 `gorm:"default:0"` // hak ediş eklemeleri toplamı
	FinalCommission  float64 `gorm:"default:0"` // ödenecek toplam

	AccountID *uint `gorm:"index"` // cariye işlendiyse hedef hesap
	CreatedBy string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Collections []CommissionCollection
	Expenses    []CommissionExpense
	Adjustments []CommissionAdjustment
}

// CommissionCollection: Prim kaydına bağlı tahsilat detay satırı.
// VATAmount ve NetAmount satır bazında saklanır; toplamlar Commission
// üzerindedir.
type CommissionCollection struct {
	ID           uint `gorm:"primaryKey"`
	CommissionID uint `gorm:"index;not null"`

	CollectionID  *uint     // kaynak tahsilat kaydı (elle eklenmişse boş)
	PatientID     string    `gorm:"size:50"`
	PatientName   string    `gorm:"size:150"`
	Date          time.Time `gorm:"not null"`
	Amount        float64   `gorm:"not null"`         // brüt tutar
	PaymentMethod string    `gorm:"size:50;not null"`

	InvoiceIssued    bool    `gorm:"default:false"` // fatura kesildi mi
	VATRate          float64 `gorm:"default:0"`     // KDV oranı (%)
	VATAmount        float64 `gorm:"default:0"`
	InstallmentCount int     `gorm:"default:1"`
	DeductionRate    float64 `gorm:"default:0"` // kesinti oranı (%)
	DeductionAmount  float64 `gorm:"default:0"`
	NetAmount        float64 `gorm:"default:0"` // kesinti sonrası tutar

	CreatedAt time.Time
}

type ExpenseKind string

const (
	ExpenseKindLab     ExpenseKind = "lab"     // laboratuvar gideri
	ExpenseKindImplant ExpenseKind = "implant" // implant gideri
	ExpenseKindOther   ExpenseKind = "other"   // diğer gider
)

// CommissionExpense: Gider satırı. Kind ayrımına göre ya laboratuvar
// (Procedure), ya implant (Brand/Length/Diameter/Unit/Quantity) ya da
// diğer (Category) alanları dolu olur.
type CommissionExpense struct {
	ID           uint        `gorm:"primaryKey"`
	CommissionID uint        `gorm:"index;not null"`
	Kind         ExpenseKind `gorm:"size:20;not null"`

	Date        *time.Time
	PatientID   string  `gorm:"size:50"`
	PatientName string  `gorm:"size:150"`
	Amount      float64 `gorm:"not null"`
	Description string  `gorm:"size:255"`

	// laboratuvar
	Procedure string `gorm:"size:150"`

	// implant
	Brand    string `gorm:"size:100"`
	Length   string `gorm:"size:20"`
	Diameter string `gorm:"size:20"`
	Unit     string `gorm:"size:20"`
	Quantity int    `gorm:"default:0"`

	// diğer
	Category string `gorm:"size:100"`

	CreatedAt time.Time
}

type AdjustmentKind string

const (
	AdjustmentKindRevenue     AdjustmentKind = "revenue"     // net ciro eklemesi
	AdjustmentKindEntitlement AdjustmentKind = "entitlement" // hak ediş eklemesi
)

// CommissionAdjustment: Elle girilen ekleme satırı. revenue türü matrah
// öncesi net ciroya, entitlement türü oran uygulanmış prim üzerine eklenir.
type CommissionAdjustment struct {
	ID           uint           `gorm:"primaryKey"`
	CommissionID uint           `gorm:"index;not null"`
	Kind         AdjustmentKind `gorm:"size:20;not null"`
	Date         time.Time      `gorm:"not null"`
	Category     string         `gorm:"size:50;not null"`
	Description  string         `gorm:"size:255"`
	PatientName  string         `gorm:"size:150"` // sadece revenue türünde kullanılır
	Amount       float64        `gorm:"not null"`
	CreatedAt    time.Time
}
