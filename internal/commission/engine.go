package commission

import (
	"errors"
	"time"

	"klinik-backend/internal/models"
)

var (
	// ErrEmptyInput: Tahsilat satırı olmadan prim hesaplanamaz.
	ErrEmptyInput = errors.New("tahsilat satırı yok")

	// ErrInvalidRate: Prim oranı pozitif olmalı.
	ErrInvalidRate = errors.New("geçersiz prim oranı")
)

// CollectionLine: Hesaplamaya giren tek tahsilat satırı.
// InvoiceIssued/VATRate ve InstallmentCount/DeductionRate alanları
// varsayılan politikayla doldurulur, kullanıcı satır bazında değiştirebilir.
type CollectionLine struct {
	CollectionID     *uint     `json:"collection_id,omitempty"`
	PatientID        string    `json:"patient_id"`
	PatientName      string    `json:"patient_name"`
	Date             time.Time `json:"date"`
	Amount           float64   `json:"amount"`
	PaymentMethod    string    `json:"payment_method"`
	InvoiceIssued    bool      `json:"invoice_issued"`
	VATRate          float64   `json:"vat_rate"`
	InstallmentCount int       `json:"installment_count"`
	DeductionRate    float64   `json:"deduction_rate"`
}

// VATAmount: Satırın KDV tutarı. Sadece detay kaydında saklanır,
// toplam kesintiye girmez (kesinti DeductionRate üzerinden hesaplanır).
func (l CollectionLine) VATAmount() float64 {
	return l.Amount * l.VATRate / 100
}

func (l CollectionLine) DeductionAmount() float64 {
	return l.Amount * l.DeductionRate / 100
}

// NetAmount: Kesinti sonrası satır tutarı.
func (l CollectionLine) NetAmount() float64 {
	return l.Amount * (1 - l.DeductionRate/100)
}

// ExpenseLine: Gider satırı (laboratuvar / implant / diğer).
type ExpenseLine struct {
	Kind        models.ExpenseKind `json:"kind"`
	Date        *time.Time         `json:"date,omitempty"`
	PatientID   string             `json:"patient_id"`
	PatientName string             `json:"patient_name"`
	Amount      float64            `json:"amount"`
	Description string             `json:"description"`

	// laboratuvar
	Procedure string `json:"procedure,omitempty"`

	// implant
	Brand    string `json:"brand,omitempty"`
	Length   string `json:"length,omitempty"`
	Diameter string `json:"diameter,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Quantity int    `json:"quantity,omitempty"`

	// diğer
	Category string `json:"category,omitempty"`
}

// AdjustmentLine: Elle girilen ekleme satırı. Net ciro eklemeleri matrah
// öncesine, hak ediş eklemeleri hesaplanan primin üzerine işlenir.
type AdjustmentLine struct {
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PatientName string    `json:"patient_name,omitempty"`
	Amount      float64   `json:"amount"`
}

// Session: Bir hesaplama oturumunun tüm satırları. Motor durum tutmaz;
// aynı Session ve oran her çağrıda aynı sonucu üretir.
type Session struct {
	Collections            []CollectionLine `json:"collections"`
	Expenses               []ExpenseLine    `json:"expenses"`
	RevenueAdjustments     []AdjustmentLine `json:"revenue_adjustments"`
	EntitlementAdjustments []AdjustmentLine `json:"entitlement_adjustments"`
}

// Result: Hesaplama çıktısı. Ara toplamların tamamı denetim ekranı ve
// kayıt anındaki anlık görüntü için döndürülür.
type Result struct {
	GrossCollected   float64 `json:"gross_collected"`           // brüt tahsilat
	DeductionTotal   float64 `json:"deduction_total"`           // toplam kesinti
	RevenueAdjTotal  float64 `json:"revenue_adjustment_total"`  // net ciro eklemeleri
	NetCollected     float64 `json:"net_collected"`             // net tahsilat
	ExpenseTotal     float64 `json:"expense_total"`             // toplam gider
	Base             float64 `json:"base"`                      // prim matrahı
	Rate             float64 `json:"rate"`                      // uygulanan oran (%)
	RawCommission    float64 `json:"raw_commission"`            // orana göre prim
	EntitlementTotal float64 `json:"entitlement_total"`         // hak ediş eklemeleri
	FinalCommission  float64 `json:"final_commission"`          // ödenecek toplam
}

// Compute: Prim hesaplama.
//
//	net    = brüt - kesinti + net ciro eklemeleri
//	matrah = net - giderler
//	prim   = matrah * oran/100
//	toplam = prim + hak ediş eklemeleri
//
// Matrah negatif çıkabilir ve sıfıra çekilmez; negatif prim geçerli
// (alışılmadık da olsa) bir sonuçtur.
func Compute(s Session, rate float64) (Result, error) {
	if rate <= 0 {
		return Result{}, ErrInvalidRate
	}
	if len(s.Collections) == 0 {
		return Result{}, ErrEmptyInput
	}

	res := Result{Rate: rate}

	for _, line := range s.Collections {
		res.GrossCollected += line.Amount
		res.DeductionTotal += line.DeductionAmount()
	}

	for _, adj := range s.RevenueAdjustments {
		res.RevenueAdjTotal += adj.Amount
	}
	res.NetCollected = res.GrossCollected - res.DeductionTotal + res.RevenueAdjTotal

	for _, exp := range s.Expenses {
		res.ExpenseTotal += exp.Amount
	}

	res.Base = res.NetCollected - res.ExpenseTotal
	res.RawCommission = res.Base * rate / 100

	for _, adj := range s.EntitlementAdjustments {
		res.EntitlementTotal += adj.Amount
	}
	res.FinalCommission = res.RawCommission + res.EntitlementTotal

	return res, nil
}
