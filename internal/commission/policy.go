package commission

import "strings"

// Ödeme şekli serbest metin girildiği için sınıflandırma anahtar
// kelimeyle yapılır. Sıra önemlidir, ilk eşleşen kural kazanır.

type PaymentCategory string

const (
	PaymentCash     PaymentCategory = "cash"     // nakit
	PaymentCheque   PaymentCategory = "cheque"   // çek / senet
	PaymentCard     PaymentCategory = "card"     // pos / kredi kartı
	PaymentTransfer PaymentCategory = "transfer" // banka / havale / eft
	PaymentOther    PaymentCategory = "other"
)

type paymentRule struct {
	category PaymentCategory
	keywords []string
}

var paymentRules = []paymentRule{
	{PaymentCash, []string{"nakit", "cash"}},
	{PaymentCheque, []string{"çek", "cek", "senet", "check", "cheque"}},
	{PaymentCard, []string{"pos", "kredi", "card"}},
	{PaymentTransfer, []string{"banka", "havale", "eft", "transfer"}},
}

func ClassifyPayment(method string) PaymentCategory {
	m := strings.ToLower(strings.TrimSpace(method))
	for _, rule := range paymentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(m, kw) {
				return rule.category
			}
		}
	}
	return PaymentOther
}

const (
	// DefaultVATRate: Fatura kesilen tahsilatlara uygulanan sabit KDV oranı.
	DefaultVATRate = 10.0

	// FallbackCardRate: Taksit tablosunda satır yoksa kullanılan kart
	// kesinti oranı. İşletme varsayılanı olarak onaylatılması bekleniyor,
	// şimdilik tek çekim seed değeriyle aynı.
	FallbackCardRate = 12.0

	// TransferDeductionRate: Banka/havale tahsilatlarındaki sabit kesinti.
	TransferDeductionRate = 10.0
)

// InvoiceDefault: Ödeme şekline göre fatura/KDV varsayılanı.
// Satır bazında kullanıcı düzenlemesi bu varsayılanı ezer.
type InvoiceDefault struct {
	InvoiceIssued bool    `json:"invoice_issued"`
	VATRate       float64 `json:"vat_rate"`
}

func DefaultInvoicePolicy(method string) InvoiceDefault {
	switch ClassifyPayment(method) {
	case PaymentCash, PaymentCheque:
		return InvoiceDefault{InvoiceIssued: false, VATRate: 0}
	default:
		return InvoiceDefault{InvoiceIssued: true, VATRate: DefaultVATRate}
	}
}

// InstallmentTable: Taksit sayısı -> kart kesinti oranı.
type InstallmentTable map[int]float64

// Rate: Tablodan oran döndürür; satır yoksa FallbackCardRate.
// Aynı taksit sayısı, tablo değişmedikçe hep aynı oranı verir.
func (t InstallmentTable) Rate(installments int) float64 {
	if r, ok := t[installments]; ok {
		return r
	}
	return FallbackCardRate
}

// DefaultDeductionRate: Ödeme şekli ve taksit sayısına göre varsayılan
// kesinti oranı. Nakit ve çek/senet kesintisizdir; kart taksit
// tablosundan okunur; havale sabit orana tabidir.
func DefaultDeductionRate(method string, installments int, table InstallmentTable) float64 {
	switch ClassifyPayment(method) {
	case PaymentCash, PaymentCheque:
		return 0
	case PaymentCard:
		return table.Rate(installments)
	case PaymentTransfer:
		return TransferDeductionRate
	default:
		return 0
	}
}
