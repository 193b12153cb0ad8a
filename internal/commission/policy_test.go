package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPayment(t *testing.T) {
	cases := []struct {
		method string
		want   PaymentCategory
	}{
		{"Nakit", PaymentCash},
		{"nakit ödeme", PaymentCash},
		{"Çek", PaymentCheque},
		{"senet", PaymentCheque},
		{"POS", PaymentCard},
		{"Kredi Kartı", PaymentCard},
		{"Havale", PaymentTransfer},
		{"banka eft", PaymentTransfer},
		{"EFT", PaymentTransfer},
		{"Sigorta", PaymentOther},
		{"", PaymentOther},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyPayment(tc.method), "method=%q", tc.method)
	}
}

func TestDefaultInvoicePolicy(t *testing.T) {
	// Nakit, çek ve senette varsayılan fatura kesilmedi / %0 KDV.
	for _, m := range []string{"nakit", "Çek", "senet"} {
		def := DefaultInvoicePolicy(m)
		assert.False(t, def.InvoiceIssued, "method=%q", m)
		assert.Equal(t, 0.0, def.VATRate, "method=%q", m)
	}

	// Diğer tüm yöntemlerde fatura kesildi / sabit %10 KDV.
	for _, m := range []string{"pos", "kredi kartı", "havale", "bilinmeyen"} {
		def := DefaultInvoicePolicy(m)
		assert.True(t, def.InvoiceIssued, "method=%q", m)
		assert.Equal(t, DefaultVATRate, def.VATRate, "method=%q", m)
	}
}

func TestInstallmentTableRate(t *testing.T) {
	table := InstallmentTable{1: 12, 3: 18, 6: 25}

	assert.Equal(t, 12.0, table.Rate(1))
	assert.Equal(t, 18.0, table.Rate(3))

	// Tabloda olmayan taksit sayısı tek çekim varsayılanına düşer.
	assert.Equal(t, FallbackCardRate, table.Rate(9))
	assert.Equal(t, FallbackCardRate, InstallmentTable(nil).Rate(1))
}

func TestDefaultDeductionRate(t *testing.T) {
	table := InstallmentTable{1: 12, 2: 15, 3: 18}

	assert.Equal(t, 0.0, DefaultDeductionRate("nakit", 1, table))
	assert.Equal(t, 0.0, DefaultDeductionRate("çek", 1, table))
	assert.Equal(t, 0.0, DefaultDeductionRate("senet", 3, table))

	assert.Equal(t, 12.0, DefaultDeductionRate("pos", 1, table))
	assert.Equal(t, 18.0, DefaultDeductionRate("kredi kartı", 3, table))
	assert.Equal(t, FallbackCardRate, DefaultDeductionRate("pos", 10, table))

	assert.Equal(t, TransferDeductionRate, DefaultDeductionRate("havale", 1, table))
	assert.Equal(t, TransferDeductionRate, DefaultDeductionRate("banka", 1, table))

	assert.Equal(t, 0.0, DefaultDeductionRate("sigorta", 1, table))
}

func TestDefaultDeductionRateIdempotent(t *testing.T) {
	table := InstallmentTable{4: 20}

	first := DefaultDeductionRate("pos", 4, table)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DefaultDeductionRate("pos", 4, table))
	}
}
