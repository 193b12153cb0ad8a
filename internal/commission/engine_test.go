package commission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectionLine(amount float64, method string, deductionRate float64) CollectionLine {
	return CollectionLine{
		PatientName:      "Test Hasta",
		Date:             time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:           amount,
		PaymentMethod:    method,
		InstallmentCount: 1,
		DeductionRate:    deductionRate,
	}
}

func TestComputeCashOnly(t *testing.T) {
	// 1000 TL nakit, kesintisiz, gidersiz, oran %20
	s := Session{
		Collections: []CollectionLine{collectionLine(1000, "nakit", 0)},
	}

	res, err := Compute(s, 20)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, res.GrossCollected)
	assert.Equal(t, 0.0, res.DeductionTotal)
	assert.Equal(t, 1000.0, res.NetCollected)
	assert.Equal(t, 1000.0, res.Base)
	assert.Equal(t, 200.0, res.RawCommission)
	assert.Equal(t, 200.0, res.FinalCommission)
}

func TestComputeCardWithExpenses(t *testing.T) {
	// 1000 TL kart (tek çekim %12), 100 TL gider, oran %10
	s := Session{
		Collections: []CollectionLine{collectionLine(1000, "pos", 12)},
		Expenses:    []ExpenseLine{{Kind: "other", Category: "Malzeme", Amount: 100}},
	}

	res, err := Compute(s, 10)
	require.NoError(t, err)

	assert.Equal(t, 120.0, res.DeductionTotal)
	assert.Equal(t, 880.0, res.NetCollected)
	assert.Equal(t, 780.0, res.Base)
	assert.InDelta(t, 78.0, res.RawCommission, 1e-9)
	assert.InDelta(t, 78.0, res.FinalCommission, 1e-9)
}

func TestComputeWithAdjustments(t *testing.T) {
	// Kart senaryosu + 200 TL net ciro eklemesi + 50 TL hak ediş eklemesi
	s := Session{
		Collections: []CollectionLine{collectionLine(1000, "pos", 12)},
		Expenses:    []ExpenseLine{{Kind: "other", Category: "Malzeme", Amount: 100}},
		RevenueAdjustments: []AdjustmentLine{
			{Date: time.Now(), Category: "tedavi_aktarimi", Description: "Tedavi aktarımı", Amount: 200},
		},
		EntitlementAdjustments: []AdjustmentLine{
			{Date: time.Now(), Category: "performans_bonusu", Description: "Bonus", Amount: 50},
		},
	}

	res, err := Compute(s, 10)
	require.NoError(t, err)

	assert.Equal(t, 200.0, res.RevenueAdjTotal)
	assert.Equal(t, 1080.0, res.NetCollected)
	assert.Equal(t, 980.0, res.Base)
	assert.InDelta(t, 98.0, res.RawCommission, 1e-9)
	assert.Equal(t, 50.0, res.EntitlementTotal)
	assert.InDelta(t, 148.0, res.FinalCommission, 1e-9)
}

func TestComputeEmptyCollections(t *testing.T) {
	s := Session{
		Expenses: []ExpenseLine{{Kind: "lab", Procedure: "Kuron", Amount: 500}},
	}

	_, err := Compute(s, 20)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestComputeInvalidRate(t *testing.T) {
	s := Session{
		Collections: []CollectionLine{collectionLine(1000, "nakit", 0)},
	}

	_, err := Compute(s, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = Compute(s, -5)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestComputeNegativeBaseNotClamped(t *testing.T) {
	// Giderler net tahsilatı aşarsa matrah ve prim negatif kalır.
	s := Session{
		Collections: []CollectionLine{collectionLine(100, "nakit", 0)},
		Expenses:    []ExpenseLine{{Kind: "implant", Brand: "Straumann", Quantity: 2, Amount: 600}},
	}

	res, err := Compute(s, 10)
	require.NoError(t, err)

	assert.Equal(t, -500.0, res.Base)
	assert.InDelta(t, -50.0, res.RawCommission, 1e-9)
	assert.InDelta(t, -50.0, res.FinalCommission, 1e-9)
}

func TestComputeDeterministic(t *testing.T) {
	s := Session{
		Collections: []CollectionLine{
			collectionLine(750.50, "pos", 15),
			collectionLine(1200, "havale", 10),
			collectionLine(300.25, "nakit", 0),
		},
		Expenses: []ExpenseLine{
			{Kind: "lab", Procedure: "Zirkonyum", Amount: 400},
			{Kind: "other", Category: "Protez", Amount: 150.75},
		},
		RevenueAdjustments:     []AdjustmentLine{{Amount: 90}},
		EntitlementAdjustments: []AdjustmentLine{{Amount: 35}},
	}

	first, err := Compute(s, 17.5)
	require.NoError(t, err)
	second, err := Compute(s, 17.5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeEntitlementOnlyAffectsFinal(t *testing.T) {
	s := Session{
		Collections: []CollectionLine{collectionLine(1000, "nakit", 0)},
	}

	base, err := Compute(s, 20)
	require.NoError(t, err)

	s.EntitlementAdjustments = []AdjustmentLine{{Amount: 111}}
	withAdj, err := Compute(s, 20)
	require.NoError(t, err)

	// Hak ediş eklemesi oran hesabını değiştirmez, sadece toplama eklenir.
	assert.Equal(t, base.RawCommission, withAdj.RawCommission)
	assert.Equal(t, base.Base, withAdj.Base)
	assert.Equal(t, base.RawCommission+111, withAdj.FinalCommission)
}

func TestComputeLineRemovalEquivalence(t *testing.T) {
	lines := []CollectionLine{
		collectionLine(500, "nakit", 0),
		collectionLine(800, "pos", 12),
	}

	with, err := Compute(Session{Collections: lines}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1300.0, with.GrossCollected)

	// Satır silinip yeniden hesaplanınca, satır hiç eklenmemiş gibi
	// sonuç alınır; gizli birikim yoktur.
	without, err := Compute(Session{Collections: lines[:1]}, 10)
	require.NoError(t, err)

	fresh, err := Compute(Session{Collections: []CollectionLine{collectionLine(500, "nakit", 0)}}, 10)
	require.NoError(t, err)
	assert.Equal(t, fresh, without)
}

func TestCollectionLineDerivedAmounts(t *testing.T) {
	line := collectionLine(2000, "pos", 12)
	line.InvoiceIssued = true
	line.VATRate = 10

	assert.InDelta(t, 200.0, line.VATAmount(), 1e-9)
	assert.InDelta(t, 240.0, line.DeductionAmount(), 1e-9)
	assert.InDelta(t, 1760.0, line.NetAmount(), 1e-9)
}
