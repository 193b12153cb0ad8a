package ledger

import (
	"testing"
	"time"

	"klinik-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func mov(id uint, credit, debit, balance float64) models.AccountMovement {
	return models.AccountMovement{
		ID:      id,
		Date:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Credit:  credit,
		Debit:   debit,
		Balance: balance,
	}
}

func TestApplyRunningBalances(t *testing.T) {
	movs := []models.AccountMovement{
		mov(1, 1000, 0, 0),
		mov(2, 0, 400, 0),
		mov(3, 250, 0, 0),
	}

	changed := applyRunningBalances(movs)

	assert.Len(t, changed, 3)
	assert.Equal(t, 1000.0, movs[0].Balance)
	assert.Equal(t, 600.0, movs[1].Balance)
	assert.Equal(t, 850.0, movs[2].Balance)
}

func TestApplyRunningBalancesSkipsUnchanged(t *testing.T) {
	movs := []models.AccountMovement{
		mov(1, 500, 0, 500),
		mov(2, 0, 100, 400),
	}

	changed := applyRunningBalances(movs)
	assert.Empty(t, changed)
}

func TestApplyRunningBalancesAfterRemoval(t *testing.T) {
	// ortadaki hareket silinmiş gibi: kalanların bakiyesi kayar
	movs := []models.AccountMovement{
		mov(1, 1000, 0, 1000),
		mov(3, 250, 0, 1850), // eski bakiye, aradaki 600 TL'lik alacak silindi
	}

	changed := applyRunningBalances(movs)

	assert.Len(t, changed, 1)
	assert.Equal(t, uint(3), changed[0].ID)
	assert.Equal(t, 1250.0, changed[0].Balance)
	assert.Equal(t, 1250.0, movs[1].Balance)
}

func TestApplyRunningBalancesEmpty(t *testing.T) {
	assert.Empty(t, applyRunningBalances(nil))
}
