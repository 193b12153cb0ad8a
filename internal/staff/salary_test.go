package staff

import (
	"testing"

	"klinik-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeSalaryPlain(t *testing.T) {
	out := ComputeSalary(SalaryInput{NetSalary: 30000})

	assert.Equal(t, 30000.0, out.PayableTotal)
	assert.Equal(t, 0.0, out.LeaveDeduction)
	assert.Equal(t, 0.0, out.OvertimePay)
}

func TestComputeSalaryWithAllowances(t *testing.T) {
	out := ComputeSalary(SalaryInput{
		NetSalary:      30000,
		AllowanceTotal: 2500, // yol + yemek
	})

	assert.Equal(t, 32500.0, out.PayableTotal)
}

func TestComputeSalaryUnpaidLeave(t *testing.T) {
	// günlük ücret 1000 TL, 3 gün ücretsiz izin
	out := ComputeSalary(SalaryInput{
		NetSalary:       30000,
		UnpaidLeaveDays: 3,
	})

	assert.Equal(t, 3000.0, out.LeaveDeduction)
	assert.Equal(t, 27000.0, out.PayableTotal)
}

func TestComputeSalaryOvertime(t *testing.T) {
	// saatlik ücret 100 TL, katsayı 1.5 -> 10 saat mesai = 1500 TL
	out := ComputeSalary(SalaryInput{
		NetSalary:     22000,
		OvertimeHours: 10,
	})

	assert.InDelta(t, 1500.0, out.OvertimePay, 0.001)
	assert.InDelta(t, 23500.0, out.PayableTotal, 0.001)
}

func TestComputeSalaryFull(t *testing.T) {
	out := ComputeSalary(SalaryInput{
		NetSalary:       30000,
		AllowanceTotal:  2000,
		UnpaidLeaveDays: 2,
		OvertimeHours:   22,
		CommissionPay:   5000,
		Bonus:           1000,
	})

	// 30000 + 2000 - 2000 + 22*(30000/220)*1.5 + 5000 + 1000
	assert.InDelta(t, 40500.0, out.PayableTotal, 0.001)
}

func TestComputeSalaryHalfDayLeave(t *testing.T) {
	out := ComputeSalary(SalaryInput{
		NetSalary:       30000,
		UnpaidLeaveDays: 0.5,
	})

	assert.Equal(t, 500.0, out.LeaveDeduction)
}

func TestAllowanceTotal(t *testing.T) {
	total := AllowanceTotal(models.StaffSalary{
		TransportAllowance: 800,
		MealAllowance:      1200,
		ChildAllowance:     300,
		OtherAllowance:     150,
	})

	assert.Equal(t, 2450.0, total)
}
