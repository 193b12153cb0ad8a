package staff

import "klinik-backend/internal/models"

const (
	// aylık gün sayısı; ücretsiz izin kesintisi günlük ücret üzerinden
	salaryDaysPerMonth = 30.0

	// aylık standart çalışma saati
	workHoursPerMonth = 220.0

	// fazla mesai katsayısı
	overtimeMultiplier = 1.5

	// yıllık izin hakkı (gün)
	AnnualLeaveDays = 20.0
)

// SalaryInput: Bir dönemin maaş hesaplama girdileri. Sabit yardımlar
// maaş tanımından, izin ve mesai dönem kayıtlarından gelir.
type SalaryInput struct {
	NetSalary       float64
	AllowanceTotal  float64
	UnpaidLeaveDays float64
	OvertimeHours   float64
	CommissionPay   float64
	Bonus           float64
}

// SalaryBreakdown: Hesaplamanın ara kalemleri; kayıt anında saklanır.
type SalaryBreakdown struct {
	NetSalary       float64 `json:"net_salary"`
	AllowanceTotal  float64 `json:"allowance_total"`
	UnpaidLeaveDays float64 `json:"unpaid_leave_days"`
	LeaveDeduction  float64 `json:"leave_deduction"`
	OvertimeHours   float64 `json:"overtime_hours"`
	OvertimePay     float64 `json:"overtime_pay"`
	CommissionPay   float64 `json:"commission_pay"`
	Bonus           float64 `json:"bonus"`
	PayableTotal    float64 `json:"payable_total"`
}

// ComputeSalary: Ödenecek tutarı hesaplar.
//
//	günlük ücret  = net / 30
//	saatlik ücret = net / 220
//	ödenecek      = net + yardımlar - ücretsiz izin*günlük
//	                + mesai*saatlik*1.5 + prim + ikramiye
func ComputeSalary(in SalaryInput) SalaryBreakdown {
	leaveDeduction := in.UnpaidLeaveDays * in.NetSalary / salaryDaysPerMonth
	overtimePay := in.OvertimeHours * in.NetSalary / workHoursPerMonth * overtimeMultiplier

	return SalaryBreakdown{
		NetSalary:       in.NetSalary,
		AllowanceTotal:  in.AllowanceTotal,
		UnpaidLeaveDays: in.UnpaidLeaveDays,
		LeaveDeduction:  leaveDeduction,
		OvertimeHours:   in.OvertimeHours,
		OvertimePay:     overtimePay,
		CommissionPay:   in.CommissionPay,
		Bonus:           in.Bonus,
		PayableTotal: in.NetSalary + in.AllowanceTotal - leaveDeduction +
			overtimePay + in.CommissionPay + in.Bonus,
	}
}

// AllowanceTotal: Maaş tanımındaki sabit yardımların toplamı.
func AllowanceTotal(s models.StaffSalary) float64 {
	return s.TransportAllowance + s.MealAllowance + s.ChildAllowance + s.OtherAllowance
}
