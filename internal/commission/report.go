package commission

import (
	"fmt"

	"klinik-backend/internal/database"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type DistributionItem struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type ReportResponse struct {
	ReferenceNo       string             `json:"reference_no"`
	DoctorName        string             `json:"doctor_name"`
	Specialty         string             `json:"specialty"`
	BranchName        string             `json:"branch_name"`
	PeriodStart       string             `json:"period_start"`
	PeriodEnd         string             `json:"period_end"`
	CreatedBy         string             `json:"created_by"`
	CreatedAt         string             `json:"created_at"`
	Totals            Result             `json:"totals"`
	PaymentBreakdown  []DistributionItem `json:"payment_breakdown"`
	ExpenseBreakdown  []DistributionItem `json:"expense_breakdown"`
	CollectionCount   int                `json:"collection_count"`
	ExpenseCount      int                `json:"expense_count"`
	InvoicedTotal     float64            `json:"invoiced_total"`
	VATTotal          float64            `json:"vat_total"`
}

func expenseLabel(exp models.CommissionExpense) string {
	switch exp.Kind {
	case models.ExpenseKindLab:
		return "Laboratuvar"
	case models.ExpenseKindImplant:
		return "İmplant"
	default:
		if exp.Category != "" {
			return exp.Category
		}
		return "Diğer Giderler"
	}
}

func loadReport(cmID uint) (*ReportResponse, *models.Commission, error) {
	var cm models.Commission
	if err := database.DB.Preload("Doctor").Preload("Branch").
		Preload("Collections").Preload("Expenses").Preload("Adjustments").
		First(&cm, "id = ?", cmID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Prim kaydı bulunamadı")
	}

	resp := ReportResponse{
		ReferenceNo:     cm.ReferenceNo,
		DoctorName:      cm.Doctor.FullName(),
		Specialty:       cm.Doctor.Specialty,
		BranchName:      cm.Branch.Name,
		PeriodStart:     cm.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       cm.PeriodEnd.Format("2006-01-02"),
		CreatedBy:       cm.CreatedBy,
		CreatedAt:       cm.CreatedAt.Format("2006-01-02 15:04:05"),
		Totals:          resultFromCommission(cm),
		CollectionCount: len(cm.Collections),
		ExpenseCount:    len(cm.Expenses),
	}

	// ödeme şekline göre dağılım (satırdaki serbest metin üzerinden)
	payIdx := map[string]int{}
	for _, line := range cm.Collections {
		i, ok := payIdx[line.PaymentMethod]
		if !ok {
			i = len(resp.PaymentBreakdown)
			payIdx[line.PaymentMethod] = i
			resp.PaymentBreakdown = append(resp.PaymentBreakdown, DistributionItem{Label: line.PaymentMethod})
		}
		resp.PaymentBreakdown[i].Count++
		resp.PaymentBreakdown[i].Total += line.Amount

		if line.InvoiceIssued {
			resp.InvoicedTotal += line.Amount
		}
		resp.VATTotal += line.VATAmount
	}

	// gider kategorisine göre dağılım
	expIdx := map[string]int{}
	for _, exp := range cm.Expenses {
		label := expenseLabel(exp)
		i, ok := expIdx[label]
		if !ok {
			i = len(resp.ExpenseBreakdown)
			expIdx[label] = i
			resp.ExpenseBreakdown = append(resp.ExpenseBreakdown, DistributionItem{Label: label})
		}
		resp.ExpenseBreakdown[i].Count++
		resp.ExpenseBreakdown[i].Total += exp.Amount
	}

	return &resp, &cm, nil
}

// -------------------------------------------------
// GET /api/commissions/:id/report
// -------------------------------------------------
func CommissionReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cmID uint
		if _, err := fmt.Sscan(c.Params("id"), &cmID); err != nil || cmID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz prim ID")
		}

		resp, _, err := loadReport(cmID)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/commissions/:id/report/excel
// -------------------------------------------------
func CommissionReportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cmID uint
		if _, err := fmt.Sscan(c.Params("id"), &cmID); err != nil || cmID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz prim ID")
		}

		rep, cm, err := loadReport(cmID)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Prim Raporu"
		f.SetSheetName("Sheet1", sheet)

		bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

		// başlık bloğu
		header := [][]interface{}{
			{"Prim Raporu"},
			{"Referans", rep.ReferenceNo},
			{"Hekim", rep.DoctorName},
			{"Branş", rep.Specialty},
			{"Şube", rep.BranchName},
			{"Dönem", fmt.Sprintf("%s - %s", rep.PeriodStart, rep.PeriodEnd)},
			{"Hazırlayan", rep.CreatedBy},
		}
		for i, row := range header {
			for j, val := range row {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
				f.SetCellValue(sheet, cell, val)
			}
		}
		f.SetCellStyle(sheet, "A1", "A7", bold)

		// toplamlar
		totals := [][]interface{}{
			{"Brüt Tahsilat", rep.Totals.GrossCollected},
			{"Toplam Kesinti", rep.Totals.DeductionTotal},
			{"Net Ciro Eklemeleri", rep.Totals.RevenueAdjTotal},
			{"Net Tahsilat", rep.Totals.NetCollected},
			{"Toplam Gider", rep.Totals.ExpenseTotal},
			{"Prim Matrahı", rep.Totals.Base},
			{"Prim Oranı (%)", rep.Totals.Rate},
			{"Hesaplanan Prim", rep.Totals.RawCommission},
			{"Hak Ediş Eklemeleri", rep.Totals.EntitlementTotal},
			{"Ödenecek Toplam", rep.Totals.FinalCommission},
		}
		rowNo := 9
		for _, row := range totals {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo), row[0])
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNo), row[1])
			rowNo++
		}

		// tahsilat detayları ayrı sayfada
		detailSheet := "Tahsilatlar"
		f.NewSheet(detailSheet)
		detailHeader := []string{"Tarih", "Hasta", "Ödeme Şekli", "Tutar", "Fatura", "KDV", "Taksit", "Kesinti %", "Kesinti", "Net"}
		for j, h := range detailHeader {
			cell, _ := excelize.CoordinatesToCellName(j+1, 1)
			f.SetCellValue(detailSheet, cell, h)
		}
		f.SetCellStyle(detailSheet, "A1", "J1", bold)
		for i, line := range cm.Collections {
			invoiced := "Hayır"
			if line.InvoiceIssued {
				invoiced = "Evet"
			}
			values := []interface{}{
				line.Date.Format("2006-01-02"), line.PatientName, line.PaymentMethod,
				line.Amount, invoiced, line.VATAmount, line.InstallmentCount,
				line.DeductionRate, line.DeductionAmount, line.NetAmount,
			}
			for j, val := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				f.SetCellValue(detailSheet, cell, val)
			}
		}

		// giderler ayrı sayfada
		expSheet := "Giderler"
		f.NewSheet(expSheet)
		expHeader := []string{"Tür", "Tarih", "Hasta", "Detay", "Tutar"}
		for j, h := range expHeader {
			cell, _ := excelize.CoordinatesToCellName(j+1, 1)
			f.SetCellValue(expSheet, cell, h)
		}
		f.SetCellStyle(expSheet, "A1", "E1", bold)
		for i, exp := range cm.Expenses {
			dateStr := ""
			if exp.Date != nil {
				dateStr = exp.Date.Format("2006-01-02")
			}
			detail := exp.Procedure
			if exp.Kind == models.ExpenseKindImplant {
				detail = fmt.Sprintf("%s %s/%s x%d", exp.Brand, exp.Length, exp.Diameter, exp.Quantity)
			} else if exp.Kind == models.ExpenseKindOther {
				detail = exp.Description
			}
			values := []interface{}{expenseLabel(exp), dateStr, exp.PatientName, detail, exp.Amount}
			for j, val := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				f.SetCellValue(expSheet, cell, val)
			}
		}

		f.SetColWidth(sheet, "A", "B", 24)
		f.SetColWidth(detailSheet, "A", "J", 16)
		f.SetColWidth(expSheet, "A", "E", 20)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("prim-raporu-%s.xlsx", cm.PeriodStart.Format("2006-01"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
