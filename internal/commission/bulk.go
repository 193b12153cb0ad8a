package commission

import (
	"strconv"
	"strings"
	"time"

	"klinik-backend/internal/models"
)

// Excel'den kopyalanıp yapıştırılan sekmeyle ayrılmış satırları gider
// satırlarına çevirir. Geçersiz satırlar sessizce atlanır, sayaç döner.
//
// Laboratuvar satırı: tarih \t hasta \t işlem \t tutar
// İmplant satırı:    tarih \t hasta \t marka \t boy \t çap \t birim \t adet \t tutar

func parseBulkDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseBulkAmount(s string) (float64, bool) {
	// Türkçe ondalık ayracı da kabul edilir
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParseLabBulk: Yapıştırılan metinden laboratuvar gider satırları üretir.
func ParseLabBulk(input string) ([]ExpenseLine, int) {
	var lines []ExpenseLine
	skipped := 0

	for _, raw := range strings.Split(strings.TrimSpace(input), "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		parts := strings.Split(raw, "\t")
		if len(parts) < 4 {
			skipped++
			continue
		}

		date, dateOK := parseBulkDate(parts[0])
		patient := strings.TrimSpace(parts[1])
		procedure := strings.TrimSpace(parts[2])
		amount, amountOK := parseBulkAmount(parts[3])

		if !dateOK || patient == "" || procedure == "" || !amountOK {
			skipped++
			continue
		}

		lines = append(lines, ExpenseLine{
			Kind:        models.ExpenseKindLab,
			Date:        &date,
			PatientName: patient,
			Procedure:   procedure,
			Amount:      amount,
		})
	}

	return lines, skipped
}

// ParseImplantBulk: Yapıştırılan metinden implant gider satırları üretir.
func ParseImplantBulk(input string) ([]ExpenseLine, int) {
	var lines []ExpenseLine
	skipped := 0

	for _, raw := range strings.Split(strings.TrimSpace(input), "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		parts := strings.Split(raw, "\t")
		if len(parts) < 8 {
			skipped++
			continue
		}

		date, dateOK := parseBulkDate(parts[0])
		patient := strings.TrimSpace(parts[1])
		brand := strings.TrimSpace(parts[2])
		length := strings.TrimSpace(parts[3])
		diameter := strings.TrimSpace(parts[4])
		unit := strings.TrimSpace(parts[5])
		quantity, qtyErr := strconv.Atoi(strings.TrimSpace(parts[6]))
		amount, amountOK := parseBulkAmount(parts[7])

		if !dateOK || patient == "" || brand == "" || length == "" || diameter == "" ||
			unit == "" || qtyErr != nil || quantity <= 0 || !amountOK {
			skipped++
			continue
		}

		lines = append(lines, ExpenseLine{
			Kind:        models.ExpenseKindImplant,
			Date:        &date,
			PatientName: patient,
			Brand:       brand,
			Length:      length,
			Diameter:    diameter,
			Unit:        unit,
			Quantity:    quantity,
			Amount:      amount,
		})
	}

	return lines, skipped
}
