package commission

import (
	"testing"

	"klinik-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabBulk(t *testing.T) {
	input := "2026-03-01\tAyşe Yılmaz\tZirkonyum Kuron\t1500\n" +
		"02.03.2026\tMehmet Demir\tProtez\t2250,50\n" +
		"bozuk satır\n" +
		"2026-03-05\t\tKuron\t100\n" // hasta adı boş

	lines, skipped := ParseLabBulk(input)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, skipped)

	assert.Equal(t, models.ExpenseKindLab, lines[0].Kind)
	assert.Equal(t, "Ayşe Yılmaz", lines[0].PatientName)
	assert.Equal(t, "Zirkonyum Kuron", lines[0].Procedure)
	assert.Equal(t, 1500.0, lines[0].Amount)

	// Türkçe tarih ve ondalık ayracı da kabul edilir
	assert.Equal(t, "Mehmet Demir", lines[1].PatientName)
	assert.Equal(t, 2250.50, lines[1].Amount)
	assert.Equal(t, 2, lines[1].Date.Day())
}

func TestParseImplantBulk(t *testing.T) {
	input := "2026-03-01\tAli Kaya\tStraumann\t10mm\t4.1\tadet\t2\t9000\n" +
		"2026-03-02\tVeli Can\tNobel\t8mm\t3.5\tadet\t0\t4000\n" + // adet 0
		"2026-03-03\tCan Tan\tOsstem\t12mm\t4.8\tadet\tiki\t5000\n" // adet sayı değil

	lines, skipped := ParseImplantBulk(input)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, skipped)

	line := lines[0]
	assert.Equal(t, models.ExpenseKindImplant, line.Kind)
	assert.Equal(t, "Straumann", line.Brand)
	assert.Equal(t, "10mm", line.Length)
	assert.Equal(t, "4.1", line.Diameter)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 9000.0, line.Amount)
}

func TestParseBulkEmptyInput(t *testing.T) {
	lines, skipped := ParseLabBulk("   \n  ")
	assert.Empty(t, lines)
	assert.Zero(t, skipped)
}
