package dashboard

import (
	"fmt"
	"time"

	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type CommissionChartPoint struct {
	Label           string  `json:"label"` // ay başlangıcı
	Count           int64   `json:"count"`
	GrossCollected  float64 `json:"gross_collected"`
	NetCollected    float64 `json:"net_collected"`
	FinalCommission float64 `json:"final_commission"`
}

type CommissionChartTotals struct {
	Count           int64   `json:"count"`
	GrossCollected  float64 `json:"gross_collected"`
	NetCollected    float64 `json:"net_collected"`
	FinalCommission float64 `json:"final_commission"`
}

type CommissionChartResponse struct {
	BranchID    uint                   `json:"branch_id"`
	Year        int                    `json:"year"`
	Points      []CommissionChartPoint `json:"points"`
	GrandTotals CommissionChartTotals  `json:"grand_totals"`
}

// GET /api/dashboard/commission-chart?year=2026&branch_id=1
// Ay bazında prim toplamları; kayıtlar dönem başlangıcının ayına sayılır.
func CommissionChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		year := time.Now().Year()
		if raw := c.Query("year"); raw != "" {
			if _, err := fmt.Sscan(raw, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
			}
		}

		loc := time.Now().Location()
		start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
		end := time.Date(year, 12, 31, 0, 0, 0, 0, loc)

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Count  int64     `gorm:"column:count"`
			Gross  float64   `gorm:"column:gross"`
			Net    float64   `gorm:"column:net"`
			Final  float64   `gorm:"column:final"`
		}
		var rows []row

		sql := `
			SELECT date_trunc('month', period_start)::date AS bucket,
				   COUNT(*) AS count,
				   SUM(gross_collected) AS gross,
				   SUM(net_collected) AS net,
				   SUM(final_commission) AS final
			FROM commissions
			WHERE branch_id = ? AND period_start >= ? AND period_start <= ?
			GROUP BY bucket
			ORDER BY bucket ASC;
		`

		if err := database.DB.Raw(sql, branchID, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		points := make([]CommissionChartPoint, 0, len(rows))
		grand := CommissionChartTotals{}

		for _, r := range rows {
			points = append(points, CommissionChartPoint{
				Label:           r.Bucket.Format("2006-01"),
				Count:           r.Count,
				GrossCollected:  r.Gross,
				NetCollected:    r.Net,
				FinalCommission: r.Final,
			})

			grand.Count += r.Count
			grand.GrossCollected += r.Gross
			grand.NetCollected += r.Net
			grand.FinalCommission += r.Final
		}

		return c.JSON(CommissionChartResponse{
			BranchID:    branchID,
			Year:        year,
			Points:      points,
			GrandTotals: grand,
		})
	}
}
