package report

import (
	"github.com/shopspring/decimal"

	"depo-system/internal/acceptance"
	"depo-system/internal/database/models"
)

// BoxReport extends the derived box summary with a completion ratio
// for the reporting views.
type BoxReport struct {
	acceptance.BoxSummary
	// Completion is scanned/total items as a percentage, 2 dp.
	Completion decimal.Decimal `json:"completion"`
}

type Summary struct {
	Boxes          []BoxReport     `json:"boxes"`
	TotalBoxes     int             `json:"total_boxes"`
	CompletedBoxes int             `json:"completed_boxes"`
	Completion     decimal.Decimal `json:"completion"`
}

var hundred = decimal.NewFromInt(100)

// Build derives the report from flat item records.
func Build(items []models.ShipmentItem) Summary {
	summaries := acceptance.Aggregate(items)

	report := Summary{
		Boxes:      make([]BoxReport, 0, len(summaries)),
		TotalBoxes: len(summaries),
		Completion: decimal.Zero,
	}

	scannedItems := 0
	totalItems := 0
	for _, s := range summaries {
		report.Boxes = append(report.Boxes, BoxReport{
			BoxSummary: s,
			Completion: ratio(s.ScannedCount, s.ItemCount),
		})
		if s.ScannedCount == s.ItemCount {
			report.CompletedBoxes++
		}
		scannedItems += s.ScannedCount
		totalItems += s.ItemCount
	}
	report.Completion = ratio(scannedItems, totalItems)
	return report
}

func ratio(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(whole)), 2)
}
