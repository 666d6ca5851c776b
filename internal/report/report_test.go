package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"depo-system/internal/database/models"
)

func TestBuildCompletionRatios(t *testing.T) {
	items := []models.ShipmentItem{
		{QRCode: "NVG001", Box: "A", ProductQuantity: 5, GoodsAcceptanceStatus: models.GoodsAccepted},
		{QRCode: "NVG002", Box: "A", ProductQuantity: 5},
		{QRCode: "NVG003", Box: "B", ProductQuantity: 2, GoodsAcceptanceStatus: models.GoodsAccepted},
	}

	summary := Build(items)
	if summary.TotalBoxes != 2 {
		t.Fatalf("expected 2 boxes, got %d", summary.TotalBoxes)
	}
	if summary.CompletedBoxes != 1 {
		t.Errorf("expected 1 completed box, got %d", summary.CompletedBoxes)
	}
	if got := summary.Boxes[0].Completion.String(); got != "50" {
		t.Errorf("box A: expected completion 50, got %s", got)
	}
	if got := summary.Boxes[1].Completion.String(); got != "100" {
		t.Errorf("box B: expected completion 100, got %s", got)
	}
	// 2 of 3 items scanned overall.
	if got := summary.Completion.String(); got != "66.67" {
		t.Errorf("expected overall completion 66.67, got %s", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	summary := Build(nil)
	if summary.TotalBoxes != 0 {
		t.Errorf("expected 0 boxes, got %d", summary.TotalBoxes)
	}
	if !summary.Completion.IsZero() {
		t.Errorf("expected zero completion, got %s", summary.Completion)
	}
}

func TestWriteCSV(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	items := []models.ShipmentItem{
		{
			QRCode:                "NVG001",
			Box:                   "A",
			ShipmentNumber:        "SHP-1",
			ShipmentDate:          &at,
			FromLocationID:        "DC1",
			ToLocationID:          "S1",
			ProductQuantity:       5,
			PreAcceptanceStatus:   models.PreSuccess,
			PreAcceptanceBy:       "ayse",
			PreAcceptanceAt:       &at,
			GoodsAcceptanceStatus: models.GoodsAccepted,
			GoodsAcceptanceBy:     "ayse",
			GoodsAcceptanceAt:     &at,
			CurrentLocation:       models.LocationShelf,
		},
		{QRCode: "NVG002", Box: "A", ToLocationID: "S1", ProductQuantity: 5},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "qr_code,box,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "success") || !strings.Contains(lines[1], "accepted") {
		t.Errorf("expected status labels in row, got %s", lines[1])
	}
	if !strings.Contains(lines[1], "2025-06-01") {
		t.Errorf("expected shipment date in row, got %s", lines[1])
	}
	if !strings.Contains(lines[2], "unset") {
		t.Errorf("expected unset labels for untouched item, got %s", lines[2])
	}
}
