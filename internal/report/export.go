package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"depo-system/internal/database/models"
)

var exportHeader = []string{
	"qr_code", "box", "shipment_number", "shipment_date",
	"from_location", "to_location", "quantity",
	"pre_acceptance", "pre_acceptance_by", "pre_acceptance_at",
	"goods_acceptance", "goods_acceptance_by", "goods_acceptance_at",
	"received_by", "location", "addressed_by", "addressed_at",
}

// WriteCSV flattens full item state into the tabular export the
// reporting consumers read.
func WriteCSV(w io.Writer, items []models.ShipmentItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, item := range items {
		row := []string{
			item.QRCode,
			item.Box,
			item.ShipmentNumber,
			formatDate(item.ShipmentDate),
			item.FromLocationID,
			item.ToLocationID,
			fmt.Sprintf("%d", item.ProductQuantity),
			preLabel(item.PreAcceptanceStatus),
			item.PreAcceptanceBy,
			formatTime(item.PreAcceptanceAt),
			item.GoodsAcceptanceStatus.Label(),
			item.GoodsAcceptanceBy,
			formatTime(item.GoodsAcceptanceAt),
			item.ReceivedByStoreID,
			string(item.CurrentLocation),
			item.AddressedBy,
			formatTime(item.AddressedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing export row for %s: %w", item.QRCode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func preLabel(status models.PreAcceptanceStatus) string {
	if status == models.PreUnset {
		return "unset"
	}
	return string(status)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
