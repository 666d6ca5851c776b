package acceptance

import "depo-system/internal/database/models"

// BoxSummary is the per-box view derived from flat item records. It
// is never stored; re-derive on every read.
type BoxSummary struct {
	Box            string `json:"box"`
	ShipmentNumber string `json:"shipment_number"`
	ToLocationID   string `json:"to_location_id"`
	// TotalQuantity is the box-level quantity duplicated on every
	// item; summing it would double count.
	TotalQuantity int32 `json:"total_quantity"`
	ItemCount     int   `json:"item_count"`
	ScannedCount  int   `json:"scanned_count"`
}

// Aggregate groups flat items into box summaries, preserving the
// order boxes are first encountered in.
func Aggregate(items []models.ShipmentItem) []BoxSummary {
	index := make(map[string]int, len(items))
	var summaries []BoxSummary

	for _, item := range items {
		i, ok := index[item.Box]
		if !ok {
			index[item.Box] = len(summaries)
			summaries = append(summaries, BoxSummary{
				Box:            item.Box,
				ShipmentNumber: item.ShipmentNumber,
				ToLocationID:   item.ToLocationID,
				TotalQuantity:  item.ProductQuantity,
			})
			i = len(summaries) - 1
		}
		summaries[i].ItemCount++
		if item.GoodsAcceptanceStatus == models.GoodsAccepted {
			summaries[i].ScannedCount++
		}
	}
	return summaries
}
