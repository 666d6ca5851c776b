package syncjob

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"depo-system/internal/database/models"
	"depo-system/internal/store"
)

// feedRow mirrors the upstream shipment feed's column layout.
type feedRow struct {
	QRCode          string     `db:"qr_code"`
	Box             string     `db:"box"`
	ShipmentNumber  string     `db:"shipment_number"`
	ShipmentDate    *time.Time `db:"shipment_date"`
	FromLocationID  string     `db:"from_location_id"`
	ToLocationID    string     `db:"to_location_id"`
	ProductQuantity int32      `db:"product_quantity"`
}

const feedQuery = `
	SELECT qr_code, box, shipment_number, shipment_date,
	       from_location_id, to_location_id, product_quantity
	FROM shipment_items
	WHERE shipment_date >= ?
	ORDER BY shipment_date ASC`

// Runner copies shipment rows newer than the cutoff date from the
// relational feed into the item store. Re-runnable: rows whose QR
// code already exists are skipped, and the insert is all-or-nothing.
type Runner struct {
	feed   *sqlx.DB
	store  store.ItemStore
	cutoff time.Time
}

func NewRunner(feed *sqlx.DB, itemStore store.ItemStore, cutoff time.Time) *Runner {
	return &Runner{feed: feed, store: itemStore, cutoff: cutoff}
}

// OpenFeed connects to the upstream feed database.
func OpenFeed(driver, dsn string) (*sqlx.DB, error) {
	feed, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to shipment feed: %w", err)
	}
	return feed, nil
}

// RunOnce performs a single copy pass and returns the number of rows
// read from the feed.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	var rows []feedRow
	if err := r.feed.SelectContext(ctx, &rows, feedQuery, r.cutoff); err != nil {
		return 0, fmt.Errorf("reading shipment feed: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	items := make([]models.ShipmentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.ShipmentItem{
			QRCode:          row.QRCode,
			Box:             row.Box,
			ShipmentNumber:  row.ShipmentNumber,
			ShipmentDate:    row.ShipmentDate,
			FromLocationID:  row.FromLocationID,
			ToLocationID:    row.ToLocationID,
			ProductQuantity: row.ProductQuantity,
		})
	}

	if err := r.store.InsertBatch(ctx, items); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// RunEvery keeps copying on the given interval until the context is
// cancelled. Failures are logged and the next tick retries.
func (r *Runner) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := r.RunOnce(ctx)
		if err != nil {
			log.Printf("shipment sync failed: %v", err)
		} else {
			log.Printf("shipment sync copied %d rows", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
