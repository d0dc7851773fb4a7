package worker

// stock_alert_worker.go
// Processes low-stock alert jobs from QueueStockAlert.
// Sends a notification email to the configured recipient when a product
// crosses its min_stock_level after a sale.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vaibhav-12521/Invento/internal/infra"

	"github.com/rs/zerolog/log"
)

// StockAlertPayload is the job envelope sent to QueueStockAlert.
type StockAlertPayload struct {
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	StockLeft     int    `json:"stock_left"`
	MinStockLevel int    `json:"min_stock_level"`
}

type StockAlertWorker struct {
	mailer *infra.Mailer
	to     string
}

// NewStockAlertWorker creates a worker sending alerts to the given address.
// An empty address disables sending; jobs are logged and dropped.
func NewStockAlertWorker(mailer *infra.Mailer, to string) *StockAlertWorker {
	return &StockAlertWorker{mailer: mailer, to: to}
}

func (w *StockAlertWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("stock_alert_worker: invalid payload")
		return
	}

	if w.to == "" {
		log.Info().
			Uint("product_id", payload.ProductID).
			Int("stock_left", payload.StockLeft).
			Msg("stock_alert_worker: no recipient configured — alert logged only")
		return
	}

	subject := fmt.Sprintf("Low stock: %s", payload.ProductName)
	body := fmt.Sprintf(
		"Product %q (id %d) is down to %d units (minimum level %d). Consider restocking.",
		payload.ProductName, payload.ProductID, payload.StockLeft, payload.MinStockLevel,
	)

	if err := w.mailer.Send(w.to, subject, body); err != nil {
		log.Error().Err(err).Str("to", w.to).Msg("stock_alert_worker: failed to send alert")
		return
	}
	log.Info().
		Uint("product_id", payload.ProductID).
		Str("to", w.to).
		Msg("stock_alert_worker: alert sent")
}
