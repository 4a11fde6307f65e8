// internal/model/campaign.go
package model

import "time"

// Delivery statuses for a published campaign.
const (
	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
)

// Campaign is the list-view record of a published campaign. The workflow
// produces one on a successful publish; the list display only reads them.
type Campaign struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Channel        Channel   `db:"channel" json:"channel"`
	TargetAudience string    `db:"target_audience" json:"target_audience"`
	Count          string    `db:"count" json:"count"`
	ScheduledTime  *string   `db:"scheduled_time" json:"scheduled_time,omitempty"`
	DeliveryStatus string    `db:"delivery_status" json:"delivery_status"`
	LastError      string    `db:"last_error" json:"last_error,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
