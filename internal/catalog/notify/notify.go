// Package notify delivers best-effort change notifications. Delivery runs
// outside the mutation pipeline's success criteria: a lost notification is
// logged, never surfaced to the caller.
package notify

import (
	"context"
	"log/slog"
	"time"

	"catalog/internal/catalog/models"
	"catalog/pkg/email"
)

// Kind discriminates notification events.
type Kind string

const (
	KindItemCreated Kind = "item.created"
	KindItemUpdated Kind = "item.updated"
	KindItemDeleted Kind = "item.deleted"
)

// Event is the payload handed to notification sinks. The recipient block
// lets a downstream mail consumer address the message without a lookup.
type Event struct {
	Kind      Kind            `json:"kind"`
	ItemID    string          `json:"itemId"`
	Name      string          `json:"name,omitempty"`
	Version   int64           `json:"version"`
	Recipient email.Recipient `json:"recipient"`
	At        time.Time       `json:"at"`
}

// Notifier is the sink contract the pipeline publishes to.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NewEvent assembles an event for the given item change.
func NewEvent(kind Kind, item *models.Item, recipient email.Recipient) Event {
	e := Event{
		Kind:      kind,
		Recipient: recipient,
		At:        time.Now(),
	}
	if item != nil {
		e.ItemID = item.ID
		e.Name = item.Name
		e.Version = item.Version
	}
	return e
}

// LogNotifier writes events to the structured log. Used when no brokers are
// configured and as the fallback sink in tests.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	n.logger.InfoContext(ctx, "catalog notification",
		"kind", string(event.Kind),
		"item_id", event.ItemID,
		"name", event.Name,
		"version", event.Version,
		"recipient", event.Recipient.Address,
	)
	return nil
}
