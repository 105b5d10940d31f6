// Package events holds event-distribution implementations that are not tied
// to a specific broker.
package events

import (
	"context"

	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
)

// NoopPublisher discards every event. Used when no broker is configured.
type NoopPublisher struct{}

var _ portssvc.EventPublisher = NoopPublisher{}

// PublishJournalCreated implements portssvc.EventPublisher.
func (NoopPublisher) PublishJournalCreated(context.Context, portssvc.JournalCreatedEvent) error {
	return nil
}
