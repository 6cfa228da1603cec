package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rootslab/opsfinance/internal"
)

const (
	EventTypeRecordCreated       = "record.created"
	EventTypeRecordUpdated       = "record.updated"
	EventTypeRecordStatusChanged = "record.status_changed"
	EventTypeRecordDeleted       = "record.deleted"
	EventTypeBudgetUpdated       = "budget.updated"
)

// RecordKind discriminates which table a record event refers to.
const (
	RecordKindExpense  = "expense"
	RecordKindOvertime = "overtime"
)

type RecordEvent struct {
	BaseEvent
	Kind     string `json:"kind"`
	RecordID string `json:"record_id"`
	Status   string `json:"status,omitempty"`
	Amount   int64  `json:"amount,omitempty"`
}

func newRecordEvent(eventType, kind, recordID, status string, amount int64) *RecordEvent {
	return &RecordEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"kind":      kind,
				"record_id": recordID,
				"status":    status,
				"amount":    amount,
			},
		},
		Kind:     kind,
		RecordID: recordID,
		Status:   status,
		Amount:   amount,
	}
}

func NewRecordCreatedEvent(kind, recordID, status string, amount int64) *RecordEvent {
	return newRecordEvent(EventTypeRecordCreated, kind, recordID, status, amount)
}

func NewRecordUpdatedEvent(kind, recordID, status string, amount int64) *RecordEvent {
	return newRecordEvent(EventTypeRecordUpdated, kind, recordID, status, amount)
}

func NewRecordStatusChangedEvent(kind, recordID, status string) *RecordEvent {
	return newRecordEvent(EventTypeRecordStatusChanged, kind, recordID, status, 0)
}

func NewRecordDeletedEvent(kind, recordID string) *RecordEvent {
	return newRecordEvent(EventTypeRecordDeleted, kind, recordID, "", 0)
}

type BudgetUpdatedEvent struct {
	BaseEvent
	Amount int64 `json:"amount"`
}

func NewBudgetUpdatedEvent(amount int64) *BudgetUpdatedEvent {
	return &BudgetUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBudgetUpdated,
			Timestamp: time.Now(),
			Data:      map[string]interface{}{"amount": amount},
		},
		Amount: amount,
	}
}

// RegisterAuditSubscriber wires a structured-log audit trail for every
// mutation event the service publishes. The acting user is read from the
// publisher's request context; background publishers log an empty actor.
func RegisterAuditSubscriber(bus *EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event Event) error {
		logger.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"actor", internal.UserIDFromContext(ctx),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, t := range []string{
		EventTypeRecordCreated,
		EventTypeRecordUpdated,
		EventTypeRecordStatusChanged,
		EventTypeRecordDeleted,
		EventTypeBudgetUpdated,
	} {
		bus.Subscribe(t, audit)
	}
}
