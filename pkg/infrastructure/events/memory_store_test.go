package events

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

var at = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func TestInMemoryEventStore_VersionsPerStream(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	id := uuid.New()

	for i := 0; i < 3; i++ {
		if err := store.AppendEvent("stream", NewRecordDeletedEvent(entities.KindDemand, id, at)); err != nil {
			t.Fatalf("AppendEvent() error = %v", err)
		}
	}
	if err := store.AppendEvent("other", NewRecordDeletedEvent(entities.KindStock, id, at)); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}

	events, _ := store.ReadEvents("stream", 2)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events from version 2, got %d", len(events))
	}
	if events[0].Version() != 2 || events[1].Version() != 3 {
		t.Errorf("Expected versions 2 and 3, got %d and %d", events[0].Version(), events[1].Version())
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 4 {
		t.Errorf("Expected 4 events overall, got %d", len(all))
	}
	if all[3].StreamID() != "other" || all[3].Version() != 1 {
		t.Errorf("Expected other stream at version 1, got %s at %d", all[3].StreamID(), all[3].Version())
	}

	if events, _ := store.ReadEvents("missing", 1); len(events) != 0 {
		t.Errorf("Expected no events for unknown stream, got %d", len(events))
	}
	if events, _ := store.ReadAllEvents(10); len(events) != 0 {
		t.Errorf("Expected no events past the end, got %d", len(events))
	}
}

func TestInMemoryEventStore_NotifiesSubscribers(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	var seen []string
	handler := HandlerFunc{
		Types: ChangeEvents,
		Fn: func(e Event) error {
			seen = append(seen, e.Type())
			return errors.New("handler failures are logged only")
		},
	}
	if err := store.Subscribe(ChangeEvents, handler); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	demand := &entities.Demand{QuantityRecord: entities.QuantityRecord{ID: uuid.New()}}
	events := []Event{
		NewRecordAdmittedEvent(demand, at),
		NewRecordRejectedEvent(demand, []string{"Missing Material."}, at),
		NewRecordReplacedEvent(demand, demand, at),
		NewRecordDeletedEvent(entities.KindDemand, demand.ID, at),
	}
	for _, e := range events {
		if err := store.AppendEvent(e.StreamID(), e); err != nil {
			t.Fatalf("AppendEvent() error = %v", err)
		}
	}

	expected := []string{RecordAdmittedEvent, RecordReplacedEvent, RecordDeletedEvent}
	if len(seen) != len(expected) {
		t.Fatalf("Expected %d notifications, got %v", len(expected), seen)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("Notification %d: expected %s, got %s", i, expected[i], seen[i])
		}
	}

	stream, _ := store.ReadEvents(RecordStream(entities.KindDemand, demand.ID), 1)
	if len(stream) != 4 {
		t.Errorf("Expected 4 events in the record stream, got %d", len(stream))
	}
	rejected := stream[1].Data().(RecordRejected)
	if rejected.Kind != entities.KindDemand || len(rejected.Violations) != 1 {
		t.Errorf("Unexpected rejection payload: %+v", rejected)
	}
}
