package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

const (
	RecordAdmittedEvent = "record.admitted"
	RecordRejectedEvent = "record.rejected"
	RecordReplacedEvent = "record.replaced"
	RecordDeletedEvent  = "record.deleted"
)

// ChangeEvents lists the event types after which stored records differ
var ChangeEvents = []string{RecordAdmittedEvent, RecordReplacedEvent, RecordDeletedEvent}

type RecordAdmitted struct {
	Record entities.Record `json:"record"`
}

type RecordRejected struct {
	Kind       entities.RecordKind `json:"kind"`
	RecordID   uuid.UUID           `json:"record_id"`
	Violations []string            `json:"violations"`
}

type RecordReplaced struct {
	Old entities.Record `json:"old"`
	New entities.Record `json:"new"`
}

type RecordDeleted struct {
	Kind     entities.RecordKind `json:"kind"`
	RecordID uuid.UUID           `json:"record_id"`
}

// RecordStream names the stream of one record
func RecordStream(kind entities.RecordKind, id uuid.UUID) string {
	return kind.String() + "-" + id.String()
}

func NewRecordAdmittedEvent(record entities.Record, at time.Time) Event {
	return NewEvent(RecordAdmittedEvent, RecordStream(record.Kind(), record.RecordID()), RecordAdmitted{Record: record}, at)
}

func NewRecordRejectedEvent(record entities.Record, violations []string, at time.Time) Event {
	return NewEvent(RecordRejectedEvent, RecordStream(record.Kind(), record.RecordID()), RecordRejected{
		Kind:       record.Kind(),
		RecordID:   record.RecordID(),
		Violations: violations,
	}, at)
}

func NewRecordReplacedEvent(old, replacement entities.Record, at time.Time) Event {
	return NewEvent(RecordReplacedEvent, RecordStream(replacement.Kind(), replacement.RecordID()), RecordReplaced{
		Old: old,
		New: replacement,
	}, at)
}

func NewRecordDeletedEvent(kind entities.RecordKind, id uuid.UUID, at time.Time) Event {
	return NewEvent(RecordDeletedEvent, RecordStream(kind, id), RecordDeleted{Kind: kind, RecordID: id}, at)
}
