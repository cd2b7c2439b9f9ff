package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"condo_ledger/internal/logger"
	"condo_ledger/internal/models"
	"condo_ledger/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepository
	now       func() time.Time
}

func NewEventLogService(eventRepo repository.EventRepository, now func() time.Time) *EventLogService {
	if now == nil {
		now = time.Now
	}
	return &EventLogService{eventRepo: eventRepo, now: now}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", invalid("from", "no puede ser posterior a to")
	}

	return from, to, normalizeEventType(f.Type), nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.LedgerEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, from, to, typ)
	if err != nil {
		return nil, storeErr("list events", err)
	}
	return events, nil
}

// Record appends e, assigning an id and timestamp when missing.
func (s *EventLogService) Record(ctx context.Context, e models.LedgerEvent) error {
	if strings.TrimSpace(e.Type) == "" {
		return invalid("type", msgRequired)
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now()
	}
	e.OccurredAt = e.OccurredAt.UTC()
	if err := s.eventRepo.Append(ctx, e); err != nil {
		return storeErr("append event", err)
	}
	return nil
}

// eventRecorder appends audit events on behalf of other services. A failed
// append is logged and never fails the operation being audited.
type eventRecorder struct {
	sink EventLog
	log  *logger.Logger
}

func newEventRecorder(sink EventLog, log *logger.Logger) *eventRecorder {
	if log == nil {
		log = logger.Nop()
	}
	return &eventRecorder{sink: sink, log: log}
}

func (r *eventRecorder) record(ctx context.Context, typ, actor, description string, meta any) {
	if r == nil || r.sink == nil {
		return
	}
	e := models.LedgerEvent{
		Type:        typ,
		Actor:       actor,
		Description: description,
		Metadata:    meta,
	}
	if err := r.sink.Record(ctx, e); err != nil {
		r.log.Errorw("event_append_failed", "type", typ, "actor", actor, "error", err)
	}
}
