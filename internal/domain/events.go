package domain

import (
	"context"
	"time"
)

// ScheduleEventType names a change to a DaySchedule.
type ScheduleEventType string

const (
	ScheduleEventSlotAdded       ScheduleEventType = "slot.added"
	ScheduleEventSlotDeleted     ScheduleEventType = "slot.deleted"
	ScheduleEventSlotBooked      ScheduleEventType = "slot.booked"
	ScheduleEventScheduleCreated ScheduleEventType = "schedule.created"
	ScheduleEventScheduleUpdated ScheduleEventType = "schedule.updated"
	ScheduleEventScheduleDeleted ScheduleEventType = "schedule.deleted"
)

// ScheduleEvent is published after a schedule change has been persisted.
type ScheduleEvent struct {
	Type       ScheduleEventType `json:"type"`
	ScheduleID string            `json:"scheduleId,omitempty"`
	DoctorID   string            `json:"doctorId"`
	Date       string            `json:"date"`
	Slot       *Slot             `json:"slot,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// ScheduleEventPublisher delivers schedule changes to downstream consumers (infrastructure port).
type ScheduleEventPublisher interface {
	Publish(ctx context.Context, event ScheduleEvent) error
}
