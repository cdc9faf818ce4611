package models

import "time"

type EventType string

const (
	EventTypeCourseAdded        EventType = "course_added"
	EventTypeCourseRemoved      EventType = "course_removed"
	EventTypePredictionComputed EventType = "prediction_computed"
	EventTypePredictionCleared  EventType = "prediction_cleared"
	EventTypePredictionFailed   EventType = "prediction_failed"
	EventTypeError              EventType = "error"
)

// AllEventTypes lists every event type the bus routes.
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeCourseAdded,
		EventTypeCourseRemoved,
		EventTypePredictionComputed,
		EventTypePredictionCleared,
		EventTypePredictionFailed,
		EventTypeError,
	}
}

type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityCritical EventSeverity = "critical"
)

// Event represents an internal system event
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Severity  EventSeverity `json:"severity"`
	Timestamp time.Time     `json:"timestamp"`
	Message   string        `json:"message"`
	Data      interface{}   `json:"data,omitempty"`
	TraceID   string        `json:"trace_id,omitempty"`
}

func NewEvent(eventType EventType, message string) *Event {
	return &Event{
		ID:        NewUUID(),
		Type:      eventType,
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
		Message:   message,
	}
}

func (e *Event) WithSeverity(severity EventSeverity) *Event {
	e.Severity = severity
	return e
}

func (e *Event) WithData(data interface{}) *Event {
	e.Data = data
	return e
}

func (e *Event) WithTraceID(traceID string) *Event {
	e.TraceID = traceID
	return e
}
