package websocket

import (
	"time"

	"github.com/OldStager01/gpa-tracker/pkg/models"
)

// Topic selects which part of the feed a client receives.
type Topic string

const (
	TopicAll         Topic = ""
	TopicCourses     Topic = "courses"
	TopicPredictions Topic = "predictions"
)

func (t Topic) Valid() bool {
	switch t {
	case TopicAll, TopicCourses, TopicPredictions:
		return true
	}
	return false
}

type MessageType string

const (
	MessageTypeCourseUpdate     MessageType = "course_update"
	MessageTypePrediction       MessageType = "prediction"
	MessageTypePredictionFailed MessageType = "prediction_failed"
	MessageTypeError            MessageType = "error"
	MessageTypeSubscription     MessageType = "subscription_update"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Severity  string      `json:"severity,omitempty"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func NewMessage(msgType MessageType, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type SubscriptionData struct {
	Action string `json:"action"`
	Topic  Topic  `json:"topic"`
}

// CourseUpdateData carries the course for additions and only the id for removals.
type CourseUpdateData struct {
	Action string         `json:"action"`
	Course *models.Course `json:"course,omitempty"`
	ID     int            `json:"id,omitempty"`
}

// route maps an internal event to the message type and topic it is sent on.
// ok is false for events that are not forwarded.
func route(eventType models.EventType) (msgType MessageType, topic Topic, ok bool) {
	switch eventType {
	case models.EventTypeCourseAdded, models.EventTypeCourseRemoved:
		return MessageTypeCourseUpdate, TopicCourses, true
	case models.EventTypePredictionComputed, models.EventTypePredictionCleared:
		return MessageTypePrediction, TopicPredictions, true
	case models.EventTypePredictionFailed:
		return MessageTypePredictionFailed, TopicPredictions, true
	case models.EventTypeError:
		return MessageTypeError, TopicAll, true
	default:
		return "", TopicAll, false
	}
}
