package events

import (
	"fmt"

	"github.com/OldStager01/gpa-tracker/pkg/models"
)

type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p == nil || p.bus == nil {
		return
	}
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) CourseAdded(course *models.Course) {
	msg := fmt.Sprintf("Course added: %s (%s, %d credits)", course.Name, course.Grade, course.Credits)
	event := models.NewEvent(models.EventTypeCourseAdded, msg).
		WithData(course)
	p.publish(event)
}

func (p *Publisher) CourseRemoved(courseID int) {
	msg := fmt.Sprintf("Course removed: %d", courseID)
	event := models.NewEvent(models.EventTypeCourseRemoved, msg).
		WithData(map[string]interface{}{"course_id": courseID})
	p.publish(event)
}

func (p *Publisher) PredictionComputed(prediction *models.Prediction) {
	msg := fmt.Sprintf("Prediction computed: %s", prediction.AcademicStanding)
	event := models.NewEvent(models.EventTypePredictionComputed, msg).
		WithData(prediction)

	if prediction.IsDeclining() {
		event.WithSeverity(models.SeverityWarning)
	}

	p.publish(event)
}

func (p *Publisher) PredictionCleared(reason string) {
	event := models.NewEvent(models.EventTypePredictionCleared, "Prediction cleared: "+reason).
		WithData(map[string]interface{}{"reason": reason})
	p.publish(event)
}

func (p *Publisher) PredictionFailed(reason string, err error) {
	event := models.NewEvent(models.EventTypePredictionFailed, "Prediction failed: "+reason).
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{
			"reason": reason,
			"error":  err.Error(),
		})
	p.publish(event)
}

func (p *Publisher) Error(message string, err error) {
	event := models.NewEvent(models.EventTypeError, message).
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}
