package events

import (
	"context"
	"encoding/json"

	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

// EventLogger drains a subscription and writes every event to the structured log.
type EventLogger struct {
	eventChan <-chan *models.Event
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewEventLogger(eventChan <-chan *models.Event) *EventLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventLogger{
		eventChan: eventChan,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

func (l *EventLogger) Start() {
	go l.run()
}

// Stop cancels the loop and waits for it to exit.
func (l *EventLogger) Stop() {
	l.cancel()
	<-l.done
}

func (l *EventLogger) run() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			return
		case event, ok := <-l.eventChan:
			if !ok {
				return
			}
			l.processEvent(event)
		}
	}
}

func (l *EventLogger) processEvent(event *models.Event) {
	fields := map[string]interface{}{
		"event_id":   event.ID,
		"event_type": event.Type,
		"severity":   event.Severity,
	}
	if event.TraceID != "" {
		fields["trace_id"] = event.TraceID
	}

	switch data := event.Data.(type) {
	case *models.Course:
		fields["course_id"] = data.ID
	case *models.Prediction:
		fields["run_id"] = data.RunID
		fields["standing"] = data.AcademicStanding
		fields["accuracy"] = data.Accuracy
	}

	entry := logger.WithFields(fields)

	switch event.Severity {
	case models.SeverityCritical:
		entry.Error(event.Message)
	case models.SeverityWarning:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}
}

func (l *EventLogger) LogToJSON(event *models.Event) string {
	data, _ := json.Marshal(event)
	return string(data)
}
