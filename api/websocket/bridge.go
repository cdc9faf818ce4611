package websocket

import (
	"context"
	"encoding/json"

	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

// EventBridge forwards tracker events to WebSocket clients
type EventBridge struct {
	hub        *Hub
	eventsChan <-chan *models.Event
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewEventBridge(hub *Hub, eventsChan <-chan *models.Event) *EventBridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventBridge{
		hub:        hub,
		eventsChan: eventsChan,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

func (b *EventBridge) Start() {
	go b.run()
	logger.Info("WebSocket event bridge started")
}

func (b *EventBridge) Stop() {
	b.cancel()
	<-b.done
	logger.Info("WebSocket event bridge stopped")
}

func (b *EventBridge) run() {
	defer close(b.done)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.eventsChan:
			if !ok {
				logger.Info("Event channel closed, stopping bridge")
				return
			}
			b.forwardEvent(event)
		}
	}
}

func (b *EventBridge) forwardEvent(event *models.Event) {
	msg, topic, ok := convert(event)
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("Failed to marshal WebSocket message: %v", err)
		return
	}

	b.hub.BroadcastTopic(topic, data)
}

func convert(event *models.Event) (*OutgoingMessage, Topic, bool) {
	msgType, topic, ok := route(event.Type)
	if !ok {
		return nil, TopicAll, false
	}

	data := event.Data
	switch event.Type {
	case models.EventTypeCourseAdded:
		if course, isCourse := event.Data.(*models.Course); isCourse {
			data = CourseUpdateData{Action: "added", Course: course}
		}
	case models.EventTypeCourseRemoved:
		update := CourseUpdateData{Action: "removed"}
		if fields, isMap := event.Data.(map[string]interface{}); isMap {
			update.ID, _ = fields["course_id"].(int)
		}
		data = update
	case models.EventTypePredictionCleared:
		// clients treat a null prediction as "none stored"
		data = nil
	}

	return &OutgoingMessage{
		Type:      msgType,
		Timestamp: event.Timestamp,
		Severity:  string(event.Severity),
		Message:   event.Message,
		TraceID:   event.TraceID,
		Data:      data,
	}, topic, true
}
