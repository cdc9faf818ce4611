package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/OldStager01/gpa-tracker/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	mu    sync.RWMutex
	topic Topic
}

type IncomingMessage struct {
	Type  string `json:"type"`
	Topic Topic  `json:"topic,omitempty"`
}

func NewClient(hub *Hub, conn *websocket.Conn, topic Topic) *Client {
	return &Client{
		hub:   hub,
		conn:  conn,
		send:  make(chan []byte, hub.settings.ClientBuffer),
		topic: topic,
	}
}

// Wants reports whether the client should receive a message on topic.
// A client with no subscription receives everything.
func (c *Client) Wants(topic Topic) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topic == TopicAll || topic == TopicAll || c.topic == topic
}

func (c *Client) setTopic(topic Topic) {
	c.mu.Lock()
	c.topic = topic
	c.mu.Unlock()
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.settings.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("WebSocket error: %v", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.handleMessage(&msg)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// one JSON document per frame
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *IncomingMessage) {
	switch msg.Type {
	case "subscribe":
		if !msg.Topic.Valid() {
			c.sendControl("error", msg.Topic)
			return
		}
		c.setTopic(msg.Topic)
		logger.Infof("Client subscribed to topic: %s", msg.Topic)
		c.sendControl("subscribed", msg.Topic)
	case "unsubscribe":
		c.setTopic(TopicAll)
		c.sendControl("unsubscribed", msg.Topic)
	}
}

func (c *Client) sendControl(action string, topic Topic) {
	data, err := json.Marshal(NewMessage(MessageTypeSubscription, SubscriptionData{
		Action: action,
		Topic:  topic,
	}))
	if err != nil {
		logger.Errorf("Failed to marshal subscription update: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Warn("Client send channel full, dropping subscription update")
	}
}

// ServeWebSocket upgrades the request; ?topic=courses|predictions narrows the feed.
func ServeWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic := Topic(c.Query("topic"))
		if !topic.Valid() {
			topic = TopicAll
		}

		conn, err := hub.settings.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("WebSocket upgrade failed: %v", err)
			return
		}

		client := NewClient(hub, conn, topic)
		if !hub.Register(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
