package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/OldStager01/gpa-tracker/pkg/config"
)

type WebSocketSettings struct {
	MaxMessageSize int64
	ClientBuffer   int
	upgrader       websocket.Upgrader
}

func NewWebSocketSettings(cfg *config.WebSocketConfig) *WebSocketSettings {
	s := &WebSocketSettings{
		MaxMessageSize: 512,
		ClientBuffer:   64,
	}
	readBuf, writeBuf := 1024, 1024

	if cfg != nil {
		if cfg.MaxMessageSize > 0 {
			s.MaxMessageSize = cfg.MaxMessageSize
		}
		if cfg.ClientBuffer > 0 {
			s.ClientBuffer = cfg.ClientBuffer
		}
		if cfg.ReadBufferSize > 0 {
			readBuf = cfg.ReadBufferSize
		}
		if cfg.WriteBufferSize > 0 {
			writeBuf = cfg.WriteBufferSize
		}
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  readBuf,
		WriteBufferSize: writeBuf,
		// origin checks are left to the CORS middleware
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	return s
}
