package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards connect cross-origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Stream pushes pipeline events to websocket subscribers
type Stream struct {
	Bus *events.Bus
}

// EventsSocketHandler upgrades the connection and forwards every published
// event until the client disconnects.
func (s Stream) EventsSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("failed to upgrade websocket", "error", err)
		return
	}

	var writeMu sync.Mutex
	done := make(chan struct{})

	s.Bus.Subscribe(events.TopicWildcard, func(e events.Event) {
		select {
		case <-done:
			return
		default:
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(e); err != nil {
			zap.S().Debugw("websocket write failed, closing", "error", err)
			select {
			case <-done:
			default:
				close(done)
			}
		}
	})

	zap.S().Debug("websocket event subscriber connected")

	// Reads drain control frames and detect disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case <-done:
				default:
					close(done)
				}
				return
			}
		}
	}()

	<-done
	conn.Close()
}

// EventHistoryHandler returns recently published events, filterable by topic
func (s Stream) EventHistoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	topic := r.URL.Query().Get("topic")
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	history := s.Bus.History(topic, limit)
	if history == nil {
		history = []events.Event{}
	}

	b, err := json.Marshal(history)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
