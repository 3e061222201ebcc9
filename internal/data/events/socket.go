package events

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/util"
)

// SocketSource receives host notifications over a websocket. Frames
// are JSON objects of the form
// {"type": "line-selected" | "line-updated", "line": {...}}; frames of
// any other type are ignored.
type SocketSource struct {
	conn *websocket.Conn

	mu       sync.Mutex
	handlers []Handler
}

// NewSocketSource dials the host event endpoint and starts reading.
func NewSocketSource(url string) (*SocketSource, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	ss := &SocketSource{conn: conn}
	go ss.readPump()

	return ss, nil
}

// Subscribe registers a handler for subsequent notifications.
func (ss *SocketSource) Subscribe(handler Handler) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.handlers = append(ss.handlers, handler)
}

func (ss *SocketSource) readPump() {
	defer ss.conn.Close()

	for {
		_, message, err := ss.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				util.LogErrorf("Host event socket error: %v", err)
			}
			return
		}

		frame := gjson.ParseBytes(message)
		kind := frame.Get("type").Str
		if kind != "line-selected" && kind != "line-updated" {
			util.LogDebugf("Ignoring host event of type %q", kind)
			continue
		}

		line := frame.Get("line")
		if !line.Exists() {
			util.LogWarn("Host event carried no line payload")
			continue
		}

		ss.mu.Lock()
		handlers := make([]Handler, len(ss.handlers))
		copy(handlers, ss.handlers)
		ss.mu.Unlock()

		for _, handler := range handlers {
			handler(model.RawRecord(line.Raw))
		}
	}
}

// Close closes the socket.
func (ss *SocketSource) Close() error {
	return ss.conn.Close()
}
