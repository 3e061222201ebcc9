package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripta-tools/linehistory/internal/core/model"
)

func startEventServer(t *testing.T, frames []string) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		// Give the client a moment to register its handler.
		time.Sleep(100 * time.Millisecond)
		for _, frame := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
		}
		// Keep the connection open long enough for the client to read.
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestSocketSourceDeliversLineEvents(t *testing.T) {
	url := startEventServer(t, []string{
		`{"type": "line-selected", "line": {"id": "line-1", "text": "hello"}}`,
		`{"type": "cursor-moved", "position": 4}`,
		`{"type": "line-updated", "line": {"id": "line-1", "text": "hello again"}}`,
	})

	source, err := NewSocketSource(url)
	require.NoError(t, err)
	defer source.Close()

	var mu sync.Mutex
	var received []model.RawRecord
	source.Subscribe(func(record model.RawRecord) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, record)
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 2
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	// The unrelated frame type was ignored; the line payloads came
	// through untouched.
	assert.JSONEq(t, `{"id": "line-1", "text": "hello"}`, string(received[0]))
	assert.JSONEq(t, `{"id": "line-1", "text": "hello again"}`, string(received[1]))
}

func TestSocketSourceDialFailure(t *testing.T) {
	_, err := NewSocketSource("ws://127.0.0.1:1/events")
	assert.Error(t, err)
}
