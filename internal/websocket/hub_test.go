package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishNeverBlocksWithoutClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	// No Run loop and no subscribers: fill the queue past its capacity.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish("pr.updated", map[string]int{"i": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full broadcast queue")
	}
}

func TestClientReceivesPublishedEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(zap.NewNop())
	go hub.Run()

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		ServeWs(hub, c)
	})

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the register message time to land before broadcasting.
	time.Sleep(50 * time.Millisecond)
	hub.Publish("pr.created", map[string]string{"id": "abc"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "pr.created", event.Type)
	assert.False(t, event.Timestamp.IsZero())
}
