package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bakehub/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketBroadcastsOrderEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", HandleWebSocket())

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the handler a moment to register the client.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(clients) > 0
	}, time.Second, 10*time.Millisecond)

	uid := "user-1"
	order := models.Order{Order_id: "order-1", User_id: &uid, Order_status: models.StatusPending}
	notifyOrderEvent("newOrder", order)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	assert.Contains(t, string(payload), `"event":"newOrder"`)
	assert.Contains(t, string(payload), "order-1")
}
