package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, userID int64, origins []string) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	h := NewHandler(hub, origins, zerolog.Nop())
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		if userID > 0 {
			c.Set(userIDKey, userID)
		}
		h.HandleConnection(c)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestHub_DeliversToAddressee(t *testing.T) {
	hub, srv := startServer(t, 7, []string{"*"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(7) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Notify(8, NotifyClubStatus, map[string]string{"status": "approved"})
	hub.Notify(7, NotifyConnectionRequested, map[string]int64{"connectionId": 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var n struct {
		Type string           `json:"type"`
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &n))
	assert.Equal(t, NotifyConnectionRequested, n.Type)
	assert.Equal(t, int64(3), n.Data["connectionId"])
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, srv := startServer(t, 9, []string{"*"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount(9) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount(9) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_RequiresUser(t *testing.T) {
	_, srv := startServer(t, 0, []string{"*"})

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req), "non-browser clients send no origin")

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))
}

func TestNotify_NeverBlocks(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.Notify(1, NotifyEventStatus, nil)
	}
	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}
