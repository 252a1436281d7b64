package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koridor-relay/internal/api/ws"
	"koridor-relay/internal/config"
	"koridor-relay/internal/relay"
	"koridor-relay/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	registry := relay.NewRegistry(st, relay.NewCodeGenerator())
	hub := ws.NewHub(registry, nil)
	hub.SetRelay(relay.NewRelay(registry, hub))
	return NewRouter(st, hub, config.Config{AllowedOrigins: []string{"*"}}), st
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoomLookup(t *testing.T) {
	r, st := newTestRouter(t)

	alice, bob := "alice", "bob"
	require.NoError(t, st.SaveRoom(context.Background(), relay.Record{
		Code: "ABC123", PlayerOne: &alice, PlayerTwo: &bob,
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/ABC123", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Room relay.Record `json:"room"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ABC123", body.Room.Code)
	require.NotNil(t, body.Room.PlayerTwo)
	assert.Equal(t, "bob", *body.Room.PlayerTwo)
	assert.Nil(t, body.Room.Winner)
}

func TestRoomLookupNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/NOSUCH", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
