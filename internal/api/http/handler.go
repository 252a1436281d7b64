package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"koridor-relay/internal/relay"
)

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// RoomHandler returns the persisted record for a room code.
func RoomHandler(store relay.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := store.FindRoomByCode(c.Request.Context(), c.Param("code"))
		if errors.Is(err, relay.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": rec})
	}
}
