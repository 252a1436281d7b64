package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"koridor-relay/internal/api/ws"
	"koridor-relay/internal/config"
	"koridor-relay/internal/relay"
)

func NewRouter(store relay.Store, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// Realtime protocol lives on the websocket; everything below is
	// operational surface.
	r.GET("/ws", hub.HandleWS)
	r.GET("/healthz", HealthHandler())
	r.GET("/rooms/:code", RoomHandler(store))

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
