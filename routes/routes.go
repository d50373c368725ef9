package routes

import (
	"Bloop/controllers"
	"Bloop/services/content"
	"Bloop/services/game"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures the REST surface. Everything gameplay-related
// goes over socket.io; these endpoints are pre-game glue.
func SetupRoutes(router *gin.Engine, storage *content.Storage, engine *game.Engine) {
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/api/decks", controllers.GetAllDecks(storage))

	api.GET("/api/rooms/:code/qr", controllers.GetRoomQR(engine))
}
