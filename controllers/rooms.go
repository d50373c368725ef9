package controllers

import (
	"Bloop/services/game"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// GetRoomQR renders a PNG QR code with the join link for a room code,
// for the host to put on a shared screen. 404 when the code does not
// resolve to a live room.
func GetRoomQR(engine *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(c.Param("code"))

		room, err := engine.GetRoomByCode(code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not look up room"})
			return
		}
		if room == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		base := os.Getenv("CLIENT_BASE_URL")
		if base == "" {
			base = "http://localhost:5173"
		}
		joinURL := fmt.Sprintf("%s/join/%s", strings.TrimRight(base, "/"), code)

		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
