package controllers

import (
	"Bloop/services/content"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAllDecks lists the deck metadata the client shows pre-game.
func GetAllDecks(storage *content.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		decks, err := storage.GetAllDecks()
		if err != nil {
			log.Printf("[API-ERROR] Error listing decks: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list decks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"decks": decks})
	}
}
