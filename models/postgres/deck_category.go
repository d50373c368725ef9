package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'DeckCategory' groups decks for the pre-game browsing screen
 * (Classic, Country-specific, Game-themed, ...).
 */
type DeckCategory struct {
	ID          string `gorm:"primaryKey;size:50;not null"`
	Name        string `gorm:"size:100;not null"`
	Description string
	Icon        string `gorm:"size:50"`

	Decks []Deck `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (c *DeckCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
