package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Prompt' is one question plus its correct answer. Rounds draw a
 * random prompt from the room's deck, honoring the family-safe flag.
 */
type Prompt struct {
	ID            string `gorm:"primaryKey;size:50;not null"`
	DeckID        string `gorm:"size:50;not null;index:idx_prompts_deck"`
	QuestionText  string `gorm:"not null"`
	CorrectAnswer string `gorm:"not null"`
	FamilySafe    bool   `gorm:"default:true"`

	Deck Deck `gorm:"foreignKey:DeckID"`
}

func (p *Prompt) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
