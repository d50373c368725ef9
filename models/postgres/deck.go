package postgres

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Deck' is a themed prompt collection players pick when creating a
 * room. FamilySafe marks the whole deck as safe for family-safe rooms.
 */
type Deck struct {
	ID          string `gorm:"primaryKey;size:50;not null"`
	CategoryID  string `gorm:"size:50;not null;index:idx_decks_category"`
	Name        string `gorm:"size:100;not null"`
	Description string
	FamilySafe  bool           `gorm:"default:true"`
	Locale      string         `gorm:"size:10;default:'en'"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Category DeckCategory `gorm:"foreignKey:CategoryID"`
	Prompts  []Prompt     `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (d *Deck) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
