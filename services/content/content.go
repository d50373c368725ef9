package content

import (
	postgres_models "Bloop/models/postgres"
	redis_models "Bloop/models/redis"
	"fmt"
	"math/rand"

	"gorm.io/gorm"
)

// DeckInfo is the flattened deck listing served to the pre-game client.
type DeckInfo struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
	FamilySafe   bool   `json:"familySafe"`
}

// Storage reads game content (decks and prompts) from PostgreSQL. The
// game core only ever reads; seeding and administration happen through
// Seed or externally.
type Storage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) GetAllDecks() ([]DeckInfo, error) {
	var decks []postgres_models.Deck
	if err := s.db.Preload("Category").Find(&decks).Error; err != nil {
		return nil, fmt.Errorf("error listing decks: %v", err)
	}

	infos := make([]DeckInfo, 0, len(decks))
	for _, d := range decks {
		categoryName := d.Category.Name
		if categoryName == "" {
			categoryName = "Unknown"
		}
		infos = append(infos, DeckInfo{
			Id:           d.ID,
			Name:         d.Name,
			CategoryName: categoryName,
			Description:  d.Description,
			FamilySafe:   d.FamilySafe,
		})
	}
	return infos, nil
}

func (s *Storage) CreateDeckCategory(category *postgres_models.DeckCategory) error {
	return s.db.Create(category).Error
}

func (s *Storage) CreateDeck(deck *postgres_models.Deck) error {
	return s.db.Create(deck).Error
}

func (s *Storage) CreatePrompt(prompt *postgres_models.Prompt) error {
	return s.db.Create(prompt).Error
}

func (s *Storage) GetDeckById(id string) (*postgres_models.Deck, error) {
	var deck postgres_models.Deck
	if err := s.db.Where("id = ?", id).First(&deck).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &deck, nil
}

// GetRandomPrompt draws a random prompt from the deck. With familySafe
// set, prompts marked unsafe are excluded. Returns (nil, nil) when the
// deck has no eligible prompts.
func (s *Storage) GetRandomPrompt(deckId string, familySafe bool) (*redis_models.Prompt, error) {
	query := s.db.Where("deck_id = ?", deckId)
	if familySafe {
		query = query.Where("family_safe = ?", true)
	}

	var prompts []postgres_models.Prompt
	if err := query.Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("error loading prompts for deck %s: %v", deckId, err)
	}
	if len(prompts) == 0 {
		return nil, nil
	}

	p := prompts[rand.Intn(len(prompts))]
	return &redis_models.Prompt{
		Id:            p.ID,
		DeckId:        p.DeckID,
		QuestionText:  p.QuestionText,
		CorrectAnswer: p.CorrectAnswer,
		FamilySafe:    p.FamilySafe,
	}, nil
}
