package content

import (
	postgres_models "Bloop/models/postgres"
	"fmt"
	"log"
)

type seedPrompt struct {
	q string
	a string
}

type seedDeck struct {
	name        string
	description string
	prompts     []seedPrompt
}

type seedCategory struct {
	name        string
	description string
	icon        string
	decks       []seedDeck
}

var seedData = []seedCategory{
	{
		name:        "Classic",
		description: "Classic word and movie prompts",
		icon:        "🎭",
		decks: []seedDeck{
			{
				name:        "Word Up",
				description: "Weird word definitions",
				prompts: []seedPrompt{
					{"What does 'petrichor' mean?", "The smell of rain on dry earth"},
					{"What is a 'defenestration'?", "The act of throwing someone out of a window"},
					{"What does 'callipygian' describe?", "Having well-shaped buttocks"},
					{"What is a 'quincunx'?", "An arrangement of five objects with four at the corners and one in the middle"},
					{"What does 'borborygmus' mean?", "The rumbling sound of a hungry stomach"},
					{"What is 'apricity'?", "The warmth of the sun in winter"},
					{"What does 'ultracrepidarian' mean?", "Someone who gives opinions beyond their knowledge"},
					{"What is a 'mondegreen'?", "A misheard song lyric"},
				},
			},
			{
				name:        "Movie Bluff",
				description: "Fake movie plots",
				prompts: []seedPrompt{
					{"What is the plot of 'The Shawshank Redemption'?", "Two imprisoned men bond over years, finding redemption through compassion"},
					{"What happens in 'Inception'?", "A thief who steals secrets through dreams is offered a chance to erase his past"},
					{"Describe the story of 'Parasite'.", "A poor family schemes to become employees of a wealthy household"},
					{"What is 'Groundhog Day' about?", "A weatherman relives the same day until he gets it right"},
					{"What happens in 'The Truman Show'?", "A man discovers his entire life is a television show"},
				},
			},
		},
	},
	{
		name:        "Country",
		description: "Country-specific cultural prompts",
		icon:        "🌍",
		decks: []seedDeck{
			{
				name:        "India",
				description: "Indian culture and trivia",
				prompts: []seedPrompt{
					{"What is 'jugaad'?", "An innovative fix or workaround using limited resources"},
					{"What does 'kal' mean in Hindi?", "Both yesterday and tomorrow"},
					{"What is 'chai pe charcha'?", "Informal discussion over tea"},
				},
			},
			{
				name:        "USA",
				description: "American culture and trivia",
				prompts: []seedPrompt{
					{"What is a 'homerun'?", "A baseball hit that allows the batter to circle all bases and score"},
					{"What is 'Thanksgiving'?", "A November holiday celebrating harvest and gratitude"},
					{"What is a 'Super Bowl'?", "The championship game of the NFL"},
				},
			},
		},
	},
	{
		name:        "Science",
		description: "Science facts and discoveries",
		icon:        "🔬",
		decks: []seedDeck{
			{
				name:        "Strange Science",
				description: "Odd facts from the lab",
				prompts: []seedPrompt{
					{"What is the 'mantis shrimp' famous for?", "Punching with the acceleration of a bullet"},
					{"What does 'tardigrade' mean?", "Slow stepper"},
					{"What is 'ball lightning'?", "A rare luminous sphere seen during thunderstorms"},
				},
			},
		},
	},
}

// Seed populates an empty database with the built-in decks so a fresh
// install is playable. Skips everything when any deck already exists.
func (s *Storage) Seed() error {
	var count int64
	if err := s.db.Model(&postgres_models.Deck{}).Count(&count).Error; err != nil {
		return fmt.Errorf("error checking existing decks: %v", err)
	}
	if count > 0 {
		log.Println("[SEED] Decks already present, skipping seed")
		return nil
	}

	log.Println("[SEED] Seeding database with built-in decks...")

	for _, cat := range seedData {
		category := postgres_models.DeckCategory{
			Name:        cat.name,
			Description: cat.description,
			Icon:        cat.icon,
		}
		if err := s.CreateDeckCategory(&category); err != nil {
			return fmt.Errorf("error creating category %s: %v", cat.name, err)
		}

		for _, d := range cat.decks {
			deck := postgres_models.Deck{
				CategoryID:  category.ID,
				Name:        d.name,
				Description: d.description,
				FamilySafe:  true,
				Locale:      "en",
			}
			if err := s.CreateDeck(&deck); err != nil {
				return fmt.Errorf("error creating deck %s: %v", d.name, err)
			}

			for _, p := range d.prompts {
				prompt := postgres_models.Prompt{
					DeckID:        deck.ID,
					QuestionText:  p.q,
					CorrectAnswer: p.a,
					FamilySafe:    true,
				}
				if err := s.CreatePrompt(&prompt); err != nil {
					return fmt.Errorf("error creating prompt for deck %s: %v", d.name, err)
				}
			}
		}
	}

	log.Println("[SEED] Database seeded")
	return nil
}
