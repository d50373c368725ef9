package bot

import (
	redis_models "Bloop/models/redis"
	"context"
	"math/rand"
	"time"
)

// Mr Blooper, the scripted stand-in participant a host can add to fill
// a room. Fixed reserved identity; never a host, never holds a power-up.
const (
	PlayerId   = "mr-bloop-ai"
	PlayerName = "Mr Blooper"
	Avatar     = "wizard"
)

// How often the bot deliberately picks the correct answer when voting.
const correctVoteChance = 0.3

// Create returns the bot as a fresh room participant.
func Create() redis_models.Player {
	return redis_models.Player{
		Id:        PlayerId,
		Name:      PlayerName,
		IsHost:    false,
		Avatar:    Avatar,
		Score:     0,
		Connected: true,
		Ready:     false,
		Submitted: false,
		PowerUp:   redis_models.PowerUpState{Kind: redis_models.PowerUpNone},
	}
}

func IsBot(playerId string) bool {
	return playerId == PlayerId
}

func IsInRoom(room *redis_models.GameRoom) bool {
	return room.FindPlayer(PlayerId) != nil
}

// ThinkingDelay simulates human pacing before answering or voting,
// 3 to 8 seconds.
func ThinkingDelay() time.Duration {
	return 3*time.Second + time.Duration(rand.Int63n(int64(5*time.Second)))
}

// ReadyDelay is shorter; the bot readies up quickly, 1 to 2 seconds.
func ReadyDelay() time.Duration {
	return time.Second + time.Duration(rand.Int63n(int64(time.Second)))
}

// AnswerGenerator is the slice of the bluff generator the bot needs.
type AnswerGenerator interface {
	Generate(ctx context.Context, question, correctAnswer string, existingAnswers []string) string
}

// GenerateAnswer produces the bot's bluff for the current prompt.
func GenerateAnswer(ctx context.Context, gen AnswerGenerator, prompt *redis_models.Prompt, existingAnswers []string) string {
	return gen.Generate(ctx, prompt.QuestionText, prompt.CorrectAnswer, existingAnswers)
}

// SelectAnswerToVote picks the answer the bot votes for: never its own,
// the correct answer roughly 30% of the time, a random other answer
// otherwise. Returns "" when there is nothing votable.
func SelectAnswerToVote(room *redis_models.GameRoom) string {
	var wrong []redis_models.Answer
	var correct *redis_models.Answer
	var anyOther *redis_models.Answer

	for i := range room.Answers {
		a := &room.Answers[i]
		if IsBot(a.PlayerId) {
			continue
		}
		if anyOther == nil {
			anyOther = a
		}
		if a.IsCorrect {
			correct = a
			continue
		}
		wrong = append(wrong, *a)
	}

	if len(wrong) == 0 {
		if anyOther != nil {
			return anyOther.Id
		}
		return ""
	}

	if correct != nil && rand.Float64() < correctVoteChance {
		return correct.Id
	}
	return wrong[rand.Intn(len(wrong))].Id
}
