package game

import (
	redis_models "Bloop/models/redis"
	"Bloop/services/bot"
	"context"
	"log"
	"time"
)

// The bot acts through the same operations as human players, just on a
// delay. Every callback reloads the room and re-checks the phase first;
// a round that moved on while the bot was "thinking" drops the action.

func (e *Engine) scheduleBotReady(roomId string) {
	room, err := e.store.Get(roomId)
	if err != nil || room == nil || !bot.IsInRoom(room) {
		return
	}

	time.AfterFunc(bot.ReadyDelay(), func() {
		room, err := e.SetPlayerReady(roomId, bot.PlayerId)
		if err != nil {
			log.Printf("[BOT] Error readying up in room %s: %v", roomId, err)
			return
		}
		if room != nil {
			e.roomUpdated(room)
		}
	})
}

func (e *Engine) scheduleBotAnswer(roomId string) {
	room, err := e.store.Get(roomId)
	if err != nil || room == nil || !bot.IsInRoom(room) {
		return
	}

	time.AfterFunc(bot.ThinkingDelay(), func() {
		room, err := e.store.Get(roomId)
		if err != nil || room == nil || room.State != redis_models.PhaseCollect || room.CurrentPrompt == nil {
			return
		}
		if room.FindAnswerByPlayer(bot.PlayerId) != nil {
			return
		}

		existing := make([]string, 0, len(room.Answers))
		for _, a := range room.Answers {
			existing = append(existing, a.Text)
		}
		text := bot.GenerateAnswer(context.Background(), e.gen, room.CurrentPrompt, existing)

		room, err = e.SubmitAnswer(roomId, bot.PlayerId, text)
		if err != nil {
			log.Printf("[BOT] Error submitting answer in room %s: %v", roomId, err)
			return
		}
		if room != nil {
			e.roomUpdated(room)
		}
	})
}

func (e *Engine) scheduleBotVote(roomId string) {
	room, err := e.store.Get(roomId)
	if err != nil || room == nil || !bot.IsInRoom(room) {
		return
	}

	time.AfterFunc(bot.ThinkingDelay(), func() {
		room, err := e.store.Get(roomId)
		if err != nil || room == nil || room.State != redis_models.PhaseVote {
			return
		}
		if room.FindVote(bot.PlayerId) != nil {
			return
		}

		answerId := bot.SelectAnswerToVote(room)
		if answerId == "" {
			return
		}

		room, err = e.SubmitVote(roomId, bot.PlayerId, answerId)
		if err != nil {
			log.Printf("[BOT] Error voting in room %s: %v", roomId, err)
			return
		}
		if room != nil {
			e.roomUpdated(room)
		}
	})
}
