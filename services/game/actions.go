package game

import (
	game_constants "Bloop/constants/game"
	redis_models "Bloop/models/redis"
	"Bloop/services/bot"
	"context"
	"log"
)

// UsePowerUp activates the player's held power-up. Each kind has one
// valid phase: swap rewrites the player's own already-submitted answer
// during collect, spy arms the live vote feed during vote. Anything
// else is a no-op. A power-up spends itself on activation and never
// comes back.
func (e *Engine) UsePowerUp(roomId, playerId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, nil
	}
	player := room.FindPlayer(playerId)
	if player == nil || !player.PowerUp.Available() {
		return nil, nil
	}

	switch player.PowerUp.Kind {
	case redis_models.PowerUpSwap:
		if room.State != redis_models.PhaseCollect || room.CurrentPrompt == nil {
			return nil, nil
		}
		answer := room.FindAnswerByPlayer(playerId)
		if answer == nil {
			return nil, nil
		}

		existing := make([]string, 0, len(room.Answers))
		for _, a := range room.Answers {
			existing = append(existing, a.Text)
		}
		text := e.gen.Generate(context.Background(),
			room.CurrentPrompt.QuestionText, room.CurrentPrompt.CorrectAnswer, existing)
		if text == "" {
			return nil, nil
		}

		answer.Text = text
		player.PowerUp.Use()
		log.Printf("[ENGINE] Player %s swapped their answer in room %s", player.Name, roomId)

	case redis_models.PowerUpSpy:
		if room.State != redis_models.PhaseVote {
			return nil, nil
		}
		player.PowerUp.Use()
		log.Printf("[ENGINE] Player %s activated spy in room %s", player.Name, roomId)

	default:
		return nil, nil
	}

	if err := e.store.Save(room); err != nil {
		return nil, err
	}

	// A freshly armed spy gets the current count immediately rather
	// than waiting for the next vote.
	if player.PowerUp.Kind == redis_models.PowerUpSpy {
		e.notifySpies(room)
	}
	return room, nil
}

// SendReaction appends an emoji reaction to an answer during reveal.
func (e *Engine) SendReaction(roomId, playerId, answerId string, reaction redis_models.ReactionType) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseReveal || !reaction.Valid() {
		return nil, nil
	}
	player := room.FindPlayer(playerId)
	if player == nil {
		return nil, nil
	}
	answer := room.FindAnswer(answerId)
	if answer == nil {
		return nil, nil
	}

	answer.Reactions = append(answer.Reactions, redis_models.Reaction{
		PlayerId:   playerId,
		PlayerName: player.Name,
		Reaction:   reaction,
	})

	if err := e.store.Save(room); err != nil {
		return nil, err
	}
	return room, nil
}

// AddBot seats Mr Blooper in the lobby. One bot per room.
func (e *Engine) AddBot(roomId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseLobby {
		return nil, nil
	}
	if bot.IsInRoom(room) {
		return nil, ErrBotAlreadyInRoom
	}

	room.Players = append(room.Players, bot.Create())

	if err := e.store.Save(room); err != nil {
		return nil, err
	}
	log.Printf("[ENGINE] Bot added to room %s", roomId)
	return room, nil
}

// RemoveBot takes the bot back out, lobby only.
func (e *Engine) RemoveBot(roomId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseLobby {
		return nil, nil
	}

	for i, p := range room.Players {
		if bot.IsBot(p.Id) {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}

	if err := e.store.Save(room); err != nil {
		return nil, err
	}
	return room, nil
}

// LeaveRoom removes the player entirely. If the host leaves, the
// longest-seated remaining human inherits the room; an empty room (or
// one with only the bot left) is torn down on the spot.
func (e *Engine) LeaveRoom(roomId, playerId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, nil
	}

	wasHost := false
	found := false
	for i, p := range room.Players {
		if p.Id == playerId {
			wasHost = p.IsHost
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	if err := e.store.DeletePlayerMapping(playerId); err != nil {
		log.Printf("[ENGINE] Error deleting player mapping for %s: %v", playerId, err)
	}

	humansLeft := 0
	for _, p := range room.Players {
		if !bot.IsBot(p.Id) {
			humansLeft++
		}
	}
	if humansLeft == 0 {
		log.Printf("[ENGINE] Room %s empty, deleting", roomId)
		e.teardown(room)
		return nil, nil
	}

	if wasHost {
		for i := range room.Players {
			if !bot.IsBot(room.Players[i].Id) {
				room.Players[i].IsHost = true
				log.Printf("[ENGINE] Host of room %s left, %s is the new host", roomId, room.Players[i].Name)
				break
			}
		}
	}

	if err := e.store.Save(room); err != nil {
		return nil, err
	}
	return room, nil
}

// EndGame cuts the game short from any phase. The room lingers briefly
// so clients can render the final state, then everything is reclaimed.
func (e *Engine) EndGame(roomId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State == redis_models.PhaseEnded {
		return nil, nil
	}

	e.timers.cancel(roomId)
	room.State = redis_models.PhaseEnded
	room.RoundEndTime = 0

	if err := e.store.Save(room); err != nil {
		return nil, err
	}

	log.Printf("[ENGINE] Game ended in room %s", roomId)
	e.scheduleTeardown(roomId)
	return room, nil
}

// scheduleTeardown arms the grace timer that reclaims an ended room,
// leaving time for the final broadcast to land. Every edge into the
// ended state schedules this.
func (e *Engine) scheduleTeardown(roomId string) {
	e.timers.arm(roomId, game_constants.EndGameGraceDelay, func() {
		lock := e.locks.get(roomId)
		lock.Lock()
		defer lock.Unlock()
		room, err := e.store.Get(roomId)
		if err != nil || room == nil || room.State != redis_models.PhaseEnded {
			return
		}
		e.teardown(room)
	})
}

// teardown releases everything the room holds. Caller holds the room
// lock.
func (e *Engine) teardown(room *redis_models.GameRoom) {
	e.timers.cancel(room.Id)
	if err := e.store.Delete(room.Id); err != nil {
		log.Printf("[ENGINE] Error deleting room %s: %v", room.Id, err)
	}
	e.locks.forget(room.Id)
}
