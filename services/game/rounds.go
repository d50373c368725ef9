package game

import (
	game_constants "Bloop/constants/game"
	redis_models "Bloop/models/redis"
	"Bloop/services/bot"
	"Bloop/services/moderation"
	"Bloop/services/scoring"
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// StartGame moves a lobby with enough players into the first ready
// phase. Power-ups are rolled here, once per game: re-entering the
// ready phase on later rounds keeps whatever each player still holds.
func (e *Engine) StartGame(roomId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseLobby || len(room.Players) < game_constants.MinPlayersToStart {
		return nil, nil
	}

	room.CurrentRound = 1
	room.State = redis_models.PhaseReady

	for i := range room.Players {
		p := &room.Players[i]
		p.Ready = false
		if rand.Float64() < 0.5 {
			p.PowerUp.Assign(redis_models.PowerUpSwap)
		} else {
			p.PowerUp.Assign(redis_models.PowerUpSpy)
		}
	}

	if err := e.store.Save(room); err != nil {
		return nil, err
	}

	log.Printf("[ENGINE] Game started in room %s with %d players", roomId, len(room.Players))
	e.scheduleBotReady(roomId)
	return room, nil
}

// SetPlayerReady marks the player ready and, when that was the last
// one, immediately starts the round. The transition is reactive: the
// final ready action triggers it, nothing polls.
func (e *Engine) SetPlayerReady(roomId, playerId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseReady {
		return nil, nil
	}
	player := room.FindPlayer(playerId)
	if player == nil {
		return nil, nil
	}

	player.Ready = true

	allReady := true
	for _, p := range room.Players {
		if !p.Ready {
			allReady = false
			break
		}
	}

	if !allReady {
		if err := e.store.Save(room); err != nil {
			return nil, err
		}
		return room, nil
	}

	for i := range room.Players {
		room.Players[i].Ready = false
	}
	return e.startRound(room)
}

// startRound selects a prompt and enters collect. Caller holds the
// room lock.
func (e *Engine) startRound(room *redis_models.GameRoom) (*redis_models.GameRoom, error) {
	log.Printf("[ENGINE] Starting round %d for room %s", room.CurrentRound, room.Id)

	prompt, err := e.prompts.GetRandomPrompt(room.DeckId, room.FamilySafe)
	if err != nil {
		return nil, err
	}

	// Retry a bounded number of times to dodge recent repeats; accept a
	// repeat rather than block the round.
	for attempt := 0; prompt != nil && containsId(room.UsedPromptIds, prompt.Id) && attempt < game_constants.MaxPromptRetries; attempt++ {
		prompt, err = e.prompts.GetRandomPrompt(room.DeckId, room.FamilySafe)
		if err != nil {
			return nil, err
		}
	}
	if prompt == nil {
		log.Printf("[ENGINE] No prompt available for deck %s, round not started", room.DeckId)
		return nil, nil
	}

	room.UsedPromptIds = append(room.UsedPromptIds, prompt.Id)
	if len(room.UsedPromptIds) > game_constants.UsedPromptHistory {
		room.UsedPromptIds = room.UsedPromptIds[len(room.UsedPromptIds)-game_constants.UsedPromptHistory:]
	}

	room.CurrentPrompt = prompt
	room.Answers = []redis_models.Answer{}
	room.Votes = []redis_models.Vote{}
	room.State = redis_models.PhaseCollect
	for i := range room.Players {
		room.Players[i].Submitted = false
	}

	if room.Settings.CollectTime > 0 {
		room.RoundEndTime = time.Now().UnixMilli() + int64(room.Settings.CollectTime)*1000
		e.timers.arm(room.Id, time.Duration(room.Settings.CollectTime)*time.Second, func() {
			e.autoAdvancePhase(room.Id, redis_models.PhaseCollect)
		})
	} else {
		room.RoundEndTime = 0
	}

	if err := e.store.Save(room); err != nil {
		return nil, err
	}

	e.phaseChanged(room, nil)
	e.scheduleBotAnswer(room.Id)
	return room, nil
}

// SubmitAnswer records one bluff for the player. It is a no-op outside
// the collect phase or on a resubmission, and returns ErrContentRejected
// when the family-safe filter drops the text, so the caller can tell the
// player apart from "not yet submitted".
func (e *Engine) SubmitAnswer(roomId, playerId, text string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseCollect {
		return nil, nil
	}
	player := room.FindPlayer(playerId)
	if player == nil || player.Submitted {
		return nil, nil
	}

	filtered, ok := moderation.FilterAnswer(text, room.FamilySafe)
	if !ok {
		return nil, ErrContentRejected
	}

	room.Answers = append(room.Answers, redis_models.Answer{
		Id:         uuid.NewString(),
		PlayerId:   playerId,
		PlayerName: player.Name,
		Text:       filtered,
		IsCorrect:  false,
		IsAI:       false,
		VotedBy:    []string{},
	})
	player.Submitted = true

	if err := e.store.Save(room); err != nil {
		return nil, err
	}

	log.Printf("[ENGINE] Player %s submitted answer in room %s (%d/%d)",
		player.Name, roomId, countPlayerAnswers(room), len(room.Players))

	if allPlayersSubmitted(room) {
		e.timers.cancel(roomId)
		e.prepareVoting(room)
		return e.store.Get(roomId)
	}

	return room, nil
}

// prepareVoting pads the answer set with generated bluffs, appends the
// single correct entry and shuffles, then opens the vote phase. Safe to
// call on an already-prepared room: padding only happens below the
// minimum and the correct entry is only added once. Failures never
// leave the room stuck in collect. Caller holds the room lock.
func (e *Engine) prepareVoting(room *redis_models.GameRoom) {
	if room.State == redis_models.PhaseVote || room.CurrentPrompt == nil {
		return
	}

	existing := make([]string, 0, len(room.Answers))
	hasCorrect := false
	for _, a := range room.Answers {
		existing = append(existing, a.Text)
		if a.IsCorrect {
			hasCorrect = true
		}
	}

	// Bounded attempts: a generator that keeps producing rejected or
	// duplicate text cannot hold the room in collect. The phase moves
	// on with a partial answer set.
	for attempts := 0; countNonCorrect(room) < game_constants.MinBluffAnswers &&
		attempts < game_constants.MaxPaddingAttempts; attempts++ {
		text := e.gen.Generate(context.Background(),
			room.CurrentPrompt.QuestionText, room.CurrentPrompt.CorrectAnswer, existing)
		if room.FamilySafe {
			if _, ok := moderation.FilterAnswer(text, true); !ok {
				continue
			}
		}
		if text == "" || containsId(existing, text) {
			continue
		}

		existing = append(existing, text)
		room.Answers = append(room.Answers, redis_models.Answer{
			Id:         uuid.NewString(),
			PlayerId:   redis_models.AnswerOwnerAI,
			PlayerName: "AI",
			Text:       text,
			IsCorrect:  false,
			IsAI:       true,
			VotedBy:    []string{},
		})
	}

	if !hasCorrect {
		room.Answers = append(room.Answers, redis_models.Answer{
			Id:         uuid.NewString(),
			PlayerId:   redis_models.AnswerOwnerCorrect,
			PlayerName: "Correct",
			Text:       room.CurrentPrompt.CorrectAnswer,
			IsCorrect:  true,
			IsAI:       false,
			VotedBy:    []string{},
		})
	}

	// Uniform shuffle so position carries no signal about authorship.
	rand.Shuffle(len(room.Answers), func(i, j int) {
		room.Answers[i], room.Answers[j] = room.Answers[j], room.Answers[i]
	})

	room.State = redis_models.PhaseVote
	if room.Settings.VoteTime > 0 {
		room.RoundEndTime = time.Now().UnixMilli() + int64(room.Settings.VoteTime)*1000
		e.timers.arm(room.Id, time.Duration(room.Settings.VoteTime)*time.Second, func() {
			e.autoAdvancePhase(room.Id, redis_models.PhaseVote)
		})
	} else {
		room.RoundEndTime = 0
	}

	if err := e.store.Save(room); err != nil {
		log.Printf("[ENGINE] Error saving room %s entering vote phase: %v", room.Id, err)
		return
	}

	log.Printf("[ENGINE] Room %s entered vote phase with %d answers", room.Id, len(room.Answers))
	e.phaseChanged(room, nil)
	e.scheduleBotVote(room.Id)
}

// SubmitVote records one vote. Re-voting before the phase ends replaces
// the prior vote and repairs the old answer's votedBy backlink.
// Self-votes are rejected as no-ops.
func (e *Engine) SubmitVote(roomId, playerId, answerId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseVote {
		return nil, nil
	}

	answer := room.FindAnswer(answerId)
	if answer == nil || answer.PlayerId == playerId {
		return nil, nil
	}
	if room.FindPlayer(playerId) == nil {
		return nil, nil
	}

	for i, v := range room.Votes {
		if v.PlayerId != playerId {
			continue
		}
		if prior := room.FindAnswer(v.AnswerId); prior != nil {
			prior.VotedBy = removeId(prior.VotedBy, playerId)
		}
		room.Votes = append(room.Votes[:i], room.Votes[i+1:]...)
		break
	}

	room.Votes = append(room.Votes, redis_models.Vote{PlayerId: playerId, AnswerId: answerId})
	answer.VotedBy = append(answer.VotedBy, playerId)

	if err := e.store.Save(room); err != nil {
		return nil, err
	}

	e.notifySpies(room)

	if len(room.Votes) == len(room.Players) {
		e.timers.cancel(roomId)
		e.revealAnswers(room)
		return e.store.Get(roomId)
	}

	return room, nil
}

// notifySpies pushes the live own-answer vote count to every player who
// has activated the spy power-up. Recomputed on every vote event.
func (e *Engine) notifySpies(room *redis_models.GameRoom) {
	if e.OnSpyVotes == nil {
		return
	}
	for _, p := range room.Players {
		if p.PowerUp.Kind != redis_models.PowerUpSpy || !p.PowerUp.Used {
			continue
		}
		if answer := room.FindAnswerByPlayer(p.Id); answer != nil {
			e.OnSpyVotes(p.Id, len(answer.VotedBy))
		}
	}
}

// revealAnswers enters reveal. Reveal always runs on its internal timer;
// there is no early-advance path out of it. Caller holds the room lock.
func (e *Engine) revealAnswers(room *redis_models.GameRoom) {
	room.State = redis_models.PhaseReveal
	revealTime := time.Duration(room.Settings.RevealTime) * time.Second
	room.RoundEndTime = time.Now().UnixMilli() + revealTime.Milliseconds()

	if err := e.store.Save(room); err != nil {
		log.Printf("[ENGINE] Error saving room %s entering reveal phase: %v", room.Id, err)
		return
	}

	log.Printf("[ENGINE] Room %s entered reveal phase", room.Id)
	e.phaseChanged(room, nil)

	e.timers.arm(room.Id, revealTime, func() {
		e.autoAdvancePhase(room.Id, redis_models.PhaseReveal)
	})
}

// showLeaderboard computes and applies scoring for the round, exactly
// once, from the final answers and votes. Caller holds the room lock.
func (e *Engine) showLeaderboard(room *redis_models.GameRoom) {
	results := scoring.CalculateRoundResults(room)
	scoring.ApplyResults(room, results)

	room.State = redis_models.PhaseLeaderboard
	room.RoundEndTime = 0

	if err := e.store.Save(room); err != nil {
		log.Printf("[ENGINE] Error saving room %s entering leaderboard phase: %v", room.Id, err)
		return
	}

	log.Printf("[ENGINE] Room %s entered leaderboard phase", room.Id)
	e.phaseChanged(room, results)
}

// NextRound is the host action leaving the leaderboard: back into the
// ready gate while rounds remain, otherwise the game ends. Power-ups
// are not re-rolled; players keep what they have not used.
func (e *Engine) NextRound(roomId string) (*redis_models.GameRoom, error) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil {
		return nil, err
	}
	if room == nil || room.State != redis_models.PhaseLeaderboard {
		return nil, nil
	}

	if room.CurrentRound >= room.TotalRounds {
		room.State = redis_models.PhaseEnded
		if err := e.store.Save(room); err != nil {
			return nil, err
		}
		e.scheduleTeardown(room.Id)
		return room, nil
	}

	room.CurrentRound++
	room.State = redis_models.PhaseReady
	for i := range room.Players {
		room.Players[i].Ready = false
	}

	if err := e.store.Save(room); err != nil {
		return nil, err
	}

	e.phaseChanged(room, nil)
	e.scheduleBotReady(roomId)
	return room, nil
}

// allPlayersSubmitted ignores the bot: a slow bot never holds up the
// vote phase, its scheduled answer simply no-ops after the move.
func allPlayersSubmitted(room *redis_models.GameRoom) bool {
	for _, p := range room.Players {
		if !bot.IsBot(p.Id) && !p.Submitted {
			return false
		}
	}
	return true
}

func countPlayerAnswers(room *redis_models.GameRoom) int {
	n := 0
	for _, a := range room.Answers {
		if !a.IsAI && !a.IsCorrect {
			n++
		}
	}
	return n
}

func countNonCorrect(room *redis_models.GameRoom) int {
	n := 0
	for _, a := range room.Answers {
		if !a.IsCorrect {
			n++
		}
	}
	return n
}

func containsId(list []string, id string) bool {
	for _, e := range list {
		if e == id {
			return true
		}
	}
	return false
}

func removeId(list []string, id string) []string {
	out := list[:0]
	for _, e := range list {
		if e != id {
			out = append(out, e)
		}
	}
	return out
}
