package game

import (
	game_constants "Bloop/constants/game"
	redis_models "Bloop/models/redis"
	"Bloop/services/bluff"
	"Bloop/services/store"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubPrompts serves one fixed prompt, enough for the engine's round
// flow.
type stubPrompts struct{}

func (stubPrompts) GetRandomPrompt(deckId string, familySafe bool) (*redis_models.Prompt, error) {
	return &redis_models.Prompt{
		Id:            "prompt-1",
		DeckId:        deckId,
		QuestionText:  "Where was the fortune cookie invented?",
		CorrectAnswer: "San Francisco",
		FamilySafe:    true,
	}, nil
}

func newTestEngine() *Engine {
	return NewEngine(store.NewMemoryStore(), stubPrompts{}, bluff.NewGenerator())
}

// Long phase times so no auto-advance timer interferes with the test.
func slowSettings() *SettingsUpdate {
	collect, vote, reveal := 300, 180, 30
	return &SettingsUpdate{CollectTime: &collect, VoteTime: &vote, RevealTime: &reveal}
}

// twoPlayerVoteRoom walks a fresh room to the vote phase with players
// Sam (host) and Alex.
func twoPlayerVoteRoom(t *testing.T, e *Engine) (*redis_models.GameRoom, string, string) {
	t.Helper()

	room, hostId, err := e.CreateRoom("Sam", "cat", "deck-1", true, slowSettings())
	assert.NoError(t, err)

	room, guestId, err := e.JoinRoom(room.Code, "Alex", "dog")
	assert.NoError(t, err)

	room, err = e.StartGame(room.Id)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseReady, room.State)

	_, err = e.SetPlayerReady(room.Id, hostId)
	assert.NoError(t, err)
	room, err = e.SetPlayerReady(room.Id, guestId)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseCollect, room.State)

	_, err = e.SubmitAnswer(room.Id, hostId, "New York")
	assert.NoError(t, err)
	room, err = e.SubmitAnswer(room.Id, guestId, "Tokyo")
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseVote, room.State)

	return room, hostId, guestId
}

// twoPlayerLeaderboardRoom continues from the vote phase into the
// leaderboard: Alex votes correct, Sam falls for Alex's bluff. With the
// default points that leaves Alex on 3 and Sam on 0.
func twoPlayerLeaderboardRoom(t *testing.T, e *Engine) (*redis_models.GameRoom, string, string) {
	t.Helper()

	room, hostId, guestId := twoPlayerVoteRoom(t, e)

	var correctId string
	for _, a := range room.Answers {
		if a.IsCorrect {
			correctId = a.Id
		}
	}
	guestAnswer := room.FindAnswerByPlayer(guestId)

	_, err := e.SubmitVote(room.Id, hostId, guestAnswer.Id)
	assert.NoError(t, err)
	room, err = e.SubmitVote(room.Id, guestId, correctId)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseReveal, room.State)

	// The reveal timer's callback ends the phase.
	e.autoAdvancePhase(room.Id, redis_models.PhaseReveal)

	room, err = e.GetRoom(room.Id)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseLeaderboard, room.State)
	return room, hostId, guestId
}

func TestGenerateUniqueRoomCode(t *testing.T) {
	e := newTestEngine()

	code, err := e.GenerateUniqueRoomCode()
	assert.NoError(t, err)
	assert.Len(t, code, game_constants.RoomCodeLength)
	for _, c := range code {
		assert.True(t, strings.ContainsRune(game_constants.RoomCodeAlphabet, c),
			"unexpected character %q in room code", c)
	}
}

func TestCreateRoomDefaults(t *testing.T) {
	e := newTestEngine()

	room, playerId, err := e.CreateRoom("Sam", "cat", "deck-1", true, nil)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseLobby, room.State)
	assert.Equal(t, game_constants.DefaultTotalRounds, room.TotalRounds)
	assert.Equal(t, game_constants.DefaultPointsCorrect, room.Settings.PointsCorrect)

	host := room.FindPlayer(playerId)
	assert.NotNil(t, host)
	assert.True(t, host.IsHost)

	// The code is taken now.
	unique, err := e.store.IsCodeUnique(room.Code)
	assert.NoError(t, err)
	assert.False(t, unique)
}

func TestCreateRoomClampsSettings(t *testing.T) {
	e := newTestEngine()

	rounds, collect := 99, 1
	room, _, err := e.CreateRoom("Sam", "cat", "deck-1", true, &SettingsUpdate{
		TotalRounds: &rounds,
		CollectTime: &collect,
	})
	assert.NoError(t, err)
	assert.Equal(t, 10, room.TotalRounds)
	assert.Equal(t, 30, room.Settings.CollectTime)
}

func TestJoinRoomLobbyOnlyForNewNames(t *testing.T) {
	e := newTestEngine()
	room, _, _ := twoPlayerVoteRoom(t, e)

	_, _, err := e.JoinRoom(room.Code, "Newcomer", "fox")
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestReconnectionByNameKeepsIdentity(t *testing.T) {
	e := newTestEngine()
	room, _, guestId := twoPlayerVoteRoom(t, e)

	_, err := e.MarkDisconnected(guestId)
	assert.NoError(t, err)

	rejoined, playerId, err := e.JoinRoom(room.Code, "Alex", "dog")
	assert.NoError(t, err)
	assert.Equal(t, guestId, playerId)
	assert.Len(t, rejoined.Players, 2)

	player := rejoined.FindPlayer(guestId)
	assert.True(t, player.Connected)
}

func TestStartGameRequiresTwoPlayers(t *testing.T) {
	e := newTestEngine()

	room, _, err := e.CreateRoom("Sam", "cat", "deck-1", true, nil)
	assert.NoError(t, err)

	started, err := e.StartGame(room.Id)
	assert.NoError(t, err)
	assert.Nil(t, started)
}

func TestStartGameAssignsPowerUps(t *testing.T) {
	e := newTestEngine()

	room, _, _ := e.CreateRoom("Sam", "cat", "deck-1", true, slowSettings())
	_, _, err := e.JoinRoom(room.Code, "Alex", "dog")
	assert.NoError(t, err)

	started, err := e.StartGame(room.Id)
	assert.NoError(t, err)
	for _, p := range started.Players {
		assert.Contains(t, []redis_models.PowerUpKind{redis_models.PowerUpSwap, redis_models.PowerUpSpy}, p.PowerUp.Kind)
		assert.False(t, p.PowerUp.Used)
	}
}

func TestVoteSetPreparation(t *testing.T) {
	e := newTestEngine()
	room, _, _ := twoPlayerVoteRoom(t, e)

	correct := 0
	nonCorrect := 0
	for _, a := range room.Answers {
		if a.IsCorrect {
			correct++
		} else {
			nonCorrect++
		}
	}
	assert.Equal(t, 1, correct)
	assert.GreaterOrEqual(t, nonCorrect, game_constants.MinBluffAnswers)

	// Re-running preparation must not double-pad or duplicate the
	// correct entry.
	before := len(room.Answers)
	e.prepareVoting(room)
	room, err := e.GetRoom(room.Id)
	assert.NoError(t, err)
	assert.Len(t, room.Answers, before)
}

func TestSubmitAnswerRejectedByModeration(t *testing.T) {
	e := newTestEngine()

	room, hostId, _ := e.CreateRoom("Sam", "cat", "deck-1", true, slowSettings())
	_, guestId, _ := e.JoinRoom(room.Code, "Alex", "dog")
	e.StartGame(room.Id)
	e.SetPlayerReady(room.Id, hostId)
	e.SetPlayerReady(room.Id, guestId)

	_, err := e.SubmitAnswer(room.Id, hostId, "what an ass")
	assert.ErrorIs(t, err, ErrContentRejected)

	// Rejection leaves the player free to resubmit.
	current, _ := e.GetRoom(room.Id)
	assert.False(t, current.FindPlayer(hostId).Submitted)
}

func TestSubmitVoteInvariants(t *testing.T) {
	e := newTestEngine()
	room, hostId, guestId := twoPlayerVoteRoom(t, e)

	own := room.FindAnswerByPlayer(hostId)
	assert.NotNil(t, own)

	// Self-votes are dropped.
	updated, err := e.SubmitVote(room.Id, hostId, own.Id)
	assert.NoError(t, err)
	assert.Nil(t, updated)

	guestAnswer := room.FindAnswerByPlayer(guestId)
	updated, err = e.SubmitVote(room.Id, hostId, guestAnswer.Id)
	assert.NoError(t, err)
	assert.NotNil(t, updated.FindVote(hostId))

	// One vote per player, votes never exceed players.
	assert.LessOrEqual(t, len(updated.Votes), len(updated.Players))
	seen := map[string]bool{}
	for _, v := range updated.Votes {
		assert.False(t, seen[v.PlayerId])
		seen[v.PlayerId] = true
	}
}

func TestRevoteRepairsBacklink(t *testing.T) {
	e := newTestEngine()
	room, hostId, guestId := twoPlayerVoteRoom(t, e)

	guestAnswer := room.FindAnswerByPlayer(guestId)
	var aiAnswer *redis_models.Answer
	for i := range room.Answers {
		if room.Answers[i].IsAI {
			aiAnswer = &room.Answers[i]
			break
		}
	}
	assert.NotNil(t, aiAnswer)

	updated, err := e.SubmitVote(room.Id, hostId, guestAnswer.Id)
	assert.NoError(t, err)
	assert.Contains(t, updated.FindAnswer(guestAnswer.Id).VotedBy, hostId)

	updated, err = e.SubmitVote(room.Id, hostId, aiAnswer.Id)
	assert.NoError(t, err)

	assert.NotContains(t, updated.FindAnswer(guestAnswer.Id).VotedBy, hostId)
	assert.Contains(t, updated.FindAnswer(aiAnswer.Id).VotedBy, hostId)
	assert.Len(t, updated.Votes, 1)
}

func TestAllVotesAdvanceToReveal(t *testing.T) {
	e := newTestEngine()
	room, hostId, guestId := twoPlayerVoteRoom(t, e)

	var correctId string
	for _, a := range room.Answers {
		if a.IsCorrect {
			correctId = a.Id
		}
	}

	_, err := e.SubmitVote(room.Id, hostId, correctId)
	assert.NoError(t, err)
	updated, err := e.SubmitVote(room.Id, guestId, correctId)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseReveal, updated.State)
}

func TestPhaseRaceSingleTransition(t *testing.T) {
	e := newTestEngine()

	room, hostId, _ := e.CreateRoom("Sam", "cat", "deck-1", true, slowSettings())
	_, guestId, _ := e.JoinRoom(room.Code, "Alex", "dog")
	e.StartGame(room.Id)
	e.SetPlayerReady(room.Id, hostId)
	e.SetPlayerReady(room.Id, guestId)

	var wg sync.WaitGroup
	for _, sub := range []struct{ playerId, text string }{
		{hostId, "New York"},
		{guestId, "Tokyo"},
	} {
		wg.Add(1)
		go func(playerId, text string) {
			defer wg.Done()
			_, err := e.SubmitAnswer(room.Id, playerId, text)
			assert.NoError(t, err)
		}(sub.playerId, sub.text)
	}
	wg.Wait()

	final, err := e.GetRoom(room.Id)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseVote, final.State)

	correct := 0
	for _, a := range final.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, 1, correct)
}

func TestLeaveRoomReassignsHost(t *testing.T) {
	e := newTestEngine()

	room, hostId, _ := e.CreateRoom("Sam", "cat", "deck-1", true, nil)
	_, guestId, _ := e.JoinRoom(room.Code, "Alex", "dog")

	remaining, err := e.LeaveRoom(room.Id, hostId)
	assert.NoError(t, err)
	assert.Len(t, remaining.Players, 1)
	assert.True(t, remaining.FindPlayer(guestId).IsHost)
}

func TestLeaveRoomLastPlayerDeletesRoom(t *testing.T) {
	e := newTestEngine()

	room, hostId, _ := e.CreateRoom("Sam", "cat", "deck-1", true, nil)

	remaining, err := e.LeaveRoom(room.Id, hostId)
	assert.NoError(t, err)
	assert.Nil(t, remaining)

	gone, err := e.GetRoom(room.Id)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAddBotOnlyOnce(t *testing.T) {
	e := newTestEngine()

	room, _, _ := e.CreateRoom("Sam", "cat", "deck-1", true, nil)

	updated, err := e.AddBot(room.Id)
	assert.NoError(t, err)
	assert.Len(t, updated.Players, 2)

	_, err = e.AddBot(room.Id)
	assert.ErrorIs(t, err, ErrBotAlreadyInRoom)
}

func TestUsePowerUpSwapReplacesOwnAnswer(t *testing.T) {
	e := newTestEngine()

	room, hostId, _ := e.CreateRoom("Sam", "cat", "deck-1", true, slowSettings())
	_, guestId, _ := e.JoinRoom(room.Code, "Alex", "dog")
	e.StartGame(room.Id)
	e.SetPlayerReady(room.Id, hostId)
	e.SetPlayerReady(room.Id, guestId)

	// Pin the kind; StartGame rolls it randomly.
	current, _ := e.GetRoom(room.Id)
	current.FindPlayer(hostId).PowerUp = redis_models.PowerUpState{Kind: redis_models.PowerUpSwap}
	assert.NoError(t, e.store.Save(current))

	_, err := e.SubmitAnswer(room.Id, hostId, "New York")
	assert.NoError(t, err)

	updated, err := e.UsePowerUp(room.Id, hostId)
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.NotEqual(t, "New York", updated.FindAnswerByPlayer(hostId).Text)
	assert.True(t, updated.FindPlayer(hostId).PowerUp.Used)

	// Spent power-ups stay spent.
	again, err := e.UsePowerUp(room.Id, hostId)
	assert.NoError(t, err)
	assert.Nil(t, again)
}

func TestUsePowerUpSpyOnlyInVote(t *testing.T) {
	e := newTestEngine()
	room, hostId, _ := twoPlayerVoteRoom(t, e)

	current, _ := e.GetRoom(room.Id)
	current.FindPlayer(hostId).PowerUp = redis_models.PowerUpState{Kind: redis_models.PowerUpSpy}
	assert.NoError(t, e.store.Save(current))

	var spied []int
	e.OnSpyVotes = func(playerId string, voteCount int) {
		if playerId == hostId {
			spied = append(spied, voteCount)
		}
	}

	updated, err := e.UsePowerUp(room.Id, hostId)
	assert.NoError(t, err)
	assert.True(t, updated.FindPlayer(hostId).PowerUp.Used)
	assert.Equal(t, []int{0}, spied)
}

func TestSendReactionRevealOnly(t *testing.T) {
	e := newTestEngine()
	room, hostId, guestId := twoPlayerVoteRoom(t, e)

	guestAnswer := room.FindAnswerByPlayer(guestId)

	// Still in vote: dropped.
	updated, err := e.SendReaction(room.Id, hostId, guestAnswer.Id, redis_models.ReactionHilarious)
	assert.NoError(t, err)
	assert.Nil(t, updated)

	var correctId string
	for _, a := range room.Answers {
		if a.IsCorrect {
			correctId = a.Id
		}
	}
	e.SubmitVote(room.Id, hostId, correctId)
	e.SubmitVote(room.Id, guestId, correctId)

	updated, err = e.SendReaction(room.Id, hostId, guestAnswer.Id, redis_models.ReactionHilarious)
	assert.NoError(t, err)
	assert.Len(t, updated.FindAnswer(guestAnswer.Id).Reactions, 1)
}

func TestUpdateSettingsLobbyOnly(t *testing.T) {
	e := newTestEngine()
	room, _, _ := twoPlayerVoteRoom(t, e)

	rounds := 5
	updated, err := e.UpdateSettings(room.Id, &SettingsUpdate{TotalRounds: &rounds})
	assert.NoError(t, err)
	assert.Nil(t, updated)

	current, _ := e.GetRoom(room.Id)
	assert.Equal(t, game_constants.DefaultTotalRounds, current.TotalRounds)
}

func TestRevealTimerAppliesScoringOnce(t *testing.T) {
	e := newTestEngine()
	room, hostId, guestId := twoPlayerLeaderboardRoom(t, e)

	// Alex: 2 for the correct vote plus 1 for fooling Sam. Sam fell
	// for a bluff and fooled nobody.
	assert.Equal(t, 3, room.FindPlayer(guestId).Score)
	assert.Equal(t, 0, room.FindPlayer(hostId).Score)

	// A stale reveal callback firing after the transition is ignored;
	// the round must never be scored twice.
	e.autoAdvancePhase(room.Id, redis_models.PhaseReveal)

	again, err := e.GetRoom(room.Id)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseLeaderboard, again.State)
	assert.Equal(t, 3, again.FindPlayer(guestId).Score)
	assert.Equal(t, 0, again.FindPlayer(hostId).Score)
}

func TestNextRoundReentersReadyGate(t *testing.T) {
	e := newTestEngine()
	room, hostId, guestId := twoPlayerLeaderboardRoom(t, e)

	next, err := e.NextRound(room.Id)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseReady, next.State)
	assert.Equal(t, 2, next.CurrentRound)
	for _, p := range next.Players {
		assert.False(t, p.Ready)
	}

	// Scores carry across rounds.
	assert.Equal(t, 3, next.FindPlayer(guestId).Score)
	assert.Equal(t, 0, next.FindPlayer(hostId).Score)
}

func TestNextRoundAfterFinalRoundEndsGame(t *testing.T) {
	e := newTestEngine()
	room, _, _ := twoPlayerLeaderboardRoom(t, e)

	current, _ := e.GetRoom(room.Id)
	current.CurrentRound = current.TotalRounds
	assert.NoError(t, e.store.Save(current))

	ended, err := e.NextRound(room.Id)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseEnded, ended.State)

	// The room lingers through the grace window, then is reclaimed.
	assert.Eventually(t, func() bool {
		r, err := e.GetRoom(room.Id)
		return err == nil && r == nil
	}, game_constants.EndGameGraceDelay+5*time.Second, 100*time.Millisecond)
}

func TestEndGameReclaimsRoomAfterGrace(t *testing.T) {
	e := newTestEngine()
	room, _, _ := twoPlayerVoteRoom(t, e)

	ended, err := e.EndGame(room.Id)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseEnded, ended.State)

	// Immediately after, clients can still fetch the final state.
	still, err := e.GetRoom(room.Id)
	assert.NoError(t, err)
	assert.NotNil(t, still)

	assert.Eventually(t, func() bool {
		r, err := e.GetRoom(room.Id)
		return err == nil && r == nil
	}, game_constants.EndGameGraceDelay+5*time.Second, 100*time.Millisecond)
}

// rejectedGen always produces text the family-safe filter drops,
// modeling a generator whose every suggestion is unusable.
type rejectedGen struct{}

func (rejectedGen) Generate(ctx context.Context, question, correctAnswer string, existingAnswers []string) string {
	return "what an ass"
}

func TestVoteSetPaddingBounded(t *testing.T) {
	e := NewEngine(store.NewMemoryStore(), stubPrompts{}, rejectedGen{})
	room, _, _ := twoPlayerVoteRoom(t, e)

	// Padding gave up after bounded attempts: the vote set holds just
	// the two player bluffs and the correct answer, and the round still
	// reached the vote phase.
	assert.Equal(t, redis_models.PhaseVote, room.State)
	assert.Len(t, room.Answers, 3)

	correct := 0
	for _, a := range room.Answers {
		assert.False(t, a.IsAI)
		if a.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, 1, correct)
}
