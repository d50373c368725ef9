package game

import (
	game_constants "Bloop/constants/game"
	redis_models "Bloop/models/redis"
	"Bloop/services/store"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
)

// PromptSource supplies the active question for each round. Implemented
// by the content storage; tests plug in a stub.
type PromptSource interface {
	GetRandomPrompt(deckId string, familySafe bool) (*redis_models.Prompt, error)
}

// BluffSource produces the fake answers that pad the vote set and back
// the swap power-up. *bluff.Generator is the production implementation.
type BluffSource interface {
	Generate(ctx context.Context, question, correctAnswer string, existingAnswers []string) string
}

// Deliberate sentinel errors. Everything else that goes wrong inside an
// operation for an expected reason (wrong phase, unknown player, stale
// message) is a silent no-op signalled by a (nil, nil) return.
var (
	ErrRoomUnavailable  = errors.New("room not found or game already started")
	ErrContentRejected  = errors.New("answer rejected by content filter")
	ErrBotAlreadyInRoom = errors.New("bot player is already in the game")
)

// Engine owns the room lifecycle: phase transitions, per-room timers,
// scoring, the bot player's scheduled actions. All state lives in the
// room store; every operation reloads the room before mutating so no
// connection-local copy is ever trusted.
type Engine struct {
	store   store.RoomStore
	prompts PromptSource
	gen     BluffSource
	timers  *timerSet
	locks   *roomLocks

	// Broadcast hooks, set once by the gateway before serving. Results
	// are non-nil only for the leaderboard transition.
	OnPhaseChange func(roomId string, room *redis_models.GameRoom, results []redis_models.RoundResult)
	// Fired when a scheduled bot action changed the room outside of any
	// client message.
	OnRoomUpdated func(roomId string, room *redis_models.GameRoom)
	// Live own-answer vote count for players with an activated spy
	// power-up.
	OnSpyVotes func(playerId string, voteCount int)
}

func NewEngine(roomStore store.RoomStore, prompts PromptSource, gen BluffSource) *Engine {
	return &Engine{
		store:   roomStore,
		prompts: prompts,
		gen:     gen,
		timers:  newTimerSet(),
		locks:   newRoomLocks(),
	}
}

func (e *Engine) phaseChanged(room *redis_models.GameRoom, results []redis_models.RoundResult) {
	if e.OnPhaseChange != nil {
		e.OnPhaseChange(room.Id, room, results)
	}
}

func (e *Engine) roomUpdated(room *redis_models.GameRoom) {
	if e.OnRoomUpdated != nil {
		e.OnRoomUpdated(room.Id, room)
	}
}

// GenerateUniqueRoomCode draws 4-character codes from the unambiguous
// alphabet until the store reports one free, up to a bounded number of
// attempts.
func (e *Engine) GenerateUniqueRoomCode() (string, error) {
	for attempt := 0; attempt < game_constants.MaxRoomCodeAttempts; attempt++ {
		b := make([]byte, game_constants.RoomCodeLength)
		for i := range b {
			b[i] = game_constants.RoomCodeAlphabet[rand.Intn(len(game_constants.RoomCodeAlphabet))]
		}
		code := string(b)

		unique, err := e.store.IsCodeUnique(code)
		if err != nil {
			return "", err
		}
		if unique {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique room code")
}

// CreateRoom builds a fresh lobby with the creator as host.
func (e *Engine) CreateRoom(playerName, avatar, deckId string, familySafe bool, settings *SettingsUpdate) (*redis_models.GameRoom, string, error) {
	code, err := e.GenerateUniqueRoomCode()
	if err != nil {
		return nil, "", err
	}

	playerId := uuid.NewString()
	room := &redis_models.GameRoom{
		Id:   uuid.NewString(),
		Code: code,
		Players: []redis_models.Player{{
			Id:        playerId,
			Name:      playerName,
			IsHost:    true,
			Avatar:    avatar,
			Score:     0,
			Connected: true,
			PowerUp:   redis_models.PowerUpState{Kind: redis_models.PowerUpNone},
		}},
		State:        redis_models.PhaseLobby,
		CurrentRound: 0,
		TotalRounds:  game_constants.DefaultTotalRounds,
		DeckId:       deckId,
		FamilySafe:   familySafe,
		Answers:      []redis_models.Answer{},
		Votes:        []redis_models.Vote{},
		Settings: redis_models.GameSettings{
			CollectTime:   game_constants.DefaultCollectTime,
			VoteTime:      game_constants.DefaultVoteTime,
			RevealTime:    game_constants.DefaultRevealTime,
			PointsCorrect: game_constants.DefaultPointsCorrect,
			PointsPerFool: game_constants.DefaultPointsPerFool,
			PointsFoolAll: game_constants.DefaultPointsFoolAll,
			PointsTimeout: game_constants.DefaultPointsTimeout,
		},
	}
	if settings != nil {
		applySettings(room, settings)
	}

	if err := e.store.Save(room); err != nil {
		return nil, "", err
	}

	log.Printf("[ENGINE] Room %s created with code %s by %s", room.Id, code, playerName)
	return room, playerId, nil
}

// JoinRoom adds a player by room code. A name matching an existing
// player restores that player's identity (reconnection) in any phase;
// new names are only accepted while the room is in the lobby.
func (e *Engine) JoinRoom(roomCode, playerName, avatar string) (*redis_models.GameRoom, string, error) {
	room, err := e.store.GetByCode(roomCode)
	if err != nil {
		return nil, "", err
	}
	if room == nil {
		return nil, "", ErrRoomUnavailable
	}

	lock := e.locks.get(room.Id)
	lock.Lock()
	defer lock.Unlock()

	room, err = e.store.Get(room.Id)
	if err != nil || room == nil {
		return nil, "", ErrRoomUnavailable
	}

	if existing := room.FindPlayerByName(playerName); existing != nil {
		log.Printf("[ENGINE] Player %s reconnecting to room %s in phase %s", playerName, room.Id, room.State)
		existing.Connected = true
		if err := e.store.Save(room); err != nil {
			return nil, "", err
		}
		return room, existing.Id, nil
	}

	if room.State != redis_models.PhaseLobby {
		log.Printf("[ENGINE] New player %s rejected from room %s in phase %s", playerName, room.Id, room.State)
		return nil, "", ErrRoomUnavailable
	}

	playerId := uuid.NewString()
	room.Players = append(room.Players, redis_models.Player{
		Id:        playerId,
		Name:      playerName,
		IsHost:    false,
		Avatar:    avatar,
		Score:     0,
		Connected: true,
		PowerUp:   redis_models.PowerUpState{Kind: redis_models.PowerUpNone},
	})

	if err := e.store.Save(room); err != nil {
		return nil, "", err
	}

	log.Printf("[ENGINE] Player %s joined room %s", playerName, room.Id)
	return room, playerId, nil
}

func (e *Engine) GetRoom(roomId string) (*redis_models.GameRoom, error) {
	return e.store.Get(roomId)
}

func (e *Engine) GetRoomByPlayerId(playerId string) (*redis_models.GameRoom, error) {
	return e.store.GetByPlayerId(playerId)
}

func (e *Engine) GetRoomByCode(code string) (*redis_models.GameRoom, error) {
	return e.store.GetByCode(code)
}

// MarkDisconnected flags the player offline without removing them; the
// record stays until an explicit leave.
func (e *Engine) MarkDisconnected(playerId string) (*redis_models.GameRoom, error) {
	room, err := e.store.GetByPlayerId(playerId)
	if err != nil || room == nil {
		return nil, err
	}

	lock := e.locks.get(room.Id)
	lock.Lock()
	defer lock.Unlock()

	room, err = e.store.Get(room.Id)
	if err != nil || room == nil {
		return nil, err
	}
	player := room.FindPlayer(playerId)
	if player == nil {
		return nil, nil
	}

	player.Connected = false
	if err := e.store.Save(room); err != nil {
		return nil, err
	}
	return room, nil
}
