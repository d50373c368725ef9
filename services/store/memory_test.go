package store

import (
	redis_models "Bloop/models/redis"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRoom() *redis_models.GameRoom {
	return &redis_models.GameRoom{
		Id:   "room-1",
		Code: "AB3K",
		Players: []redis_models.Player{
			{Id: "p1", Name: "Sam", IsHost: true},
			{Id: "p2", Name: "Alex"},
		},
		State: redis_models.PhaseLobby,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	assert.NoError(t, s.Save(testRoom()))

	got, err := s.Get("room-1")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "AB3K", got.Code)
	assert.Len(t, got.Players, 2)

	byCode, err := s.GetByCode("AB3K")
	assert.NoError(t, err)
	assert.NotNil(t, byCode)
	assert.Equal(t, "room-1", byCode.Id)

	byPlayer, err := s.GetByPlayerId("p2")
	assert.NoError(t, err)
	assert.NotNil(t, byPlayer)
	assert.Equal(t, "room-1", byPlayer.Id)
}

func TestMemoryStoreMissLooksLikeAbsence(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.Get("nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetByCode("ZZZZ")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetByPlayerId("ghost")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreCodeUniqueness(t *testing.T) {
	s := NewMemoryStore()

	unique, err := s.IsCodeUnique("AB3K")
	assert.NoError(t, err)
	assert.True(t, unique)

	assert.NoError(t, s.Save(testRoom()))

	unique, err = s.IsCodeUnique("AB3K")
	assert.NoError(t, err)
	assert.False(t, unique)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Save(testRoom()))

	first, _ := s.Get("room-1")
	first.Players[0].Score = 99

	// Unsaved mutation must not leak into the stored record.
	second, _ := s.Get("room-1")
	assert.Equal(t, 0, second.Players[0].Score)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Save(testRoom()))

	assert.NoError(t, s.Delete("room-1"))

	got, err := s.Get("room-1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	unique, _ := s.IsCodeUnique("AB3K")
	assert.True(t, unique)

	byPlayer, _ := s.GetByPlayerId("p1")
	assert.Nil(t, byPlayer)
}

func TestMemoryStoreDeletePlayerMapping(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Save(testRoom()))

	assert.NoError(t, s.DeletePlayerMapping("p2"))

	byPlayer, _ := s.GetByPlayerId("p2")
	assert.Nil(t, byPlayer)

	// The room itself and other players are untouched.
	byPlayer, _ = s.GetByPlayerId("p1")
	assert.NotNil(t, byPlayer)
}

func TestNewRoomStoreFallsBackToMemory(t *testing.T) {
	s := NewRoomStore(nil)
	_, ok := s.(*MemoryStore)
	assert.True(t, ok)
}
