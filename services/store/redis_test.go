package store

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, _ := newTestRedisStore(t)

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

	unique, err := s.IsCodeUnique("AB3K")
	assert.NoError(t, err)
	assert.False(t, unique)
}

func TestRedisStoreMissingKeyChecksFallback(t *testing.T) {
	s, mr := newTestRedisStore(t)

	assert.NoError(t, s.Save(testRoom()))

	// Wipe Redis as if it restarted empty. The warm in-memory copy
	// must still serve every lookup path.
	mr.FlushAll()

	got, err := s.Get("room-1")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "AB3K", got.Code)

	byCode, err := s.GetByCode("AB3K")
	assert.NoError(t, err)
	assert.NotNil(t, byCode)
	assert.Equal(t, "room-1", byCode.Id)

	byPlayer, err := s.GetByPlayerId("p1")
	assert.NoError(t, err)
	assert.NotNil(t, byPlayer)
	assert.Equal(t, "room-1", byPlayer.Id)

	unique, err := s.IsCodeUnique("AB3K")
	assert.NoError(t, err)
	assert.False(t, unique)
}

func TestRedisStoreAbsentEverywhereIsNil(t *testing.T) {
	s, _ := newTestRedisStore(t)

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

func TestRedisStoreDeleteClearsBothBackings(t *testing.T) {
	s, _ := newTestRedisStore(t)

	assert.NoError(t, s.Save(testRoom()))
	assert.NoError(t, s.Delete("room-1"))

	got, err := s.Get("room-1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	byPlayer, _ := s.GetByPlayerId("p1")
	assert.Nil(t, byPlayer)

	unique, _ := s.IsCodeUnique("AB3K")
	assert.True(t, unique)
}
