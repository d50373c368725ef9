package store

import (
	game_constants "Bloop/constants/game"
	redis_models "Bloop/models/redis"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps room state in Redis so every server process sees the
// same rooms. Each room is one JSON value plus a code index and one
// player index row per player, all sharing a 4 hour TTL refreshed on
// every save. Any backing failure falls through to the in-memory store
// so game logic never observes the outage, and a key missing from Redis
// is still looked up there: a room saved during an outage stays
// reachable after Redis recovers. The fallback has no TTL reclamation,
// so rooms it holds live until deleted.
type RedisStore struct {
	client   *redis.Client
	ctx      context.Context
	fallback *MemoryStore
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:   client,
		ctx:      context.Background(),
		fallback: NewMemoryStore(),
	}
}

func (s *RedisStore) degraded(op string, err error) {
	log.Printf("[STORE-FALLBACK] Redis %s failed, using in-memory fallback: %v", op, err)
}

// Save stores the room and refreshes all three indices and their TTL.
// Key formats: "room:{id}", "roomcode:{code}", "player:{playerId}"
func (s *RedisStore) Save(room *redis_models.GameRoom) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %v", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(s.ctx, RoomPrefix+room.Id, data, game_constants.RoomTTL)
	pipe.Set(s.ctx, RoomCodePrefix+room.Code, room.Id, game_constants.RoomTTL)
	for _, p := range room.Players {
		pipe.Set(s.ctx, PlayerRoomPrefix+p.Id, room.Id, game_constants.RoomTTL)
	}

	if _, err := pipe.Exec(s.ctx); err != nil {
		s.degraded("Save", err)
		return s.fallback.Save(room)
	}
	// Keep the fallback warm so a later outage still sees this room.
	return s.fallback.Save(room)
}

func (s *RedisStore) Get(roomId string) (*redis_models.GameRoom, error) {
	data, err := s.client.Get(s.ctx, RoomPrefix+roomId).Bytes()
	if err == redis.Nil {
		return s.fallback.Get(roomId)
	}
	if err != nil {
		s.degraded("Get", err)
		return s.fallback.Get(roomId)
	}

	var room redis_models.GameRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling room data: %v", err)
	}
	return &room, nil
}

func (s *RedisStore) GetByCode(code string) (*redis_models.GameRoom, error) {
	roomId, err := s.client.Get(s.ctx, RoomCodePrefix+code).Result()
	if err == redis.Nil {
		return s.fallback.GetByCode(code)
	}
	if err != nil {
		s.degraded("GetByCode", err)
		return s.fallback.GetByCode(code)
	}
	return s.Get(roomId)
}

func (s *RedisStore) GetByPlayerId(playerId string) (*redis_models.GameRoom, error) {
	roomId, err := s.client.Get(s.ctx, PlayerRoomPrefix+playerId).Result()
	if err == redis.Nil {
		return s.fallback.GetByPlayerId(playerId)
	}
	if err != nil {
		s.degraded("GetByPlayerId", err)
		return s.fallback.GetByPlayerId(playerId)
	}
	return s.Get(roomId)
}

// Delete removes the room and every index row that points at it.
func (s *RedisStore) Delete(roomId string) error {
	room, err := s.Get(roomId)
	if err != nil || room == nil {
		return err
	}

	keys := []string{RoomPrefix + roomId, RoomCodePrefix + room.Code}
	for _, p := range room.Players {
		keys = append(keys, PlayerRoomPrefix+p.Id)
	}

	if err := s.client.Del(s.ctx, keys...).Err(); err != nil {
		s.degraded("Delete", err)
	}
	return s.fallback.Delete(roomId)
}

func (s *RedisStore) DeletePlayerMapping(playerId string) error {
	if err := s.client.Del(s.ctx, PlayerRoomPrefix+playerId).Err(); err != nil {
		s.degraded("DeletePlayerMapping", err)
	}
	return s.fallback.DeletePlayerMapping(playerId)
}

func (s *RedisStore) IsCodeUnique(code string) (bool, error) {
	err := s.client.Get(s.ctx, RoomCodePrefix+code).Err()
	if err == redis.Nil {
		return s.fallback.IsCodeUnique(code)
	}
	if err != nil {
		s.degraded("IsCodeUnique", err)
		return s.fallback.IsCodeUnique(code)
	}
	return false, nil
}
