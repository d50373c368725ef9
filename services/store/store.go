package store

import (
	redis_models "Bloop/models/redis"

	"github.com/redis/go-redis/v9"
)

// Key prefixes for the three indices kept per room. All players of a
// room point their player key at the same room id.
const (
	RoomPrefix       = "room:"
	RoomCodePrefix   = "roomcode:"
	PlayerRoomPrefix = "player:"
)

// RoomStore is the durable keyed storage for room state. Lookups that
// find nothing return (nil, nil); errors are reserved for backing
// failures the caller cannot interpret as "missing".
type RoomStore interface {
	Save(room *redis_models.GameRoom) error
	Get(roomId string) (*redis_models.GameRoom, error)
	GetByCode(code string) (*redis_models.GameRoom, error)
	GetByPlayerId(playerId string) (*redis_models.GameRoom, error)
	Delete(roomId string) error
	DeletePlayerMapping(playerId string) error
	IsCodeUnique(code string) (bool, error)
}

// NewRoomStore picks the backing for the room store. With a live Redis
// client the store is Redis-backed and still degrades per-operation to
// the in-memory fallback; with a nil client it is memory-only (weaker
// durability, fine outside production).
func NewRoomStore(client *redis.Client) RoomStore {
	if client == nil {
		return NewMemoryStore()
	}
	return NewRedisStore(client)
}
