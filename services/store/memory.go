package store

import (
	redis_models "Bloop/models/redis"
	"encoding/json"
	"sync"
)

// MemoryStore is the process-local fallback backing. Same contract as
// the Redis backing, no TTL reclamation. Constructed explicitly and
// owned by whoever built the store, never an ambient global.
type MemoryStore struct {
	mu          sync.RWMutex
	rooms       map[string][]byte // roomId -> room JSON
	codes       map[string]string // code -> roomId
	playerRooms map[string]string // playerId -> roomId
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:       make(map[string][]byte),
		codes:       make(map[string]string),
		playerRooms: make(map[string]string),
	}
}

func (m *MemoryStore) Save(room *redis_models.GameRoom) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.Id] = data
	m.codes[room.Code] = room.Id
	for _, p := range room.Players {
		m.playerRooms[p.Id] = room.Id
	}
	return nil
}

func (m *MemoryStore) Get(roomId string) (*redis_models.GameRoom, error) {
	m.mu.RLock()
	data, ok := m.rooms[roomId]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var room redis_models.GameRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (m *MemoryStore) GetByCode(code string) (*redis_models.GameRoom, error) {
	m.mu.RLock()
	roomId, ok := m.codes[code]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return m.Get(roomId)
}

func (m *MemoryStore) GetByPlayerId(playerId string) (*redis_models.GameRoom, error) {
	m.mu.RLock()
	roomId, ok := m.playerRooms[playerId]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return m.Get(roomId)
}

func (m *MemoryStore) Delete(roomId string) error {
	room, err := m.Get(roomId)
	if err != nil || room == nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomId)
	delete(m.codes, room.Code)
	for _, p := range room.Players {
		delete(m.playerRooms, p.Id)
	}
	return nil
}

func (m *MemoryStore) DeletePlayerMapping(playerId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.playerRooms, playerId)
	return nil
}

func (m *MemoryStore) IsCodeUnique(code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.codes[code]
	return !exists, nil
}
