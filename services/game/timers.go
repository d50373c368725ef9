package game

import (
	redis_models "Bloop/models/redis"
	"log"
	"sync"
	"time"
)

// Per-room timer bookkeeping. At most one timer is armed per room;
// arming swaps out and stops any previous handle under the mutex, so an
// auto-advance firing and an early advance cancelling it can never both
// win.
type timerSet struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[string]*time.Timer)}
}

func (t *timerSet) arm(roomId string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.timers[roomId]; ok {
		existing.Stop()
	}
	t.timers[roomId] = time.AfterFunc(d, fn)
}

func (t *timerSet) cancel(roomId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[roomId]; ok {
		timer.Stop()
		delete(t.timers, roomId)
	}
}

// roomLocks serializes all mutations to a given room within this
// process. The store itself is last-write-wins, so the read-modify-write
// sequence needs a single writer per room; multi-process deployments
// sharing one Redis would additionally need a distributed lock, which is
// out of scope here.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*sync.Mutex)}
}

func (r *roomLocks) get(roomId string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[roomId]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[roomId] = l
	return l
}

func (r *roomLocks) forget(roomId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, roomId)
}

// autoAdvancePhase is the armed-timer callback. The phase may have moved
// on while the timer was in flight, so the room is reloaded and the
// expected phase re-checked before anything advances.
func (e *Engine) autoAdvancePhase(roomId string, expected redis_models.GamePhase) {
	lock := e.locks.get(roomId)
	lock.Lock()
	defer lock.Unlock()

	room, err := e.store.Get(roomId)
	if err != nil || room == nil {
		log.Printf("[TIMER] Room %s gone, dropping auto-advance", roomId)
		return
	}
	if room.State != expected {
		log.Printf("[TIMER] Phase mismatch for room %s - current: %s, expected: %s. Ignoring stale timer.",
			roomId, room.State, expected)
		return
	}

	log.Printf("[TIMER] Auto-advancing room %s from phase %s", roomId, room.State)

	switch room.State {
	case redis_models.PhaseCollect:
		e.prepareVoting(room)
	case redis_models.PhaseVote:
		e.revealAnswers(room)
	case redis_models.PhaseReveal:
		e.showLeaderboard(room)
	}
}
