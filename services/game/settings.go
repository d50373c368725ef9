package game

import (
	redis_models "Bloop/models/redis"
)

// SettingsUpdate carries a partial settings change. Nil fields keep
// the current value.
type SettingsUpdate struct {
	TotalRounds   *int `json:"totalRounds,omitempty"`
	CollectTime   *int `json:"collectTime,omitempty"`
	VoteTime      *int `json:"voteTime,omitempty"`
	RevealTime    *int `json:"revealTime,omitempty"`
	PointsCorrect *int `json:"pointsCorrect,omitempty"`
	PointsPerFool *int `json:"pointsPerFool,omitempty"`
	PointsFoolAll *int `json:"pointsFoolAll,omitempty"`
	PointsTimeout *int `json:"pointsTimeout,omitempty"`
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applySettings merges a partial update into the room, clamping each
// field to its playable range.
func applySettings(room *redis_models.GameRoom, update *SettingsUpdate) {
	if update == nil {
		return
	}
	if update.TotalRounds != nil {
		room.TotalRounds = clamp(*update.TotalRounds, 1, 10)
	}
	if update.CollectTime != nil {
		room.Settings.CollectTime = clamp(*update.CollectTime, 30, 300)
	}
	if update.VoteTime != nil {
		room.Settings.VoteTime = clamp(*update.VoteTime, 15, 180)
	}
	if update.RevealTime != nil {
		room.Settings.RevealTime = clamp(*update.RevealTime, 5, 30)
	}
	if update.PointsCorrect != nil {
		room.Settings.PointsCorrect = clamp(*update.PointsCorrect, 0, 10)
	}
	if update.PointsPerFool != nil {
		room.Settings.PointsPerFool = clamp(*update.PointsPerFool, 0, 10)
	}
	if update.PointsFoolAll != nil {
		room.Settings.PointsFoolAll = clamp(*update.PointsFoolAll, 0, 10)
	}
	if update.PointsTimeout != nil {
		room.Settings.PointsTimeout = clamp(*update.PointsTimeout, -5, 0)
	}
}

// UpdateSettings applies a host settings change. Only possible in the
// lobby; later phases silently ignore it.
func (e *Engine) UpdateSettings(roomId string, update *SettingsUpdate) (*redis_models.GameRoom, error) {
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

	applySettings(room, update)

	if err := e.store.Save(room); err != nil {
		return nil, err
	}
	e.roomUpdated(room)
	return room, nil
}
