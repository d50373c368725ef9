package handlers

import (
	redis_models "Bloop/models/redis"
	socketio_types "Bloop/services/socket_io/types"

	"github.com/gin-gonic/gin"
)

// BroadcastToRoom sends the event to every player in the room with a
// live connection. Offline players are skipped, they catch up from the
// room state on reconnect.
func BroadcastToRoom(sio *socketio_types.SocketServer, room *redis_models.GameRoom, event string, payload gin.H) {
	if room == nil {
		return
	}
	for _, p := range room.Players {
		if client, ok := sio.GetConnection(p.Id); ok {
			client.Emit(event, payload)
		}
	}
}

func BroadcastRoomUpdated(sio *socketio_types.SocketServer, room *redis_models.GameRoom) {
	BroadcastToRoom(sio, room, "room_updated", gin.H{"room": room})
}

// isHost reports whether the player may perform host-only actions.
func isHost(room *redis_models.GameRoom, playerId string) bool {
	if room == nil {
		return false
	}
	player := room.FindPlayer(playerId)
	return player != nil && player.IsHost
}
