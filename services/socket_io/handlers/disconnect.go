package handlers

import (
	"Bloop/services/game"
	socketio_types "Bloop/services/socket_io/types"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleDisconnecting marks the player offline and tells the room. The
// player record stays in the room until an explicit leave, so a later
// join with the same name reclaims it.
func HandleDisconnecting(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		if playerId == "" {
			return
		}
		sio.RemoveConnection(playerId, client)

		room, err := engine.MarkDisconnected(playerId)
		if err != nil {
			log.Printf("[DISCONNECT-ERROR] Error marking player %s disconnected: %v", playerId, err)
			return
		}
		if room != nil {
			log.Printf("[DISCONNECT] Player %s disconnected from room %s", playerId, room.Id)
			BroadcastRoomUpdated(sio, room)
		}
	}
}
