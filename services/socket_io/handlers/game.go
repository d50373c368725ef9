package handlers

import (
	"Bloop/services/game"
	socketio_types "Bloop/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

func HandleStartGame(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || !isHost(room, playerId) {
			return
		}

		started, err := engine.StartGame(room.Id)
		if err != nil {
			log.Printf("[GAME-ERROR] Error starting game in room %s: %v", room.Id, err)
			client.Emit("error", gin.H{"message": "Could not start game"})
			return
		}
		if started == nil {
			return
		}
		BroadcastToRoom(sio, started, "game_started", gin.H{"room": started})
	}
}

func HandlePlayerReady(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || room == nil {
			return
		}

		updated, err := engine.SetPlayerReady(room.Id, playerId)
		if err != nil {
			log.Printf("[GAME-ERROR] Error readying player in room %s: %v", room.Id, err)
			return
		}
		// The collect transition, if this was the last ready, already
		// broadcast phase_changed through the engine hook.
		BroadcastRoomUpdated(sio, updated)
	}
}

func HandleNextRound(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || !isHost(room, playerId) {
			return
		}

		updated, err := engine.NextRound(room.Id)
		if err != nil {
			log.Printf("[GAME-ERROR] Error advancing round in room %s: %v", room.Id, err)
			return
		}
		BroadcastRoomUpdated(sio, updated)
	}
}

func HandleEndGame(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || !isHost(room, playerId) {
			return
		}

		ended, err := engine.EndGame(room.Id)
		if err != nil {
			log.Printf("[GAME-ERROR] Error ending game in room %s: %v", room.Id, err)
			return
		}
		BroadcastRoomUpdated(sio, ended)
	}
}
