package handlers

import (
	"Bloop/services/game"
	socketio_types "Bloop/services/socket_io/types"
	socketio_utils "Bloop/services/socket_io/utils"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

func HandleCreateRoom(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := socketio_utils.Payload(args)
		playerName := socketio_utils.StringField(payload, "playerName")
		if playerName == "" {
			client.Emit("error", gin.H{"message": "playerName is required"})
			return
		}
		avatar := socketio_utils.StringField(payload, "avatar")
		deckId := socketio_utils.StringField(payload, "deckId")
		familySafe := socketio_utils.BoolField(payload, "familySafe")
		settings := socketio_utils.SettingsField(payload, "settings")

		room, playerId, err := engine.CreateRoom(playerName, avatar, deckId, familySafe, settings)
		if err != nil {
			log.Printf("[ROOM-ERROR] Error creating room for %s: %v", playerName, err)
			client.Emit("error", gin.H{"message": "Could not create room"})
			return
		}

		session.Bind(playerId)
		sio.AddConnection(playerId, client)
		client.Emit("room_created", gin.H{"room": room, "playerId": playerId})
	}
}

func HandleJoinRoom(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := socketio_utils.Payload(args)
		roomCode := socketio_utils.StringField(payload, "roomCode")
		playerName := socketio_utils.StringField(payload, "playerName")
		if roomCode == "" || playerName == "" {
			client.Emit("error", gin.H{"message": "roomCode and playerName are required"})
			return
		}
		avatar := socketio_utils.StringField(payload, "avatar")

		room, playerId, err := engine.JoinRoom(roomCode, playerName, avatar)
		if err != nil {
			if errors.Is(err, game.ErrRoomUnavailable) {
				client.Emit("error", gin.H{"message": "Room not found or game already started"})
			} else {
				log.Printf("[ROOM-ERROR] Error joining room %s: %v", roomCode, err)
				client.Emit("error", gin.H{"message": "Could not join room"})
			}
			return
		}

		session.Bind(playerId)
		sio.AddConnection(playerId, client)
		client.Emit("room_joined", gin.H{"room": room, "playerId": playerId})

		if player := room.FindPlayer(playerId); player != nil {
			BroadcastToRoom(sio, room, "player_joined", gin.H{"player": player})
		}
		BroadcastRoomUpdated(sio, room)
	}
}

func HandleLeaveRoom(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		if playerId == "" {
			return
		}
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || room == nil {
			return
		}

		remaining, err := engine.LeaveRoom(room.Id, playerId)
		if err != nil {
			log.Printf("[ROOM-ERROR] Error leaving room %s: %v", room.Id, err)
			return
		}
		sio.RemoveConnection(playerId, client)

		if remaining != nil {
			BroadcastToRoom(sio, remaining, "player_left", gin.H{"playerId": playerId})
			BroadcastRoomUpdated(sio, remaining)
		}
	}
}

func HandleUpdateSettings(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || !isHost(room, playerId) {
			return
		}

		settings := socketio_utils.SettingsField(socketio_utils.Payload(args), "settings")
		if settings == nil {
			return
		}

		updated, err := engine.UpdateSettings(room.Id, settings)
		if err != nil {
			log.Printf("[ROOM-ERROR] Error updating settings in room %s: %v", room.Id, err)
			return
		}
		BroadcastRoomUpdated(sio, updated)
	}
}

func HandleAddBot(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || !isHost(room, playerId) {
			return
		}

		updated, err := engine.AddBot(room.Id)
		if err != nil {
			if errors.Is(err, game.ErrBotAlreadyInRoom) {
				client.Emit("error", gin.H{"message": "Mr Blooper is already in the game"})
			}
			return
		}
		BroadcastRoomUpdated(sio, updated)
	}
}

func HandleRemoveBot(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || !isHost(room, playerId) {
			return
		}

		updated, err := engine.RemoveBot(room.Id)
		if err != nil {
			log.Printf("[ROOM-ERROR] Error removing bot from room %s: %v", room.Id, err)
			return
		}
		BroadcastRoomUpdated(sio, updated)
	}
}
