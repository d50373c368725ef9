package handlers

import (
	redis_models "Bloop/models/redis"
	"Bloop/services/game"
	socketio_types "Bloop/services/socket_io/types"
	socketio_utils "Bloop/services/socket_io/utils"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

func HandleSubmitAnswer(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || room == nil {
			return
		}

		text := socketio_utils.StringField(socketio_utils.Payload(args), "text")
		if text == "" {
			return
		}

		updated, err := engine.SubmitAnswer(room.Id, playerId, text)
		if err != nil {
			if errors.Is(err, game.ErrContentRejected) {
				client.Emit("answer_rejected", gin.H{"message": "That answer is not allowed in family-safe mode"})
				return
			}
			log.Printf("[ROUND-ERROR] Error submitting answer in room %s: %v", room.Id, err)
			return
		}
		BroadcastRoomUpdated(sio, updated)
	}
}

func HandleSubmitVote(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || room == nil {
			return
		}

		answerId := socketio_utils.StringField(socketio_utils.Payload(args), "answerId")
		if answerId == "" {
			return
		}

		updated, err := engine.SubmitVote(room.Id, playerId, answerId)
		if err != nil {
			log.Printf("[ROUND-ERROR] Error submitting vote in room %s: %v", room.Id, err)
			return
		}
		BroadcastRoomUpdated(sio, updated)
	}
}

func HandleSendReaction(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || room == nil {
			return
		}

		payload := socketio_utils.Payload(args)
		answerId := socketio_utils.StringField(payload, "answerId")
		reaction := redis_models.ReactionType(socketio_utils.StringField(payload, "reaction"))
		if answerId == "" || !reaction.Valid() {
			return
		}

		updated, err := engine.SendReaction(room.Id, playerId, answerId, reaction)
		if err != nil {
			log.Printf("[ROUND-ERROR] Error sending reaction in room %s: %v", room.Id, err)
			return
		}
		if updated != nil {
			BroadcastToRoom(sio, updated, "reaction_added", gin.H{
				"answerId": answerId,
				"reaction": gin.H{"playerId": playerId, "reaction": reaction},
			})
		}
	}
}

func HandleUsePowerUp(engine *game.Engine, client *socket.Socket,
	session *Session, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		playerId := session.PlayerId()
		room, err := engine.GetRoomByPlayerId(playerId)
		if err != nil || room == nil {
			return
		}

		updated, err := engine.UsePowerUp(room.Id, playerId)
		if err != nil {
			log.Printf("[ROUND-ERROR] Error using power-up in room %s: %v", room.Id, err)
			return
		}
		BroadcastRoomUpdated(sio, updated)
	}
}
