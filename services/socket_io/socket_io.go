package socket_io

import (
	redis_models "Bloop/models/redis"
	"Bloop/services/game"
	"Bloop/services/socket_io/handlers"
	socketio_types "Bloop/services/socket_io/types"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io server on the router and registers all
// game events. The engine's broadcast hooks are bound here so that
// timer- and bot-driven transitions reach clients the same way
// message-driven ones do.
func (sio *MySocketServer) Start(router *gin.Engine, engine *game.Engine) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to reduce network load and
	// support slower networks.
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.PlayerConnections = make(map[string]*socket.Socket)
	server := (*socketio_types.SocketServer)(sio)

	engine.OnPhaseChange = func(roomId string, room *redis_models.GameRoom, results []redis_models.RoundResult) {
		handlers.BroadcastToRoom(server, room, "phase_changed", gin.H{
			"phase": room.State,
			"room":  room,
		})
		if results != nil {
			handlers.BroadcastToRoom(server, room, "round_results", gin.H{
				"results": results,
				"room":    room,
			})
		}
	}
	engine.OnRoomUpdated = func(roomId string, room *redis_models.GameRoom) {
		handlers.BroadcastRoomUpdated(server, room)
	}
	engine.OnSpyVotes = func(playerId string, voteCount int) {
		if client, ok := server.GetConnection(playerId); ok {
			client.Emit("spy_votes_update", gin.H{"voteCount": voteCount})
		}
	}

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		session := &handlers.Session{}

		client.On("create_room", handlers.HandleCreateRoom(engine, client, session, server))
		client.On("join_room", handlers.HandleJoinRoom(engine, client, session, server))
		client.On("leave_room", handlers.HandleLeaveRoom(engine, client, session, server))
		client.On("update_settings", handlers.HandleUpdateSettings(engine, client, session, server))
		client.On("add_mr_bloop", handlers.HandleAddBot(engine, client, session, server))
		client.On("remove_mr_bloop", handlers.HandleRemoveBot(engine, client, session, server))

		client.On("start_game", handlers.HandleStartGame(engine, client, session, server))
		client.On("player_ready", handlers.HandlePlayerReady(engine, client, session, server))
		client.On("next_round", handlers.HandleNextRound(engine, client, session, server))
		client.On("end_game", handlers.HandleEndGame(engine, client, session, server))

		client.On("submit_answer", handlers.HandleSubmitAnswer(engine, client, session, server))
		client.On("submit_vote", handlers.HandleSubmitVote(engine, client, session, server))
		client.On("send_reaction", handlers.HandleSendReaction(engine, client, session, server))
		client.On("use_power_up", handlers.HandleUsePowerUp(engine, client, session, server))

		client.On("disconnecting", handlers.HandleDisconnecting(engine, client, session, server))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)
	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
