package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer holds the socket.io server and the map of live
// connections keyed by player id. A player has at most one live
// connection; offline players simply have no entry.
type SocketServer struct {
	Sio_server        *socket.Server
	PlayerConnections map[string]*socket.Socket
	mutex             sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		PlayerConnections: make(map[string]*socket.Socket),
	}
}

func (s *SocketServer) AddConnection(playerId string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerConnections[playerId] = client
}

// RemoveConnection drops the mapping only if it still points at this
// socket, so a reconnect that replaced the entry is not clobbered by
// the old socket's disconnect.
func (s *SocketServer) RemoveConnection(playerId string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if current, ok := s.PlayerConnections[playerId]; ok && current == client {
		delete(s.PlayerConnections, playerId)
	}
}

func (s *SocketServer) GetConnection(playerId string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.PlayerConnections[playerId]
	return client, exists
}
