package respserver

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/mshaverdo/daikon/core"
	"github.com/mshaverdo/daikon/log"
)

type activeSession struct {
	conn    net.Conn
	session *Session
}

// RespServer accepts TCP connections and runs a Session per connection against
// a shared Core.
type RespServer struct {
	host string
	port int
	core *core.Core

	mu       sync.Mutex
	listener net.Listener
	sessions map[*activeSession]struct{}

	// wg waits for session goroutines on shutdown
	wg sync.WaitGroup
}

// New returns new instance of RespServer
func New(host string, port int, c *core.Core) *RespServer {
	return &RespServer{
		host:     host,
		port:     port,
		core:     c,
		sessions: make(map[*activeSession]struct{}),
	}
}

// ListenAndServe binds the listening socket and accepts connections until
// Shutdown. The bind error is returned to the caller; accept errors after
// Shutdown are suppressed.
func (s *RespServer) ListenAndServe() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	log.Infof("ready to serve at %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if errors.Is(err, net.ErrClosed) {
			break
		}
		if err != nil {
			log.Errorf("accept failed: %s", err)
			continue
		}

		s.wg.Add(1)
		go s.serveConn(conn)
	}

	s.wg.Wait()
	return nil
}

// Shutdown stops accepting connections and tears down active sessions. It
// returns without waiting; ListenAndServe returns once every session
// goroutine has finished.
func (s *RespServer) Shutdown() error {
	s.mu.Lock()
	listener := s.listener
	for active := range s.sessions {
		active.session.Teardown()
		active.conn.Close()
	}
	s.mu.Unlock()

	if listener == nil {
		return nil
	}
	return listener.Close()
}

func (s *RespServer) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	active := &activeSession{conn: conn, session: NewSession(s.core, conn)}

	s.mu.Lock()
	s.sessions[active] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.sessions, active)
		s.mu.Unlock()
	}()

	log.Debugf("session started: %s", conn.RemoteAddr())

	if err := active.session.Serve(); err != nil {
		log.Noticef("session %s closed: %s", conn.RemoteAddr(), err)
		return
	}

	log.Debugf("session finished: %s", conn.RemoteAddr())
}
