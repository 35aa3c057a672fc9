// Package socket implements the line-framed TCP half of the transport
// server.
package socket

import (
	"bufio"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"sync"

	"github.com/Mounadi05/taskmaster/internal/application/dispatch"
)

// DefaultBacklog bounds the number of concurrent connections the server
// serves at once.
const DefaultBacklog = 256

// Server accepts line-framed TCP requests and forwards each to a
// Dispatcher, one goroutine per connection.
type Server struct {
	listener net.Listener
	dispatch *dispatch.Dispatcher
	logger   *log.Logger
	sem      chan struct{}
	wg       sync.WaitGroup
}

// Listen opens a TCP listener at addr and builds a Server over it.
func Listen(addr string, d *dispatch.Dispatcher, logger *log.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		listener: ln,
		dispatch: d,
		logger:   logger,
		sem:      make(chan struct{}, DefaultBacklog),
	}, nil
}

// Addr returns the listener's bound address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.logger.Printf("socket: accept error: %v", err)
			continue
		}

		s.sem <- struct{}{}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { <-s.sem }()
			s.handle(conn)
		}()
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	enc := json.NewEncoder(conn)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply := s.dispatch.Dispatch(strings.Fields(line))
		if err := enc.Encode(reply); err != nil {
			s.logger.Printf("socket: write error: %v", err)
			return
		}
	}
}
