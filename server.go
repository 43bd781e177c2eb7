package bankline

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
)

// Envelope prefixes written in front of every serialized response.
// ERR marks ill-formatted requests and server-side issues; every other
// response, including domain KO, travels under OK.
const (
	envelopeOK  = "OK"
	envelopeErr = "ERR"
)

// maxLineBytes caps a single request line.
const maxLineBytes = 64 * 1024

// Server accepts TCP sessions and feeds each line to the dispatcher,
// writing back exactly one enveloped response per non-BYE line.
type Server struct {
	disp *Dispatcher
	log  *zerolog.Logger
	node *snowflake.Node

	mu    sync.Mutex
	lis   net.Listener
	conns map[net.Conn]struct{}
	done  bool

	wg sync.WaitGroup
}

func NewServer(disp *Dispatcher, log *zerolog.Logger) (*Server, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &Server{
		disp:  disp,
		log:   log,
		node:  node,
		conns: make(map[net.Conn]struct{}),
	}, nil
}

// Serve accepts connections on lis until Close is called. It takes
// ownership of the listener.
func (s *Server) Serve(lis net.Listener) error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return net.ErrClosed
	}
	s.lis = lis
	s.mu.Unlock()

	for {
		conn, err := lis.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.done
			s.mu.Unlock()
			if closed || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			return err
		}

		s.mu.Lock()
		if s.done {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.session(conn)
	}
}

// Close stops accepting and tears down live sessions. Safe to call
// more than once.
func (s *Server) Close() {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	if s.lis != nil {
		s.lis.Close()
	}
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) session(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		sessionsActive.Dec()
	}()

	sessionsActive.Inc()
	sid := s.node.Generate()
	log := s.log.With().
		Int64("session_id", sid.Int64()).
		Str("remote", conn.RemoteAddr().String()).
		Logger()
	log.Info().Msg("session started")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		start := time.Now()
		resp := s.disp.Handle(context.Background(), line)
		prefix := linePrefix(line)
		reqLatency.WithLabelValues(prefix).Observe(time.Since(start).Seconds())
		if resp == nil {
			// BYE: the one case with no reply.
			log.Info().Msg("session ended by client")
			return
		}
		reqTotal.WithLabelValues(prefix, outcomeLabel(resp)).Inc()
		if err := writeResponse(conn, resp); err != nil {
			log.Warn().Err(err).Msg("response write failed, dropping session")
			return
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warn().Err(err).Msg("session read failed")
	}
	log.Info().Msg("session ended")
}

func linePrefix(line string) string {
	if i := strings.IndexByte(line, ' '); i != -1 {
		return line[:i]
	}
	return line
}

func writeResponse(conn net.Conn, resp ServerResponse) error {
	bits, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	env := envelopeOK
	if _, isErr := resp.(ErrorResponse); isErr {
		env = envelopeErr
	}
	buf := make([]byte, 0, len(env)+len(bits)+2)
	buf = append(buf, env...)
	buf = append(buf, ' ')
	buf = append(buf, bits...)
	buf = append(buf, '\n')
	_, err = conn.Write(buf)
	return err
}
