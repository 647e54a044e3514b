package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/camille/redite/internal/app"
	"github.com/camille/redite/internal/domain/analysis"
)

// Server is the daemon that listens on a Unix socket and serves
// analysis requests. The app enforces single-flight; the server just
// relays the rejection as an error message.
type Server struct {
	app      *app.App
	listener net.Listener
	sockPath string
	started  time.Time

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server backed by the given app.
func NewServer(a *app.App, sockPath string) *Server {
	return &Server{
		app:        a,
		sockPath:   sockPath,
		done:       make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. It handles stale sockets by
// attempting a connection first — if the connection fails, the stale
// socket is removed before binding.
func (s *Server) Start() error {
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return fmt.Errorf("daemon already running at %s", s.sockPath)
		}
		// Stale socket — remove it
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop gracefully shuts down the server, closing the listener and
// removing the socket file. Idempotent.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.sockPath)
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown
// request is received. The daemon's main goroutine should select on
// this alongside OS signals so the process actually exits.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB max message

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeJSON(conn, Response{Error: "invalid request JSON"})
			continue
		}

		if req.Method == MethodAnalyze {
			s.handleAnalyze(conn, req)
			continue
		}

		resp := s.handleRequest(req)
		s.writeJSON(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodHealth:
		return s.handleHealth(req)
	case MethodStats:
		return s.handleStats(req)
	case MethodReload:
		return s.handleReload(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: struct{}{}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// handleAnalyze streams the engine's events back over the connection:
// progress messages as they happen, then exactly one complete or error.
func (s *Server) handleAnalyze(conn net.Conn, req Request) {
	paramsJSON, err := json.Marshal(req.Params)
	if err != nil {
		s.writeJSON(conn, ErrorMessage{Type: EventError, Error: "invalid analyze params"})
		return
	}
	var params AnalyzeParams
	if err := json.Unmarshal(paramsJSON, &params); err != nil {
		s.writeJSON(conn, ErrorMessage{Type: EventError, Error: "invalid analyze params"})
		return
	}

	events, err := s.app.Analyze(params.Text)
	if err != nil {
		s.writeJSON(conn, ErrorMessage{Type: EventError, Error: err.Error()})
		return
	}

	for ev := range events {
		switch e := ev.(type) {
		case analysis.Progress:
			s.writeJSON(conn, ProgressMessage{Type: EventProgress, Progress: e.Percent, Message: e.Message})
		case analysis.Complete:
			s.writeJSON(conn, CompleteMessage{
				Type:             EventComplete,
				Highlights:       e.Result.Highlights,
				LemmaFrequencies: e.Result.LemmaFrequencies,
				Stats:            e.Result.Stats,
			})
		case analysis.Failure:
			s.writeJSON(conn, ErrorMessage{Type: EventError, Error: e.Err})
		}
	}
}

func (s *Server) handleHealth(req Request) Response {
	entries, _ := s.app.DictionaryStats()
	return Response{
		ID: req.ID,
		Result: HealthResult{
			Status:  "ok",
			Entries: entries,
			Uptime:  time.Since(s.started).Round(time.Second).String(),
		},
	}
}

func (s *Server) handleStats(req Request) Response {
	entries, builtAt := s.app.DictionaryStats()
	return Response{
		ID: req.ID,
		Result: StatsResult{
			Entries:       entries,
			BundleBuiltAt: builtAt,
			Busy:          s.app.Busy(),
			UptimeSeconds: int64(time.Since(s.started).Seconds()),
		},
	}
}

func (s *Server) handleReload(req Request) Response {
	if err := s.app.ReloadDictionary(); err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	entries, _ := s.app.DictionaryStats()
	return Response{ID: req.ID, Result: ReloadResult{Entries: entries}}
}

func (s *Server) writeJSON(conn net.Conn, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
