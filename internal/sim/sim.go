// Package sim serves the Pathbot protocol over a locally generated maze.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vinser/maze"
	"golang.org/x/sync/errgroup"

	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/pathbot"
)

const (
	// Maze settings
	DefaultWidth  = 21
	DefaultHeight = 15
	// Central open area size
	DenWidth  = 5
	DenHeight = 3
	// Maze generation Bias defines maze complexity
	Bias = 0.2

	roomsPath  = "/pathbot/rooms/"
	blockedMsg = "You can't go that way"
)

type Config struct {
	Width  int
	Height int
	Seed   int64
}

// Server answers start and move requests. Every open maze cell is a room
// with a stable location path.
type Server struct {
	maze *maze.Maze
	mux  *http.ServeMux

	mu     sync.Mutex
	tokens map[maze.Point]string
	cells  map[string]maze.Point
}

func New(cfg Config) (*Server, error) {
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	m, err := maze.New(cfg.Width, cfg.Height, DenWidth, DenHeight)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d maze: %w", cfg.Width, cfg.Height, err)
	}
	m.Generate(cfg.Seed, nil, nil, nil, "top", Bias)
	if _, ok := m.Solve(); !ok {
		return nil, fmt.Errorf("no solution for width=%d, height=%d, seed=%d", cfg.Width, cfg.Height, cfg.Seed)
	}
	log.Printf("sim: generated %dx%d maze, seed=%d, start=%v, end=%v", cfg.Width, cfg.Height, cfg.Seed, m.Start(), m.End())

	s := &Server{
		maze:   m,
		mux:    http.NewServeMux(),
		tokens: make(map[maze.Point]string),
		cells:  make(map[string]maze.Point),
	}
	s.mux.HandleFunc("POST "+pathbot.StartPath, s.handleStart)
	s.mux.HandleFunc("POST "+roomsPath+"{token}", s.handleMove)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) Maze() *maze.Maze {
	return s.maze
}

// Run serves h on ln until ctx is done, then shuts the server down.
func Run(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("sim: listening on %s", ln.Addr())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	room := s.room(s.maze.Start())
	room.Message = "Welcome to the maze. Find the exit."
	writePayload(w, room)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	from, ok := s.cell(r.PathValue("token"))
	if !ok {
		http.Error(w, "unknown room", http.StatusNotFound)
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	d, ok := nav.ParseDirection(req.Direction)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown direction %q", req.Direction), http.StatusBadRequest)
		return
	}

	to := step(from, d)
	switch {
	case !s.open(to):
		writePayload(w, pathbot.Message{Message: blockedMsg})
	case to == s.maze.End():
		writePayload(w, pathbot.Exit{
			Status:      pathbot.Finished,
			Description: "Daylight! You have found the way out of the maze.",
		})
	default:
		writePayload(w, s.room(to))
	}
}

func writePayload(w http.ResponseWriter, p pathbot.Payload) {
	data, err := pathbot.Encode(p)
	if err != nil {
		log.Printf("sim: encode %T: %v", p, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		log.Printf("sim: write %T: %v", p, err)
	}
}

func (s *Server) room(p maze.Point) pathbot.Room {
	var exits []nav.Direction
	for _, d := range nav.Directions {
		if s.open(step(p, d)) {
			exits = append(exits, d)
		}
	}
	end := s.maze.End()
	dx, dy := end.X-p.X, end.Y-p.Y
	return pathbot.Room{
		Status:      pathbot.InProgress,
		Exits:       exits,
		Description: describe(len(exits)),
		MazeExitHint: pathbot.MazeExitHint{
			Direction: nav.CompassFromDelta(dx, dy),
			Distance:  uint32(abs(dx) + abs(dy)),
		},
		LocationPath: roomsPath + s.token(p),
	}
}

func describe(exits int) string {
	switch exits {
	case 0:
		return "A sealed chamber. There is no way out."
	case 1:
		return "A dead end. The only way is back."
	case 2:
		return "A narrow corridor of damp stone."
	}
	return fmt.Sprintf("A junction where %d passages meet.", exits)
}

// open reports whether p is a walkable cell inside the maze.
func (s *Server) open(p maze.Point) bool {
	cell, ok := s.maze.Cell(p.X, p.Y)
	return ok && cell != maze.Wall
}

func (s *Server) token(p maze.Point) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[p]; ok {
		return t
	}
	t := uuid.NewString()
	s.tokens[p] = t
	s.cells[t] = p
	return t
}

func (s *Server) cell(token string) (maze.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.cells[token]
	return p, ok
}

func step(p maze.Point, d nav.Direction) maze.Point {
	delta := d.Delta()
	return maze.Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
