package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hailam/santorini/internal/board"
	"github.com/hailam/santorini/internal/engine"
)

// defaultMoveTime bounds a set_position search when the line protocol gives
// no explicit duration (spec.md's line protocol takes no time argument;
// a caller relies on a later stop command to end the search early).
const defaultMoveTime = 30 * time.Second

// Session runs one line-protocol conversation over an Engine: it reads
// commands from in and writes one JSON message per line to out. It keeps
// no position state between commands: set_position and next_moves each
// parse the FEN passed with them. This is the JSON-message
// analog of chessvariantengine-lib/interface.go's Run/ExecuteLine loop,
// reduced from UCI/XBOARD's command set to spec.md §6's five commands.
type Session struct {
	eng      *engine.Engine
	out      io.Writer
	moveTime time.Duration

	stoppedExplicitly atomic.Bool
}

// NewSession wires a fresh line-protocol session on top of eng, defaulting
// to defaultMoveTime for a set_position with no prior stop; call
// SetDefaultMoveTime to override it (e.g. from a loaded EngineConfig).
func NewSession(eng *engine.Engine, out io.Writer) *Session {
	return &Session{eng: eng, out: out, moveTime: defaultMoveTime}
}

// SetDefaultMoveTime overrides the per-search time budget set_position
// falls back to when the caller never sends a stop.
func (s *Session) SetDefaultMoveTime(d time.Duration) {
	if d > 0 {
		s.moveTime = d
	}
}

// Run reads one command per line from in until EOF or a quit command,
// dispatching each to its handler and writing any resulting messages to
// the session's out. It returns nil on a clean quit or EOF.
func (s *Session) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := s.ExecuteLine(line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// ExecuteLine dispatches a single command line, writing its result (or
// error) to out. It returns true if the command was quit.
func (s *Session) ExecuteLine(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command := fields[0]

	switch command {
	case "set_position":
		s.handleSetPosition(strings.TrimSpace(strings.TrimPrefix(line, command)))
	case "next_moves":
		s.handleNextMoves(strings.TrimSpace(strings.TrimPrefix(line, command)))
	case "stop":
		s.handleStop()
	case "ping":
		s.write(newPong())
	case "quit":
		return true
	default:
		s.writeError(parseError("unknown command %q", command))
	}
	return false
}

func (s *Session) handleSetPosition(fen string) {
	state, err := parseFEN(fen)
	if err != nil {
		s.writeError(err)
		return
	}

	s.stoppedExplicitly.Store(false)
	start := time.Now()

	var lastInfo atomic.Value // engine.SearchInfo
	lastInfo.Store(engine.SearchInfo{})

	searchErr := s.eng.StartSearch(state, engine.SearchLimits{MoveTime: s.moveTime}, func(info engine.SearchInfo) {
		lastInfo.Store(info)
		s.write(newBestMove(fen, applyMoveFEN(state, info.Best), TriggerImprovement, SearchMeta{
			Score:           info.Score,
			CalculatedDepth: info.Depth,
			ElapsedSeconds:  time.Since(start).Seconds(),
			Actions:         []string{info.Best.String()},
		}))
	})
	if searchErr != nil {
		s.writeError(&Error{Kind: KindEngineBusy, Message: searchErr.Error()})
		return
	}

	// The worker goroutine started by StartSearch runs to completion on its
	// own; this goroutine only waits for that to happen so it can emit the
	// terminal best_move message with the right trigger, per spec.md §6.
	go func() {
		for s.eng.Running() {
			time.Sleep(time.Millisecond)
		}
		info, _ := lastInfo.Load().(engine.SearchInfo)

		trigger := TriggerEndOfLine
		if s.stoppedExplicitly.Load() || time.Since(start) >= s.moveTime {
			trigger = TriggerStopFlag
		}
		s.write(newBestMove(fen, applyMoveFEN(state, info.Best), trigger, SearchMeta{
			Score:           info.Score,
			CalculatedDepth: info.Depth,
			ElapsedSeconds:  time.Since(start).Seconds(),
			Actions:         []string{info.Best.String()},
		}))
	}()
}

func (s *Session) handleNextMoves(fen string) {
	state, err := parseFEN(fen)
	if err != nil {
		s.writeError(err)
		return
	}

	successors := engine.NextMoves(state)
	moves := make([]NextMoveEntry, 0, len(successors))
	for _, nm := range successors {
		moves = append(moves, NextMoveEntry{
			Action:    nm.Move.String(),
			NextState: nm.After.ToFEN(),
		})
	}
	s.write(newNextMoves(fen, moves))
}

func (s *Session) handleStop() {
	s.stoppedExplicitly.Store(true)
	if _, _, err := s.eng.Stop(); err != nil {
		s.writeError(&Error{Kind: KindNoActiveSearch, Message: err.Error()})
		return
	}
	// The goroutine handleSetPosition started emits the single terminating
	// best_move (trigger stop_flag) once the engine has stopped.
}

func parseFEN(fen string) (*board.BoardState, *Error) {
	if fen == "" {
		return nil, parseError("set_position/next_moves requires a FEN argument")
	}
	state, err := board.ParseFEN(fen)
	if err != nil {
		return nil, parseError("%v", err)
	}
	return state, nil
}

// applyMoveFEN renders the FEN reached after playing best from state,
// without mutating state itself.
func applyMoveFEN(state *board.BoardState, best board.GenericMove) string {
	if best == board.NullMove {
		return state.ToFEN()
	}
	return engine.ApplyMove(state, state.CurrentPlayer, best).ToFEN()
}

func (s *Session) write(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(s.out, `{"type":"error","kind":"internal_error","message":%q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(s.out, string(b))
}

func (s *Session) writeError(err *Error) {
	s.write(newErrorMessage(err))
}
