package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hailam/santorini/internal/board"
	"github.com/hailam/santorini/internal/book"
	"github.com/hailam/santorini/internal/gods"
	"github.com/hailam/santorini/internal/storage"
)

// SearchInfo reports progress for one completed iterative-deepening depth,
// delivered through the Engine's callback the way the teacher's chess
// engine delivers UCI "info" lines.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Best  board.GenericMove
}

// SearchLimits bounds one search. A zero value means unbounded on that
// axis (the caller relies on Stop() instead).
type SearchLimits struct {
	MaxDepth int
	MaxNodes uint64
	MoveTime time.Duration
}

// workerState mirrors original_source/santorini_core/src/engine.rs's
// EngineThreadWrapper state machine: a worker is Pending between searches
// and Active while one is in flight.
type workerState int

const (
	statePending workerState = iota
	stateActive
)

// computeRequest is the message sent into the persistent worker goroutine,
// grounded on chessvariantengine-lib's command-dispatch loop but reduced to
// the single message shape spec.md's engine driver needs: one board
// position, its search limits, a per-depth callback, and a reply channel
// (the stop flag lives on the Engine itself).
type computeRequest struct {
	state   *board.BoardState
	limits  SearchLimits
	onDepth func(SearchInfo)
	done    chan computeResult
}

type computeResult struct {
	move  board.GenericMove
	score int
}

// Engine is the long-lived Santorini search driver: one persistent worker
// goroutine reading computeRequest messages off a channel, one
// TranspositionTable aged across searches by god matchup, and a single
// Searcher. Unlike the teacher's chess Engine (a Lazy-SMP pool of workers
// sharing one TT), this driver is intentionally single-threaded per
// original_source/santorini_core/src/engine.rs's EngineThreadWrapper and
// spec.md's single-instance-per-match model.
type Engine struct {
	mu       sync.Mutex
	tt       *TranspositionTable
	searcher *Searcher

	requests chan computeRequest
	state    workerState

	stopFlag atomic.Bool
	running  atomic.Bool

	// lastMu/lastMove/lastScore record the best move observed by the most
	// recent (possibly still-running) search, so Stop() can return a
	// best-move-observed-so-far even if it races the worker's own
	// completion.
	lastMu    sync.Mutex
	lastMove  board.GenericMove
	lastScore int

	// Book, if set, is probed before every search; a hit is played
	// immediately without spending any search time, the same opening-book
	// shortcut the teacher's engine takes (internal/book/book.go).
	Book *book.Book

	// Store, if set, persists engine configuration and is updated with
	// match statistics after every completed search, the same BadgerDB
	// bookkeeping the teacher's engine does via internal/storage.
	Store *storage.Storage
}

// NewEngine builds an engine with a fresh transposition table and an
// evaluator loaded from weightsFile (empty string = random weights), and
// starts its persistent worker goroutine.
func NewEngine(weightsFile string) (*Engine, error) {
	eval, err := NewEvaluator(weightsFile)
	if err != nil {
		return nil, fmt.Errorf("engine: loading evaluator: %w", err)
	}
	tt := NewTranspositionTable()
	e := &Engine{
		tt:       tt,
		searcher: NewSearcher(tt, eval),
		requests: make(chan computeRequest),
		state:    statePending,
	}
	go e.run()
	return e, nil
}

// run is the worker goroutine's main loop: block on requests, run one
// search to completion (or to Stop()/limit), report the result, go back to
// Pending. This is the channel-based analog of spec.md's single persistent
// worker thread, in place of a direct blocking method call.
func (e *Engine) run() {
	for req := range e.requests {
		e.mu.Lock()
		e.state = stateActive
		e.mu.Unlock()

		move, score := e.compute(req.state, req.limits, req.onDepth)

		e.mu.Lock()
		e.state = statePending
		e.mu.Unlock()

		req.done <- computeResult{move: move, score: score}
	}
}

// StartSearch begins searching state in the background under limits,
// invoking onInfo after each completed iterative-deepening depth. It
// returns ErrEngineBusy if a search is already running, matching spec.md's
// "one search at a time per engine instance" rule.
func (e *Engine) StartSearch(state *board.BoardState, limits SearchLimits, onInfo func(SearchInfo)) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrEngineBusy
	}

	e.tt.Age(state.ActiveGod[board.PlayerOne], state.ActiveGod[board.PlayerTwo])

	req := computeRequest{
		state:   state,
		limits:  limits,
		onDepth: onInfo,
		done:    make(chan computeResult, 1),
	}
	e.stopFlag.Store(false)

	go func() {
		e.requests <- req
		result := <-req.done
		e.lastMu.Lock()
		e.lastMove, e.lastScore = result.move, result.score
		e.lastMu.Unlock()
		e.running.Store(false)
	}()

	return nil
}

// Stop signals the in-flight search to return as soon as possible and
// reports the best move observed so far. It returns ErrNoActiveSearch if
// nothing was running.
func (e *Engine) Stop() (board.GenericMove, int, error) {
	if !e.running.Load() {
		return board.NullMove, 0, ErrNoActiveSearch
	}
	e.stopFlag.Store(true)

	for e.running.Load() {
		time.Sleep(time.Millisecond)
	}

	e.lastMu.Lock()
	defer e.lastMu.Unlock()
	return e.lastMove, e.lastScore, nil
}

// SearchForDuration runs StartSearch then blocks until d elapses (or the
// search finishes early, e.g. a forced win), stopping it and returning the
// best move found. This is the polling-friendly synchronous shape
// spec.md's "search_for_duration" convenience method describes, layered on
// top of the same StartSearch/Stop primitives external callers use.
func (e *Engine) SearchForDuration(state *board.BoardState, d time.Duration, onInfo func(SearchInfo)) (board.GenericMove, int, error) {
	if err := e.StartSearch(state, SearchLimits{MoveTime: d}, onInfo); err != nil {
		return board.NullMove, 0, err
	}

	deadline := time.Now().Add(d)
	for e.running.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if e.running.Load() {
		return e.Stop()
	}

	e.lastMu.Lock()
	defer e.lastMu.Unlock()
	return e.lastMove, e.lastScore, nil
}

// Running reports whether a search is currently in progress.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// compute runs iterative-deepening negamax on state under limits, returning
// the best move found and its score once the search stops (by limit, by
// Stop(), or by finding a forced win). The transposition table is reset
// after every search, matching the original engine's per-search reset
// rather than persisting entries across unrelated positions.
func (e *Engine) compute(state *board.BoardState, limits SearchLimits, onInfo func(SearchInfo)) (board.GenericMove, int) {
	start := time.Now()

	if winning, ok := GetWinningMove(state, state.CurrentPlayer); ok {
		e.recordSearch(state, 0, MateScore, time.Since(start))
		return winning, MateScore
	}

	if move, ok := e.Book.Probe(state); ok {
		e.recordSearch(state, 0, 0, time.Since(start))
		return move, 0
	}

	defer e.tt.Reset()

	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxPly - 1
	}

	var terminators []SearchTerminator
	terminators = append(terminators, StopFlagTerminator{Flag: &e.stopFlag})
	if limits.MaxNodes > 0 {
		terminators = append(terminators, MaxNodesTerminator{MaxNodes: limits.MaxNodes})
	}
	var timer *time.Timer
	if limits.MoveTime > 0 {
		timer = time.AfterFunc(limits.MoveTime, func() { e.stopFlag.Store(true) })
		defer timer.Stop()
	}
	terminator := OrTerminator{Terminators: terminators}

	best, score := e.searcher.IterativeDeepen(state, state.CurrentPlayer, maxDepth, terminator, func(depth, sc int, mv board.GenericMove) {
		if onInfo != nil {
			onInfo(SearchInfo{
				Depth: depth,
				Score: sc,
				Nodes: e.searcher.Nodes(),
				Time:  time.Since(start),
				Best:  mv,
			})
		}
	})

	log.Printf("[engine] search done: depth budget=%d nodes=%d best=%v score=%d", maxDepth, e.searcher.Nodes(), best, score)
	e.recordSearch(state, e.searcher.Nodes(), score, time.Since(start))
	return best, score
}

// godMatchupName names the pairing the way storage.SearchResult.GodMatchup
// expects, e.g. "Mortal-vs-Hades".
func godMatchupName(state *board.BoardState) string {
	first := gods.Get(state.ActiveGod[board.PlayerOne])
	second := gods.Get(state.ActiveGod[board.PlayerTwo])
	return first.Name + "-vs-" + second.Name
}

// recordSearch persists one completed search's outcome when a Storage is
// attached; it is a no-op otherwise so Storage remains entirely optional.
func (e *Engine) recordSearch(state *board.BoardState, nodes uint64, score int, d time.Duration) {
	if e.Store == nil {
		return
	}
	result := storage.SearchResult{
		GodMatchup: godMatchupName(state),
		Won:        score >= MateScore-WinningScoreBuffer,
		Nodes:      nodes,
		Duration:   d,
	}
	if err := e.Store.RecordSearch(result); err != nil {
		log.Printf("[engine] recording search stats: %v", err)
	}
}
