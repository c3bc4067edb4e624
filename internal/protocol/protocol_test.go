package protocol

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hailam/santorini/internal/board"
	"github.com/hailam/santorini/internal/engine"
)

func newTestSession(t *testing.T) (*Session, *strings.Builder) {
	t.Helper()
	eng, err := engine.NewEngine("")
	if err != nil {
		t.Fatalf("engine.NewEngine: %v", err)
	}
	var out strings.Builder
	return NewSession(eng, &out), &out
}

// readMessages splits out's buffered lines into raw JSON message maps, so
// tests can check a "type" discriminant without a full struct per case.
func readMessages(t *testing.T, out *strings.Builder) []map[string]any {
	t.Helper()
	var messages []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %q is not valid JSON: %v", line, err)
		}
		messages = append(messages, m)
	}
	return messages
}

func TestExecuteLinePing(t *testing.T) {
	s, out := newTestSession(t)
	if quit := s.ExecuteLine("ping"); quit {
		t.Fatalf("ping should not request quit")
	}
	msgs := readMessages(t, out)
	if len(msgs) != 1 || msgs[0]["type"] != "pong" {
		t.Fatalf("expected a single pong message, got %v", msgs)
	}
}

func TestExecuteLineQuitSignalsStop(t *testing.T) {
	s, _ := newTestSession(t)
	if quit := s.ExecuteLine("quit"); !quit {
		t.Fatalf("expected quit to report true")
	}
}

func TestExecuteLineUnknownCommandEmitsParseError(t *testing.T) {
	s, out := newTestSession(t)
	s.ExecuteLine("frobnicate")

	msgs := readMessages(t, out)
	if len(msgs) != 1 || msgs[0]["type"] != "error" {
		t.Fatalf("expected a single error message, got %v", msgs)
	}
	if msgs[0]["kind"] != KindParseError.String() {
		t.Errorf("expected kind %q, got %v", KindParseError.String(), msgs[0]["kind"])
	}
}

func TestExecuteLineSetPositionWithBadFENEmitsParseError(t *testing.T) {
	s, out := newTestSession(t)
	s.ExecuteLine("set_position not-a-fen")

	msgs := readMessages(t, out)
	if len(msgs) != 1 || msgs[0]["type"] != "error" {
		t.Fatalf("expected a single error message, got %v", msgs)
	}
	if msgs[0]["kind"] != KindParseError.String() {
		t.Errorf("expected kind %q, got %v", KindParseError.String(), msgs[0]["kind"])
	}
}

func TestExecuteLineSetPositionWithNoArgumentEmitsParseError(t *testing.T) {
	s, out := newTestSession(t)
	s.ExecuteLine("set_position")

	msgs := readMessages(t, out)
	if len(msgs) != 1 || msgs[0]["type"] != "error" {
		t.Fatalf("expected a single error message, got %v", msgs)
	}
	if msgs[0]["kind"] != KindParseError.String() {
		t.Errorf("expected kind %q, got %v", KindParseError.String(), msgs[0]["kind"])
	}
}

func TestExecuteLineStopWithNoActiveSearchEmitsNoActiveSearch(t *testing.T) {
	s, out := newTestSession(t)
	s.ExecuteLine("stop")

	msgs := readMessages(t, out)
	if len(msgs) != 1 || msgs[0]["type"] != "error" {
		t.Fatalf("expected a single error message, got %v", msgs)
	}
	if msgs[0]["kind"] != KindNoActiveSearch.String() {
		t.Errorf("expected kind %q, got %v", KindNoActiveSearch.String(), msgs[0]["kind"])
	}
}

func TestExecuteLineNextMovesListsSuccessors(t *testing.T) {
	s, out := newTestSession(t)
	startFEN := "0000000000000000000000000/1/Mortal:A1,B1/Mortal:E5,D5"

	// next_moves is pure move generation, independent of any prior
	// set_position call, so it is exercised standalone here to avoid
	// racing the background goroutine a set_position search spawns.
	s.ExecuteLine("next_moves " + startFEN)

	msgs := readMessages(t, out)
	if len(msgs) != 1 || msgs[0]["type"] != "next_moves" {
		t.Fatalf("expected a single next_moves message, got %v", msgs)
	}
	moves, ok := msgs[0]["moves"].([]any)
	if !ok || len(moves) == 0 {
		t.Fatalf("expected at least one successor move, got %v", msgs[0]["moves"])
	}
}

func TestExecuteLineSetPositionWhileBusyEmitsEngineBusy(t *testing.T) {
	s, out := newTestSession(t)

	state, err := board.ParseFEN("0000000000000000000000000/1/Mortal:A1,B1/Mortal:E5,D5")
	if err != nil {
		t.Fatalf("board.ParseFEN: %v", err)
	}
	// Start a search directly through the engine (no onInfo callback, so
	// it never writes to out) to put it in the busy state without racing
	// the session's own background finalize goroutine.
	if err := s.eng.StartSearch(state, engine.SearchLimits{MoveTime: time.Second}, nil); err != nil {
		t.Fatalf("StartSearch: %v", err)
	}
	defer s.eng.Stop()

	s.ExecuteLine("set_position 0000000000000000000000000/1/Mortal:A1,B1/Mortal:E5,D5")

	msgs := readMessages(t, out)
	found := false
	for _, m := range msgs {
		if m["type"] == "error" && m["kind"] == KindEngineBusy.String() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an engine_busy error message, got %v", msgs)
	}
}

func TestKindStringsAreStable(t *testing.T) {
	cases := map[Kind]string{
		KindParseError:      "parse_error",
		KindInvalidPosition: "invalid_position",
		KindEngineBusy:      "engine_busy",
		KindNoActiveSearch:  "no_active_search",
		KindInternal:        "internal_error",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
