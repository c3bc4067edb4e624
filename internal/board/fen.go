package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StartFEN is the FEN for the empty starting position, both players on Mortal.
const StartFEN = "0000000000000000000000000/1/Mortal:/Mortal:"

var godSectionPattern = regexp.MustCompile(`^([#-]?)([A-Za-z]+):([A-E][1-5](?:,[A-E][1-5])*)?(\[(\d+)\])?$`)

// godNameRegistry maps a god's FEN name to its GodID. internal/gods
// populates this at init time (RegisterGodName), keeping this package
// ignorant of any specific god's move-generation logic while still able to
// parse and print FEN strings that name one.
var godNameRegistry = map[string]GodID{}
var godIDToName = map[GodID]string{}

// RegisterGodName associates a god's FEN/display name with its GodID. Gods
// register themselves from their package's init().
func RegisterGodName(name string, id GodID) {
	godNameRegistry[name] = id
	godIDToName[id] = name
}

// GodNameOf returns the registered display name for id, or "?" if unregistered.
func GodNameOf(id GodID) string {
	if name, ok := godIDToName[id]; ok {
		return name
	}
	return "?"
}

// ParseFEN parses a Santorini position string of the form:
//
//	<25 height digits>/<1|2 to move>/<god-section-1>/<god-section-2>
//
// Each god section is "[#|-]GodName:[workerSquares][[godData]]", e.g.
// "Mortal:A1,B1[0]" or, before either worker is placed, "#Mortal:" (leading
// "#" marks that player as having already won; "-" is accepted and ignored,
// kept only for compatibility with sections written by older tooling).
func ParseFEN(fen string) (*BoardState, error) {
	parts := strings.Split(fen, "/")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid FEN: need 4 sections separated by '/', got %d", len(parts))
	}

	bs := &BoardState{}

	if err := parseHeights(bs, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "1":
		bs.CurrentPlayer = PlayerOne
	case "2":
		bs.CurrentPlayer = PlayerTwo
	default:
		return nil, fmt.Errorf("invalid side to move: %q", parts[1])
	}

	for i, player := range [2]Player{PlayerOne, PlayerTwo} {
		if err := parseGodSection(bs, player, parts[2+i]); err != nil {
			return nil, err
		}
	}

	bs.Hash = bs.recomputeHash()
	return bs, nil
}

// parseHeights requires exactly NumSquares digit characters (0-4) once
// whitespace is removed; any other character is a parse error.
func parseHeights(bs *BoardState, heights string) error {
	heights = strings.Join(strings.Fields(heights), "")
	if len(heights) != NumSquares {
		return fmt.Errorf("invalid height section: need %d digits, got %d", NumSquares, len(heights))
	}
	for i := 0; i < NumSquares; i++ {
		c := heights[i]
		if c < '0' || c > '4' {
			return fmt.Errorf("invalid height digit %q at square %d", c, i)
		}
		level := int(c - '0')
		sq := Square(i)
		for l := 0; l < level; l++ {
			bs.Heights[l] |= AsMask(sq)
		}
	}
	return nil
}

func parseGodSection(bs *BoardState, player Player, section string) error {
	m := godSectionPattern.FindStringSubmatch(section)
	if m == nil {
		return fmt.Errorf("invalid god section for player %s: %q", player, section)
	}
	marker, name, workers, _, dataStr := m[1], m[2], m[3], m[4], m[5]

	id, ok := godNameRegistry[name]
	if !ok {
		return fmt.Errorf("unknown god %q", name)
	}
	bs.ActiveGod[player] = id

	if marker == "#" {
		bs.HasWinner = true
		bs.Winner = player
	}

	if workers != "" {
		for _, sqStr := range strings.Split(workers, ",") {
			sq, err := ParseSquare(strings.ToUpper(sqStr))
			if err != nil {
				return fmt.Errorf("invalid worker square %q: %w", sqStr, err)
			}
			bs.Workers[player] |= AsMask(sq)
		}
	}

	if dataStr != "" {
		data, err := strconv.ParseUint(dataStr, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid god data %q: %w", dataStr, err)
		}
		bs.GodData[player] = uint32(data)
	}

	return nil
}

// ToFEN renders bs back to the format ParseFEN accepts.
func (bs *BoardState) ToFEN() string {
	var sb strings.Builder

	for sq := Square(0); sq < NumSquares; sq++ {
		sb.WriteByte(byte('0' + bs.GetHeight(sq)))
	}
	sb.WriteByte('/')

	if bs.CurrentPlayer == PlayerOne {
		sb.WriteByte('1')
	} else {
		sb.WriteByte('2')
	}

	for _, player := range [2]Player{PlayerOne, PlayerTwo} {
		sb.WriteByte('/')
		sb.WriteString(godSectionFEN(bs, player))
	}

	return sb.String()
}

func godSectionFEN(bs *BoardState, player Player) string {
	var sb strings.Builder
	if bs.HasWinner && bs.Winner == player {
		sb.WriteByte('#')
	}
	sb.WriteString(GodNameOf(bs.ActiveGod[player]))
	sb.WriteByte(':')

	first := true
	for m := bs.Workers[player]; m != 0; {
		sq, rest := m.Pop()
		if !first {
			sb.WriteByte(',')
		}
		sb.WriteString(sq.String())
		first = false
		m = rest
	}

	if bs.GodData[player] != 0 {
		sb.WriteByte('[')
		sb.WriteString(strconv.FormatUint(uint64(bs.GodData[player]), 10))
		sb.WriteByte(']')
	}

	return sb.String()
}
