// Package book implements a Zobrist-keyed opening placement book: a table
// of pre-analyzed worker-placement and early-game moves an engine can probe
// before falling back to search, grounded on the teacher's Polyglot opening
// book (internal/book/book.go) but carrying this engine's own binary
// format and 32-bit board.GenericMove encoding in place of Polyglot's
// chess-specific 16-bit move words.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/hailam/santorini/internal/board"
)

// Entry is a single book move for one position, with a relative weight
// used for weighted-random selection among ties (the same tie-breaking
// idea as the teacher's BookEntry.Weight).
type Entry struct {
	Move   board.GenericMove
	Weight uint16
}

// Book is an in-memory opening book: Zobrist hash to candidate moves.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// fileMagic identifies a Santorini opening-book file, analogous to
// Polyglot's fixed 16-byte-record format but sized for a 32-bit move.
const fileMagic = 0x53544242 // "STBB"

// Load reads a book file written by Save.
func Load(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads a book from r. Record format, 14 bytes each:
//
//	8 bytes: Zobrist hash (big-endian)
//	4 bytes: GenericMove (big-endian)
//	2 bytes: weight (big-endian)
func LoadReader(r io.Reader) (*Book, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("book: reading magic: %w", err)
	}
	if magic != fileMagic {
		return nil, fmt.Errorf("book: bad magic %x, want %x", magic, fileMagic)
	}

	b := New()
	var record [14]byte
	for {
		_, err := io.ReadFull(r, record[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("book: reading record: %w", err)
		}

		hash := binary.BigEndian.Uint64(record[0:8])
		move := board.GenericMove(binary.BigEndian.Uint32(record[8:12]))
		weight := binary.BigEndian.Uint16(record[12:14])

		b.entries[hash] = append(b.entries[hash], Entry{Move: move, Weight: weight})
	}

	return b, nil
}

// Save writes b to filename in the format LoadReader accepts.
func (b *Book) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := binary.Write(f, binary.BigEndian, uint32(fileMagic)); err != nil {
		return err
	}

	for hash, entries := range b.entries {
		for _, e := range entries {
			var record [14]byte
			binary.BigEndian.PutUint64(record[0:8], hash)
			binary.BigEndian.PutUint32(record[8:12], uint32(e.Move))
			binary.BigEndian.PutUint16(record[12:14], e.Weight)
			if _, err := f.Write(record[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Add records move as a candidate for the position with the given Zobrist
// hash, accumulating weight onto any existing identical entry.
func (b *Book) Add(hash uint64, move board.GenericMove, weight uint16) {
	for i, e := range b.entries[hash] {
		if e.Move == move {
			b.entries[hash][i].Weight += weight
			return
		}
	}
	b.entries[hash] = append(b.entries[hash], Entry{Move: move, Weight: weight})
}

// Probe looks up state's Zobrist hash and returns a move via weighted
// random selection among the book's candidates for that position.
func (b *Book) Probe(state *board.BoardState) (board.GenericMove, bool) {
	if b == nil {
		return board.NullMove, false
	}

	entries, ok := b.entries[state.Hash]
	if !ok || len(entries) == 0 {
		return board.NullMove, false
	}

	totalWeight := uint32(0)
	for _, e := range entries {
		totalWeight += uint32(e.Weight)
	}
	if totalWeight == 0 {
		return entries[0].Move, true
	}

	r := rand.Uint32() % totalWeight
	cumulative := uint32(0)
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}
	return entries[0].Move, true
}

// ProbeAll returns every book move for state, sorted by descending weight.
func (b *Book) ProbeAll(state *board.BoardState) []Entry {
	if b == nil {
		return nil
	}

	entries, ok := b.entries[state.Hash]
	if !ok {
		return nil
	}

	result := make([]Entry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})
	return result
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
