// Package cards is the card source: a SQLite notes store, conversion of notes
// into layout cards, and a watcher that reports external database changes.
package cards

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/cardview/internal/layout"
)

// SortBy orders cards within the pinned and unpinned groups.
type SortBy string

const (
	SortUpdated SortBy = "updated"
	SortCreated SortBy = "created"
	SortTitle   SortBy = "title"
)

// Valid reports whether s is a known sort key.
func (s SortBy) Valid() bool {
	switch s {
	case SortUpdated, SortCreated, SortTitle:
		return true
	}
	return false
}

// Sort orders notes in place: pinned first, then by key. Unknown keys sort by
// updated time. Ties break on ID so the order is stable across reloads.
func Sort(notes []Note, by SortBy) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		var c int
		switch by {
		case SortTitle:
			c = cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case SortCreated:
			c = b.CreatedAt.Compare(a.CreatedAt)
		default:
			c = b.UpdatedAt.Compare(a.UpdatedAt)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// ToCard converts a note to a layout card. ContentLength is the display
// width of the content, so wide runes count double.
func ToCard(n Note) layout.Card {
	return layout.Card{
		ID:            n.ID,
		Title:         n.Title,
		Pinned:        n.Pinned,
		ContentLength: runewidth.StringWidth(n.Content),
	}
}

// FromNotes converts notes to cards, preserving order.
func FromNotes(notes []Note) []layout.Card {
	out := make([]layout.Card, len(notes))
	for i, n := range notes {
		out[i] = ToCard(n)
	}
	return out
}

// Fingerprint hashes the parts of a card collection that affect layout and
// rendering. Equal fingerprints mean a reload changed nothing visible.
func Fingerprint(cards []layout.Card) uint64 {
	d := xxhash.New()
	for _, c := range cards {
		_, _ = d.WriteString(c.ID)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(c.Title)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(strconv.Itoa(c.ContentLength))
		if c.Pinned {
			_, _ = d.WriteString("p")
		}
		_, _ = d.WriteString("\x1e")
	}
	return d.Sum64()
}
