// ============================================================================
// hcmd - embeddable console command interpreter
// ============================================================================
//
// Package:     console
// Description: Input history with up/down navigation
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

// History keeps submitted lines. index is -1 while no navigation is active.
type History struct {
	entries []string
	limit   int
	index   int
	current string // input saved when navigation started
}

// NewHistory creates a history keeping at most limit entries; limit 0
// disables it
func NewHistory(limit int) *History {
	return &History{limit: limit, index: -1}
}

// Add appends entry unless it repeats the last one, and ends navigation
func (h *History) Add(entry string) {
	h.index = -1
	h.current = ""

	if h.limit <= 0 || entry == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Prev moves to the previous entry. input is what the user typed so far.
func (h *History) Prev(input string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.index == -1 {
		h.current = input
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	}
	return h.entries[h.index], true
}

// Next moves to the next entry, ending at the saved input
func (h *History) Next() (string, bool) {
	if h.index == -1 {
		return "", false
	}

	if h.index < len(h.entries)-1 {
		h.index++
		return h.entries[h.index], true
	}

	h.index = -1
	return h.current, true
}

// Entries returns the stored entries, oldest first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
