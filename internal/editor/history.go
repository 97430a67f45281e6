package editor

// History is an append-only, branch-free log of editor snapshots plus a
// cursor. Pushing from a non-tip position discards every state after the
// cursor: classic linear undo with no redo-branch preservation.
//
// History is only ever mutated through Push and Reset; stored snapshots are
// never edited in place.
type History struct {
	states []State
	index  int
}

// NewHistory creates a history seeded with a single baseline snapshot.
func NewHistory(base State) *History {
	return &History{states: []State{base}}
}

// Current returns the snapshot under the cursor.
func (h *History) Current() State {
	return h.states[h.index]
}

// Push truncates any redo entries beyond the cursor, appends s and moves
// the cursor to the new tip.
func (h *History) Push(s State) {
	h.states = append(h.states[:h.index+1], s)
	h.index = len(h.states) - 1
}

// Undo moves the cursor back one snapshot. It reports false, leaving the
// cursor untouched, when already at the oldest state.
func (h *History) Undo() (State, bool) {
	if h.index == 0 {
		return h.Current(), false
	}
	h.index--
	return h.Current(), true
}

// Redo moves the cursor forward one snapshot. It reports false when the
// cursor is already at the tip.
func (h *History) Redo() (State, bool) {
	if h.index >= len(h.states)-1 {
		return h.Current(), false
	}
	h.index++
	return h.Current(), true
}

// Reset pushes base as a brand-new entry. Prior states stay reachable
// through Undo; Reset is an edit, not a wipe.
func (h *History) Reset(base State) {
	h.Push(base)
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.states) }

// Index returns the cursor position.
func (h *History) Index() int { return h.index }

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool { return h.index < len(h.states)-1 }
