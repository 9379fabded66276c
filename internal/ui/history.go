package ui

// History is the stack of view names to return to with Back.
// It holds names, not views; the manager resolves them through its registry.
type History struct {
	names []string
}

// Push adds a name to the top of the stack.
func (h *History) Push(name string) {
	h.names = append(h.names, name)
}

// Pop removes and returns the top name.
// Returns false if the stack is empty.
func (h *History) Pop() (string, bool) {
	if len(h.names) == 0 {
		return "", false
	}
	top := h.names[len(h.names)-1]
	h.names = h.names[:len(h.names)-1]
	return top, true
}

// Peek returns the top name without removing it.
func (h *History) Peek() (string, bool) {
	if len(h.names) == 0 {
		return "", false
	}
	return h.names[len(h.names)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.names)
}

// Contains reports whether name is anywhere in the stack.
func (h *History) Contains(name string) bool {
	for _, n := range h.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the entries, oldest first.
func (h *History) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// TruncateAt removes name and every entry above it, returning the removed
// entries. It is a no-op when name is not in the stack.
func (h *History) TruncateAt(name string) []string {
	for i, n := range h.names {
		if n == name {
			removed := append([]string(nil), h.names[i:]...)
			h.names = h.names[:i]
			return removed
		}
	}
	return nil
}
