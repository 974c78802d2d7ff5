package vt

// History is the command history of a Shell. It is a ring buffer so that
// recording a command never reallocates once the buffer is full.
type History struct {
	// entries stores the commands in a ring buffer
	entries []string
	// max is the maximum number of commands to keep
	max int
	// head is the index of the oldest entry
	head int
	// tail is the index where the next entry will be inserted
	tail int
	// full indicates whether the ring buffer is at capacity
	full bool
}

// DefaultHistorySize is used when a non-positive size is requested.
const DefaultHistorySize = 500

// NewHistory creates a history holding at most size commands.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		entries: make([]string, size),
		max:     size,
	}
}

// Push records a command. Blank commands and immediate repeats of the newest
// entry are ignored. When the buffer is full the oldest entry is overwritten.
func (h *History) Push(cmd string) {
	if cmd == "" {
		return
	}
	if n := h.Len(); n > 0 && h.At(n-1) == cmd {
		return
	}

	h.entries[h.tail] = cmd
	h.tail = (h.tail + 1) % h.max

	if h.full {
		h.head = (h.head + 1) % h.max
	}
	if h.tail == h.head {
		h.full = true
	}
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	if h.full {
		return h.max
	}
	if h.tail >= h.head {
		return h.tail - h.head
	}
	return h.max - h.head + h.tail
}

// At returns the command at index, 0 being the oldest. It returns "" when
// index is out of bounds.
func (h *History) At(index int) string {
	if index < 0 || index >= h.Len() {
		return ""
	}
	return h.entries[(h.head+index)%h.max]
}

// Entries returns the commands from oldest to newest.
func (h *History) Entries() []string {
	n := h.Len()
	out := make([]string, n)
	for i := range n {
		out[i] = h.entries[(h.head+i)%h.max]
	}
	return out
}

// Clear forgets every command.
func (h *History) Clear() {
	h.head = 0
	h.tail = 0
	h.full = false
	clear(h.entries)
}

// Max returns the capacity of the history.
func (h *History) Max() int {
	return h.max
}

// SetMax changes the capacity, dropping the oldest commands if the history
// no longer fits.
func (h *History) SetMax(size int) {
	if size <= 0 {
		size = DefaultHistorySize
	}
	if size == h.max {
		return
	}

	kept := h.Entries()
	if len(kept) > size {
		kept = kept[len(kept)-size:]
	}

	h.entries = make([]string, size)
	h.max = size
	h.head = 0
	h.tail = copy(h.entries, kept) % size
	h.full = len(kept) == size
}
