package palette

import (
	"sync"

	"github.com/dshills/keybinds/internal/command"
)

// History remembers recently executed command IDs, most recent first. Feed
// it from a dispatcher's execute callback to offer a "recent" section.
type History struct {
	mu    sync.Mutex
	ids   []string
	limit int
}

// NewHistory creates a history holding at most limit IDs.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 20
	}
	return &History{ids: make([]string, 0, limit), limit: limit}
}

// Record moves id to the front.
func (h *History) Record(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, existing := range h.ids {
		if existing == id {
			h.ids = append(h.ids[:i], h.ids[i+1:]...)
			break
		}
	}
	h.ids = append([]string{id}, h.ids...)
	if len(h.ids) > h.limit {
		h.ids = h.ids[:h.limit]
	}
}

// Recent returns up to n IDs, most recent first. n <= 0 returns all.
func (h *History) Recent(n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.ids) {
		n = len(h.ids)
	}
	return append([]string(nil), h.ids[:n]...)
}

// Commands resolves the recent IDs against cmds, skipping IDs that no
// longer exist or are hidden.
func (h *History) Commands(cmds []*command.Command, n int) []*command.Command {
	var out []*command.Command
	for _, id := range h.Recent(0) {
		cmd := command.Find(cmds, id)
		if cmd == nil || cmd.Hidden {
			continue
		}
		out = append(out, cmd)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
