package album

import (
	"image"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/samber/lo"
)

func NewHistory(max int) *History {
	return &History{max: max}
}

type History struct {
	mu    sync.Mutex
	max   int
	items []*HistoryLog
}

type HistoryLog struct {
	ID     xid.ID
	Pic    *Picture
	At     time.Time
	filled image.Image
}

func (h *History) push(item *HistoryLog) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, item)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Logs() []*HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*HistoryLog(nil), h.items...)
}

func (h *History) Add(pic *Picture, filled image.Image) *HistoryLog {
	log := &HistoryLog{ID: xid.New(), Pic: pic, At: time.Now(), filled: filled}
	h.push(log)
	return log
}

// Push re-appends an earlier entry, e.g. after redrawing it.
func (h *History) Push(item *HistoryLog) {
	h.push(item)
}

func (h *History) Curr() *HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	log, _ := lo.Last(h.items)
	return log
}

func (h *History) Prev() *HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	log, _ := lo.Nth(h.items, -2)
	return log
}
