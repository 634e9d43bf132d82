package history

import (
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

type Request struct {
	UserID       string
	Limit        int
	OccurredFrom time.Time
	OccurredTo   time.Time
}

type Response struct {
	Events []companion.DomainEvent `json:"events"`
	// LatestStats is rebuilt from the newest stats_after payload in the window.
	LatestStats *companion.Stats `json:"latest_stats,omitempty"`
}
