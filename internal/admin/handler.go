package admin

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paddlebook/paddlebook/internal/core"
)

// Counter is the one method the stats endpoint needs from each
// content service.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	db        *core.Database
	redis     *core.Redis
	users     Counter
	players   Counter
	paddles   Counter
	comments  Counter
	startedAt time.Time
}

func NewHandler(
	db *core.Database,
	redis *core.Redis,
	users, players, paddles, comments Counter,
) *Handler {
	return &Handler{
		db:        db,
		redis:     redis,
		users:     users,
		players:   players,
		paddles:   paddles,
		comments:  comments,
		startedAt: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireAuth func(http.Handler) http.Handler,
	requireAdmin func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(requireAdmin)

		r.Get("/stats", h.Stats)
	})
}

type statsResponse struct {
	Uptime  string         `json:"uptime"`
	Content contentStats   `json:"content"`
	Runtime runtimeStats   `json:"runtime"`
	Pools   poolStats      `json:"pools"`
	Errors  map[string]any `json:"errors,omitempty"`
}

type contentStats struct {
	Users    int `json:"users"`
	Players  int `json:"players"`
	Paddles  int `json:"paddles"`
	Comments int `json:"comments"`
}

type runtimeStats struct {
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	NumGC      uint32 `json:"numGc"`
	GoVersion  string `json:"goVersion"`
}

type poolStats struct {
	DBOpen       int    `json:"dbOpen"`
	DBInUse      int    `json:"dbInUse"`
	DBIdle       int    `json:"dbIdle"`
	RedisTotal   uint32 `json:"redisTotal"`
	RedisIdle    uint32 `json:"redisIdle"`
	RedisTimeout uint32 `json:"redisTimeouts"`
}

// Stats reports content counts plus process and pool health for the
// moderation dashboard. Count failures are reported per section
// instead of failing the whole response.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts := contentStats{}
	countErrs := map[string]any{}

	for _, c := range []struct {
		name    string
		counter Counter
		dest    *int
	}{
		{"users", h.users, &counts.Users},
		{"players", h.players, &counts.Players},
		{"paddles", h.paddles, &counts.Paddles},
		{"comments", h.comments, &counts.Comments},
	} {
		n, err := c.counter.Count(ctx)
		if err != nil {
			countErrs[c.name] = err.Error()
			continue
		}
		*c.dest = n
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	dbStats := h.db.Stats()
	redisStats := h.redis.PoolStats()

	resp := statsResponse{
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
		Content: counts,
		Runtime: runtimeStats{
			Goroutines: runtime.NumGoroutine(),
			HeapAlloc:  mem.HeapAlloc,
			NumGC:      mem.NumGC,
			GoVersion:  runtime.Version(),
		},
		Pools: poolStats{
			DBOpen:       dbStats.OpenConnections,
			DBInUse:      dbStats.InUse,
			DBIdle:       dbStats.Idle,
			RedisTotal:   redisStats.TotalConns,
			RedisIdle:    redisStats.IdleConns,
			RedisTimeout: redisStats.Timeouts,
		},
	}
	if len(countErrs) > 0 {
		resp.Errors = countErrs
	}

	core.OK(w, resp)
}
