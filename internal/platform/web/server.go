// Package web serves the campaign and its recorded results over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	sim "github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const (
	defaultLimit   = 10
	maxLimit       = 100
	previewW       = 80
	previewH       = 24
	maxPreviewSide = 400
)

// Handler serves the read-only API.
// Levels come from the built-in campaign plus platformer.LevelDir.
type Handler struct {
	store *storage.Store
	log   *log.Logger
}

// NewHandler creates a handler. A nil store serves empty result lists.
func NewHandler(store *storage.Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: store, log: logger}
}

// RegisterRoutes mounts the API on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scores", h.scores)
		r.Get("/stats", h.stats)
		r.Get("/levels", h.levelList)
		r.Route("/levels/{id}", func(r chi.Router) {
			r.Get("/", h.level)
			r.Get("/results", h.levelResults)
			r.Get("/preview", h.preview)
		})
	})
}

// NewRouter builds the full router with middleware.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Serve listens on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("listening", "address", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type levelInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Theme    string  `json:"theme,omitempty"`
	Next     string  `json:"next,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Enemies  int     `json:"enemies"`
	Coins    int     `json:"coins"`
	Blocks   int     `json:"blocks"`
	ExitType string  `json:"exit,omitempty"`
}

type scoreJSON struct {
	Score     int       `json:"score"`
	Coins     int       `json:"coins"`
	LevelID   string    `json:"level"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"created_at"`
}

type resultJSON struct {
	Score     int       `json:"score"`
	Coins     int       `json:"coins"`
	Lives     int       `json:"lives"`
	Ticks     int       `json:"ticks"`
	CreatedAt time.Time `json:"created_at"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (h *Handler) levelList(w http.ResponseWriter, _ *http.Request) {
	campaign, err := levels.Campaign(platformer.LevelDir())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	list := make([]levelInfo, 0, campaign.Len())
	for _, l := range campaign.Levels() {
		list = append(list, describe(l))
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) level(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := levels.Campaign(platformer.LevelDir())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	l, ok := campaign.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorJSON{Error: "level not found"})
		return
	}
	writeJSON(w, http.StatusOK, describe(l))
}

func (h *Handler) levelResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out := []resultJSON{}
	if h.store != nil {
		results, err := h.store.LevelResults(platformer.GameID, id, limitParam(r))
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err)
			return
		}
		for _, res := range results {
			out = append(out, resultJSON{
				Score:     res.Score,
				Coins:     res.Coins,
				Lives:     res.Lives,
				Ticks:     res.Ticks,
				CreatedAt: res.CreatedAt,
			})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) scores(w http.ResponseWriter, r *http.Request) {
	out := []scoreJSON{}
	if h.store != nil {
		scores, err := h.store.TopScores(platformer.GameID, limitParam(r))
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err)
			return
		}
		for _, s := range scores {
			out = append(out, scoreJSON{
				Score:     s.Score,
				Coins:     s.Coins,
				LevelID:   s.LevelID,
				Won:       s.Won,
				CreatedAt: s.CreatedAt,
			})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, storage.GameStats{GameID: platformer.GameID})
		return
	}
	stats, err := h.store.GetGameStats(platformer.GameID)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// preview renders the opening screen of a level as plain text.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := levels.Campaign(platformer.LevelDir())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	if _, ok := campaign.Get(id); !ok {
		http.NotFound(w, r)
		return
	}

	width := clampParam(r, "w", previewW)
	height := clampParam(r, "h", previewH)
	game := platformer.New()
	game.StartAt(id)
	game.Reset(core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: 60})

	screen := core.NewScreen(width, height)
	game.Render(screen)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(screen.String()))
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	h.log.Error("request failed", "err", err)
	writeJSON(w, status, errorJSON{Error: http.StatusText(status)})
}

// describe summarizes a level for the API.
func describe(l sim.Level) levelInfo {
	info := levelInfo{
		ID:      l.ID,
		Name:    l.Name,
		Theme:   l.Theme,
		Next:    l.NextID(),
		Width:   l.Width,
		Enemies: len(l.Enemies),
		Coins:   len(l.Coins),
		Blocks:  len(l.Blocks),
	}
	switch {
	case l.Exit != nil:
		info.ExitType = l.Exit.Type
	case l.Flagpole != nil:
		info.ExitType = "flagpole"
	case l.Flag != nil:
		info.ExitType = "flag"
	}
	return info
}

func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return min(n, maxLimit)
}

func clampParam(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, maxPreviewSide)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
