package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(NewHandler(store, log.New(io.Discard))))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	status, body := get(t, srv.URL+"/healthz")
	if status != http.StatusOK || strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("unexpected health response %d %q", status, body)
	}
}

func TestLevels(t *testing.T) {
	srv := newTestServer(t, nil)

	status, body := get(t, srv.URL+"/api/levels")
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	var list []levelInfo
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 3 || list[0].ID != "1-1" || list[0].Next != "1-2" {
		t.Errorf("unexpected levels %+v", list)
	}

	status, body = get(t, srv.URL+"/api/levels/1-2")
	var one levelInfo
	if status != http.StatusOK || json.Unmarshal(body, &one) != nil || one.ID != "1-2" || one.ExitType != "pipe" {
		t.Errorf("unexpected level response %d %s", status, body)
	}

	if status, _ := get(t, srv.URL+"/api/levels/9-9"); status != http.StatusNotFound {
		t.Errorf("unknown level should be 404, got %d", status)
	}
}

func TestScoresAndResults(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, s := range []int{300, 900, 600} {
		store.SaveScore(storage.ScoreEntry{GameID: platformer.GameID, Score: s, LevelID: "1-1"})
	}
	store.SaveLevelResult(storage.LevelResult{GameID: platformer.GameID, LevelID: "1-1", Score: 1500, Lives: 2, Ticks: 2000})

	srv := newTestServer(t, store)

	_, body := get(t, srv.URL+"/api/scores?limit=2")
	var scores []scoreJSON
	if err := json.Unmarshal(body, &scores); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 900 || scores[1].Score != 600 {
		t.Errorf("unexpected scores %+v", scores)
	}

	_, body = get(t, srv.URL+"/api/levels/1-1/results")
	var results []resultJSON
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 1 || results[0].Ticks != 2000 || results[0].Lives != 2 {
		t.Errorf("unexpected results %+v", results)
	}

	_, body = get(t, srv.URL+"/api/stats")
	var stats storage.GameStats
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 900 || stats.LevelsCleared != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestEmptyListsWithoutStore(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, path := range []string{"/api/scores", "/api/levels/1-1/results"} {
		status, body := get(t, srv.URL+path)
		if status != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Errorf("%s: expected an empty list, got %d %s", path, status, body)
		}
	}
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t, nil)

	status, body := get(t, srv.URL+"/api/levels/1-1/preview?w=60&h=16")
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	lines := strings.Split(string(body), "\n")
	if len(lines) < 16 || !strings.Contains(lines[0], "1-1") {
		t.Errorf("unexpected preview:\n%s", body)
	}
	if !strings.ContainsRune(string(body), '@') {
		t.Error("preview should show the player")
	}

	if status, _ := get(t, srv.URL+"/api/levels/nope/preview"); status != http.StatusNotFound {
		t.Errorf("unknown level preview should be 404, got %d", status)
	}
}
