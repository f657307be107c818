package snapshot

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pable/rivalstats/internal/model"
)

const minimalSnapshot = `{
  "squadSummary": {"totalGames": 10, "totalWins": 6, "winRate": 60.0, "totalMvps": 1, "totalSvps": 2, "playerCount": 2},
  "players": [
    {"name": "Kestrel", "totalGames": 6, "totalWins": 4, "winRate": 66.7, "primaryRole": "duelist", "secondaryRole": null,
     "roleScores": {"vanguard": 0, "duelist": 55, "strategist": 0}, "topHeroes": [], "heroBreakdown": {}},
    {"name": "Moth", "totalGames": 4, "totalWins": 2, "winRate": 50.0, "primaryRole": null, "secondaryRole": null,
     "roleScores": {}, "topHeroes": [], "heroBreakdown": {}}
  ],
  "compositions": [],
  "heroStats": [
    {"name": "Jeff the Land Shark", "role": "strategist", "totalGames": 3, "totalWins": 2, "winRate": 66.7, "players": []}
  ],
  "roleCoverage": {"vanguard": {"count": 0, "players": []}, "duelist": {"count": 1, "players": ["Kestrel"]}, "strategist": {"count": 0, "players": []}},
  "leaderboard": {"winRate": [], "kda": [], "damage": [], "healing": [], "blocked": []}
}`

type stubSource struct {
	body  string
	err   error
	calls int
}

func (s *stubSource) Fetch(context.Context) (io.ReadCloser, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s *stubSource) String() string { return "stub" }

func TestStoreLoadSuccess(t *testing.T) {
	store := NewStore(&stubSource{body: minimalSnapshot}, zerolog.Nop())

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Players) != 2 {
		t.Errorf("expected 2 players, got %d", len(snap.Players))
	}
	cur, ok := store.Current()
	if !ok || cur != snap {
		t.Error("Current should return the loaded snapshot")
	}
	if store.Err() != nil {
		t.Errorf("expected no error, got %v", store.Err())
	}
}

func TestStoreLoadFailureKeepsNoData(t *testing.T) {
	cause := errors.New("connection refused")
	store := NewStore(&stubSource{err: cause}, zerolog.Nop())

	_, err := store.Load(context.Background())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("LoadError should unwrap to the cause")
	}
	if loadErr.Reason != "connection refused" {
		t.Errorf("unexpected reason %q", loadErr.Reason)
	}
	if _, ok := store.Current(); ok {
		t.Error("expected no snapshot after failed load")
	}
	if store.Err() == nil {
		t.Error("expected Err() to report the failure")
	}
}

func TestStoreLoadBadJSON(t *testing.T) {
	store := NewStore(&stubSource{body: `{"players": [`}, zerolog.Nop())
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
	if _, ok := store.Current(); ok {
		t.Error("expected no snapshot after decode failure")
	}
}

func TestStoreLoadRejectsInvalidAssignmentRole(t *testing.T) {
	body := strings.Replace(minimalSnapshot, `"compositions": []`,
		`"compositions": [{"score": 1, "assignments": [{"player": "Moth", "hero": "Groot", "role": "tank"}]}]`, 1)
	store := NewStore(&stubSource{body: body}, zerolog.Nop())

	_, err := store.Load(context.Background())
	var roleErr *model.InvalidRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("expected InvalidRoleError in chain, got %v", err)
	}
}

func TestStoreLoadsOnce(t *testing.T) {
	src := &stubSource{body: minimalSnapshot}
	store := NewStore(src, zerolog.Nop())

	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("expected ErrAlreadyLoaded, got %v", err)
	}
	if src.calls != 1 {
		t.Errorf("expected one fetch, got %d", src.calls)
	}
}

func TestStoreReloadClearsError(t *testing.T) {
	src := &stubSource{err: errors.New("timeout")}
	store := NewStore(src, zerolog.Nop())
	store.Load(context.Background())

	src.err = nil
	src.body = minimalSnapshot
	if _, err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if store.Err() != nil {
		t.Error("expected error cleared after successful reload")
	}
	if _, ok := store.Current(); !ok {
		t.Error("expected snapshot after reload")
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte(minimalSnapshot), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(NewSource(path, time.Second), zerolog.Nop())
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	missing := NewStore(NewSource(filepath.Join(t.TempDir(), "nope.json"), time.Second), zerolog.Nop())
	if _, err := missing.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/stats.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, minimalSnapshot)
	}))
	defer ts.Close()

	src := NewSource(ts.URL+"/data/stats.json", time.Second)
	if _, ok := src.(*HTTPSource); !ok {
		t.Fatalf("expected HTTPSource, got %T", src)
	}
	store := NewStore(src, zerolog.Nop())
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	bad := NewStore(NewSource(ts.URL+"/missing.json", time.Second), zerolog.Nop())
	_, err := bad.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("expected HTTP 404 error, got %v", err)
	}
}

func TestHTTPSourceSendsToken(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		io.WriteString(w, minimalSnapshot)
	}))
	defer ts.Close()

	src := &HTTPSource{URL: ts.URL, Token: "s3cret"}
	rc, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	rc.Close()
	if got != "Bearer s3cret" {
		t.Errorf("expected bearer token, got %q", got)
	}
}

func TestFindPlayerAndHero(t *testing.T) {
	store := NewStore(&stubSource{body: minimalSnapshot}, zerolog.Nop())
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p, ok := FindPlayer(snap, "kestrel"); !ok || p.Name != "Kestrel" {
		t.Errorf("expected case-insensitive match for kestrel, got %v %v", p, ok)
	}
	if p, ok := FindPlayer(snap, "Kestrl"); !ok || p.Name != "Kestrel" {
		t.Errorf("expected fuzzy match for Kestrl, got %v %v", p, ok)
	}
	if _, ok := FindPlayer(snap, "Zzz"); ok {
		t.Error("expected no match for Zzz")
	}
	if h, ok := FindHero(snap, "jeff the land shrak"); !ok || h.Name != "Jeff the Land Shark" {
		t.Errorf("expected fuzzy hero match, got %v %v", h, ok)
	}
	if _, ok := FindHero(snap, ""); ok {
		t.Error("empty query should not match")
	}
}

func TestFindPlayerNonASCIIUsesRuneLength(t *testing.T) {
	snap := &model.Snapshot{Players: []model.Player{{Name: "Ääää"}}}

	if p, ok := FindPlayer(snap, "äääb"); !ok || p.Name != "Ääää" {
		t.Errorf("expected one-rune typo to match, got %v %v", p, ok)
	}
	// Two of four runes differ: similarity 0.5, below the threshold.
	if p, ok := FindPlayer(snap, "ääxy"); ok {
		t.Errorf("expected no match for ääxy, got %v", p.Name)
	}
}
