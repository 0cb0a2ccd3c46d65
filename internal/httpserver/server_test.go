package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hmfgame/hmf/internal/store"
)

// newTestServer wires a Server against an in-memory SQLite database with the
// real schema applied.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A :memory: DB exists per connection; keep a single one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../sql/001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return New(store.NewMemoryStore(), db)
}

// doJSON posts body to path with a stable anon cookie and decodes the reply.
func doJSON(t *testing.T, srv *Server, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.AddCookie(&http.Cookie{Name: anonCookieName, Value: "test-anon"})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNewGuessRevealFlow(t *testing.T) {
	srv := newTestServer(t)

	var created newPuzzleRes
	exact := 1
	w := doJSON(t, srv, http.MethodPost, "/puzzle/new", newPuzzleReq{
		Size: 8, Exact: &exact, Seed: "flow-test",
	}, &created)
	if w.Code != http.StatusOK {
		t.Fatalf("new: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if created.PuzzleID == "" || len(created.Rows) != 8 {
		t.Fatalf("unexpected new response: %+v", created)
	}
	if created.Seed != "flow-test" {
		t.Fatalf("expected echoed seed, got %q", created.Seed)
	}

	// Reveal before guessing is refused.
	w = doJSON(t, srv, http.MethodGet, "/puzzle/"+created.PuzzleID+"/reveal", nil, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("reveal before guess: expected 403, got %d", w.Code)
	}

	var guessed guessRes
	w = doJSON(t, srv, http.MethodPost, "/puzzle/guess", guessReq{PuzzleID: created.PuzzleID, Guess: 1}, &guessed)
	if w.Code != http.StatusOK {
		t.Fatalf("guess: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if guessed.TrueCount != 1 || !guessed.Correct {
		t.Fatalf("expected correct guess of 1, got %+v", guessed)
	}

	var reveal revealRes
	w = doJSON(t, srv, http.MethodGet, "/puzzle/"+created.PuzzleID+"/reveal", nil, &reveal)
	if w.Code != http.StatusOK {
		t.Fatalf("reveal: expected 200, got %d", w.Code)
	}
	if len(reveal.Matches) != 1 || reveal.TrueCount != 1 {
		t.Fatalf("unexpected reveal: %+v", reveal)
	}
}

func TestNewPuzzleDeterministicSeed(t *testing.T) {
	srv := newTestServer(t)
	exact := 2
	req := newPuzzleReq{Size: 10, Exact: &exact, Seed: "same-seed"}

	var a, b newPuzzleRes
	doJSON(t, srv, http.MethodPost, "/puzzle/new", req, &a)
	doJSON(t, srv, http.MethodPost, "/puzzle/new", req, &b)

	if len(a.Rows) == 0 || len(a.Rows) != len(b.Rows) {
		t.Fatalf("bad rows: %d vs %d", len(a.Rows), len(b.Rows))
	}
	for i := range a.Rows {
		if a.Rows[i] != b.Rows[i] {
			t.Fatalf("row %d differs for identical seed: %q vs %q", i, a.Rows[i], b.Rows[i])
		}
	}
}

func TestNewPuzzleCapacityRejected(t *testing.T) {
	srv := newTestServer(t)
	exact := 20
	w := doJSON(t, srv, http.MethodPost, "/puzzle/new", newPuzzleReq{
		Size: 8, Exact: &exact, NoOverlap: true, Seed: "too-many",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGuessUnknownPuzzle(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodPost, "/puzzle/guess", guessReq{PuzzleID: "nope", Guess: 1}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDailyFlowOncePerDay(t *testing.T) {
	srv := newTestServer(t)

	var first dailyNewRes
	w := doJSON(t, srv, http.MethodPost, "/daily/new", dailyNewReq{Size: 8}, &first)
	if w.Code != http.StatusOK {
		t.Fatalf("daily new: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if first.Played || first.PuzzleID == "" || len(first.Rows) != 8 {
		t.Fatalf("unexpected daily new response: %+v", first)
	}

	// Re-requesting before guessing reuses the session.
	var again dailyNewRes
	doJSON(t, srv, http.MethodPost, "/daily/new", dailyNewReq{Size: 8}, &again)
	if again.PuzzleID != first.PuzzleID {
		t.Fatalf("expected reused session, got %q vs %q", again.PuzzleID, first.PuzzleID)
	}

	var guessed dailyGuessRes
	w = doJSON(t, srv, http.MethodPost, "/daily/guess", dailyGuessReq{PuzzleID: first.PuzzleID, Guess: 999}, &guessed)
	if w.Code != http.StatusOK {
		t.Fatalf("daily guess: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if guessed.State != "done" || guessed.Correct {
		t.Fatalf("expected incorrect done guess, got %+v", guessed)
	}

	// The date is now locked for this user.
	var locked dailyNewRes
	doJSON(t, srv, http.MethodPost, "/daily/new", dailyNewReq{Size: 8}, &locked)
	if !locked.Played {
		t.Fatalf("expected played=true after guessing, got %+v", locked)
	}

	var lb lbRes
	w = doJSON(t, srv, http.MethodGet, "/daily/leaderboard", nil, &lb)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: expected 200, got %d", w.Code)
	}
	if len(lb.Top) != 1 || lb.Top[0].UserID != "test-anon" {
		t.Fatalf("unexpected leaderboard: %+v", lb)
	}
}

func TestSignupLoginAndStats(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/auth/signup",
		map[string]string{"Username": "player_one", "Password": "hunter2hunter2"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate username rejected.
	w = doJSON(t, srv, http.MethodPost, "/auth/signup",
		map[string]string{"Username": "player_one", "Password": "hunter2hunter2"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", w.Code)
	}

	var login map[string]any
	w = doJSON(t, srv, http.MethodPost, "/auth/login",
		map[string]string{"Username": "player_one", "Password": "hunter2hunter2"}, &login)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Stats require auth.
	w = doJSON(t, srv, http.MethodGet, "/stats/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stats without token: expected 401, got %d", w.Code)
	}
}
