// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - POST /daily/guess       → submit a count guess for today's puzzle
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on guess.
// The puzzle itself is deterministic: the generation seed is the daily salt
// plus the UTC date, so everyone sees the same grid for a given size.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hmfgame/hmf/internal/daily"
	"github.com/hmfgame/hmf/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily puzzle.
type dailySession struct {
	PuzzleID string
	UserID   string
	Date     string
	Size     int
	Result   *game.Result
	Start    time.Time
	Guessed  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", daily.DefaultSalt),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dailySpec builds today's deterministic spec. Same date + salt + size ⇒
// same grid for every player.
func (d *dailyServer) dailySpec(size int) (date string, spec game.Spec) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	spec = game.Spec{
		Size:         size,
		Seed:         daily.Seed(now, d.salt),
		Min:          0,
		Max:          defaultMax,
		AllowOverlap: true,
		Distribution: game.DistEven,
	}
	return date, spec
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewReq is the optional request payload for /daily/new.
type dailyNewReq struct {
	Size int `json:"size"` // 8/10/15/20 by convention; default 10
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	PuzzleID string   `json:"puzzleId"`
	Date     string   `json:"date"`
	Size     int      `json:"size"`
	Rows     []string `json:"rows"`
	Played   bool     `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return the grid.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req dailyNewReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	size := req.Size
	if size == 0 {
		size = defaultSize
	}
	if size < minSize || size > maxSize {
		http.Error(w, `{"error":"size out of range"}`, http.StatusBadRequest)
		return
	}

	date, spec := d.dailySpec(size)

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Size: size, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{
			PuzzleID: sess.PuzzleID,
			Date:     date,
			Size:     sess.Size,
			Rows:     sess.Result.Grid.Strings(),
		})
		return
	}
	d.mu.Unlock()

	res, err := game.Generate(spec)
	if err != nil {
		log.Error().Err(err).Str("date", date).Int("size", size).Msg("generate daily puzzle")
		http.Error(w, `{"error":"generation_failed"}`, http.StatusInternalServerError)
		return
	}

	sess := &dailySession{
		PuzzleID: genID(),
		UserID:   uid,
		Date:     date,
		Size:     size,
		Result:   res,
		Start:    time.Now(),
	}
	d.mu.Lock()
	// A concurrent request may have raced us here; first writer wins.
	if existing, ok := d.sessions[key]; ok {
		sess = existing
	} else {
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		PuzzleID: sess.PuzzleID,
		Date:     date,
		Size:     sess.Size,
		Rows:     sess.Result.Grid.Strings(),
	})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	PuzzleID string `json:"puzzleId"`
	Guess    int    `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Correct   bool   `json:"correct"`
	TrueCount int    `json:"trueCount"`
	State     string `json:"state"` // done | locked
}

// handleGuess applies a count guess to today's daily session.
// - Ensures a matching session exists for the caller.
// - Rejects a second guess (daily is one shot).
// - Persists the result to DB so the date stays locked across restarts.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if p.PuzzleID == "" || p.Guess < 0 {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now().UTC())

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.PuzzleID != p.PuzzleID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if sess.Guessed {
		_ = json.NewEncoder(w).Encode(dailyGuessRes{State: "locked", TrueCount: sess.Result.Count})
		return
	}

	d.mu.Lock()
	sess.Guessed = true
	d.mu.Unlock()

	correct := p.Guess == sess.Result.Count
	elapsed := int(time.Since(sess.Start).Milliseconds())
	if err := d.store.InsertResult(r.Context(), daily.Result{
		UserID:    uid,
		Date:      date,
		Size:      sess.Size,
		Guess:     p.Guess,
		TrueCount: sess.Result.Count,
		Correct:   correct,
		ElapsedMs: elapsed,
	}); err != nil {
		log.Warn().Err(err).Str("user", uid).Str("date", date).Msg("insert daily result")
	}

	_ = json.NewEncoder(w).Encode(dailyGuessRes{
		Correct:   correct,
		TrueCount: sess.Result.Count,
		State:     "done",
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
