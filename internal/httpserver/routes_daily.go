// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's round
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// Deterministic target selection is based on date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/steamguess/go-server/internal/catalog"
	"github.com/steamguess/go-server/internal/daily"
	"github.com/steamguess/go-server/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily round.
type dailySession struct {
	Round *game.Session
	Date  string
	Start time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// todayTarget returns today's date key and the deterministic target.
func (d *dailyServer) todayTarget() (date string, target *catalog.Game) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	idx := daily.GameIndex(now, d.salt, catalog.Size())
	return date, catalog.At(idx)
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID      string `json:"gameId"`
	Date        string `json:"date"`
	Played      bool   `json:"played"`
	MaxAttempts int    `json:"maxAttempts,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	date, target := d.todayTarget()
	if target == nil {
		http.Error(w, `{"error":"no_target"}`, http.StatusInternalServerError)
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: "", Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: sess.Round.ID, Date: date, Played: false, MaxAttempts: sess.Round.MaxAttempts})
		return
	}
	sess := &dailySession{
		Round: game.New(target, d.srv.cfg.MaxAttempts),
		Date:  date,
		Start: time.Now(),
	}
	d.sessions[key] = sess
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: sess.Round.ID, Date: date, Played: false, MaxAttempts: sess.Round.MaxAttempts})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Name   string `json:"name"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Result  game.Result `json:"result"`
	State   string      `json:"state"` // playing | won | lost | locked
	Guesses int         `json:"guesses"`
}

// handleGuess validates and applies a guess to today's daily session.
// - Ensures valid GameID and a catalog-resolvable name.
// - Rejects if no session exists or the session is finished.
// - Persists the result to DB when the round ends in a win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if p.GameID == "" || p.Name == "" {
		http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
		return
	}

	date, _ := d.todayTarget()
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.Round.ID != p.GameID {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}

	guessed, ok := catalog.ByName(p.Name)
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusBadRequest)
		return
	}

	d.mu.Lock()
	if sess.Round.Finished {
		n := len(sess.Round.Results)
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyGuessRes{State: "locked", Guesses: n})
		return
	}
	res, state, err := sess.Round.ApplyGuess(d.srv.eng, guessed)
	guesses := len(sess.Round.Results)
	d.mu.Unlock()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	if state == "won" {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, AppID: sess.Round.Target.AppID, Guesses: guesses, ElapsedMs: elapsed,
		})
	}
	_ = json.NewEncoder(w).Encode(dailyGuessRes{Result: res, State: state, Guesses: guesses})
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
		date, _ = d.todayTarget()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
