// internal/game/session.go
//
// Round state for a single guessing session.
// Responsibilities:
//   - Create new rounds with a target and an attempt budget.
//   - Apply resolved guesses through the engine and record results.
//   - Track state transitions: playing → won/lost.
//
// The engine itself stays stateless; all mutation lives here.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/steamguess/go-server/internal/catalog"
)

const defaultMaxAttempts = 10

// Session holds the state of one round.
type Session struct {
	ID          string
	Target      *catalog.Game
	MaxAttempts int
	Results     []Result
	Finished    bool
	Won         bool
}

// New constructs a round for the given target. maxAttempts <= 0 selects the
// default budget.
func New(target *catalog.Game, maxAttempts int) *Session {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Session{
		ID:          randomID(),
		Target:      target,
		MaxAttempts: maxAttempts,
	}
}

// ApplyGuess compares a resolved catalog entry against the target, records
// the result, and advances the round state.
// Returns the result, the new state string ("playing"/"won"/"lost"), or an
// error when the round is already over or the guess is nil.
func (s *Session) ApplyGuess(eng *Engine, guessed *catalog.Game) (Result, string, error) {
	if s.Finished {
		return Result{}, s.state(), errors.New("game finished")
	}
	if guessed == nil {
		return Result{}, s.state(), errors.New("no guess")
	}

	res := eng.Compare(GuessFromGame(guessed), s.Target)
	s.Results = append(s.Results, res)

	if res.Correct {
		s.Finished, s.Won = true, true
	} else if len(s.Results) >= s.MaxAttempts {
		s.Finished = true
	}
	return res, s.state(), nil
}

// AttemptsLeft reports the remaining guess budget.
func (s *Session) AttemptsLeft() int {
	left := s.MaxAttempts - len(s.Results)
	if left < 0 {
		return 0
	}
	return left
}

// state reports a coarse string representation of the round state.
func (s *Session) state() string {
	if s.Finished {
		if s.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
