// internal/game/engine.go
//
// Comparison engine: maps one guess/target pair to a full per-attribute
// result. The engine is a pure function of (guess, target, rules) with no
// state and no I/O, so one engine can serve any number of concurrent rounds.
//
// Attribute order is fixed at construction and never changes for the
// lifetime of the configuration; clients rely on positional access.

package game

import (
	"fmt"
	"strconv"

	"github.com/steamguess/go-server/internal/catalog"
	"github.com/steamguess/go-server/internal/rules"
)

// scoredAttributes is the fixed, ordered schema of attributes the engine
// reports on. The identity field (name) always comes first.
var scoredAttributes = []string{
	"name", "price", "ccu", "owners", "reviewCount", "positiveRate", "tags", "releaseDate",
}

// Formatter renders a numeric value for display. Formatting never affects
// classification.
type Formatter func(float64) string

// Guess is the all-optional projection of a catalog entity. A nil field
// means "not supplied" and compares as unknown, distinct from a zero value.
type Guess struct {
	Name        *string
	Price       *float64
	CCU         *float64
	Owners      *float64
	Reviews     *catalog.Reviews
	Tags        []string
	ReleaseDate *string
}

// GuessFromGame projects a fully-populated catalog entity into a Guess.
// The HTTP layer resolves player input to catalog entries, so its guesses
// are always full projections; partial guesses come from other callers.
func GuessFromGame(g *catalog.Game) Guess {
	name := g.Name
	price := g.Price.US.Current
	ccu := float64(g.Popularity.CCU)
	owners := float64(g.Popularity.Owners)
	reviews := g.Reviews
	date := g.ReleaseDate
	return Guess{
		Name:        &name,
		Price:       &price,
		CCU:         &ccu,
		Owners:      &owners,
		Reviews:     &reviews,
		Tags:        g.Tags.Merged(),
		ReleaseDate: &date,
	}
}

// Result aggregates every per-attribute verdict for one guess. Correct is
// judged solely on the name match; all other attributes are hints.
type Result struct {
	Matches []FieldMatch `json:"allFieldsMatches"`
	Correct bool         `json:"isCorrect"`
}

// Engine orchestrates per-attribute comparison using a rule set resolved
// once at construction.
type Engine struct {
	price        rules.Rule
	ccu          rules.Rule
	owners       rules.Rule
	reviewCount  rules.Rule
	positiveRate rules.Rule
	tags         rules.Rule
	releaseDate  rules.Rule
	formatters   map[string]Formatter
}

// NewEngine resolves every scored attribute's rule from cfg, failing fast on
// a missing one. Formatters may override the defaults per attribute; nil
// keeps all defaults.
func NewEngine(cfg rules.Config, formatters map[string]Formatter) (*Engine, error) {
	e := &Engine{formatters: defaultFormatters()}
	for field, fn := range formatters {
		e.formatters[field] = fn
	}
	var err error
	for _, bind := range []struct {
		name string
		dst  *rules.Rule
	}{
		{"price", &e.price},
		{"ccu", &e.ccu},
		{"owners", &e.owners},
		{"reviewCount", &e.reviewCount},
		{"positiveRate", &e.positiveRate},
		{"tags", &e.tags},
		{"releaseDate", &e.releaseDate},
	} {
		if *bind.dst, err = cfg.Attribute(bind.name); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Fields returns the engine's attribute order.
func (e *Engine) Fields() []string {
	out := make([]string, len(scoredAttributes))
	copy(out, scoredAttributes)
	return out
}

// Compare produces the aggregate verdict for one guess against the target.
// The target must be a fully-populated catalog record; guess fields may be
// absent and come back as unknown.
func (e *Engine) Compare(guess Guess, target *catalog.Game) Result {
	matches := make([]FieldMatch, 0, len(scoredAttributes))

	name := CompareText("name", guess.Name, target.Name)
	matches = append(matches, name)

	matches = append(matches, CompareNumeric("price", guess.Price,
		target.Price.US.Current, e.price, e.formatters["price"]))
	matches = append(matches, CompareNumeric("ccu", guess.CCU,
		float64(target.Popularity.CCU), e.ccu, e.formatters["ccu"]))
	matches = append(matches, CompareNumeric("owners", guess.Owners,
		float64(target.Popularity.Owners), e.owners, e.formatters["owners"]))

	matches = append(matches, CompareNumeric("reviewCount", reviewCount(guess.Reviews),
		float64(target.Reviews.Total), e.reviewCount, e.formatters["reviewCount"]))
	matches = append(matches, CompareNumeric("positiveRate", positiveRate(guess.Reviews),
		float64(target.Reviews.PositiveRate()), e.positiveRate, e.formatters["positiveRate"]))

	matches = append(matches, CompareTags("tags", guess.Tags, target.Tags.Merged(), e.tags))
	matches = append(matches, CompareYear("releaseDate", guess.ReleaseDate,
		target.ReleaseDate, e.releaseDate))

	return Result{Matches: matches, Correct: name.Status == StatusExact}
}

// reviewCount and positiveRate derive numeric values from the optional
// review block of a guess.
func reviewCount(r *catalog.Reviews) *float64 {
	if r == nil {
		return nil
	}
	v := float64(r.Total)
	return &v
}

func positiveRate(r *catalog.Reviews) *float64 {
	if r == nil {
		return nil
	}
	v := float64(r.PositiveRate())
	return &v
}

func defaultFormatters() map[string]Formatter {
	return map[string]Formatter{
		"price":        func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"ccu":          formatCount,
		"owners":       formatCount,
		"reviewCount":  formatCount,
		"positiveRate": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "%" },
	}
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
