package game

import (
	"reflect"
	"testing"

	"github.com/steamguess/go-server/internal/catalog"
	"github.com/steamguess/go-server/internal/rules"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cfg, err := rules.Load("")
	if err != nil {
		t.Fatalf("rules.Load() error = %v", err)
	}
	eng, err := NewEngine(cfg, nil)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return eng
}

func testTarget() *catalog.Game {
	return &catalog.Game{
		AppID:       620,
		Name:        "Portal 2",
		ReleaseDate: "2011-04-18",
		Price:       catalog.Price{US: catalog.RegionPrice{Currency: "USD", Current: 9.99}},
		Popularity:  catalog.Popularity{CCU: 2600, Owners: 25000000},
		Reviews:     catalog.Reviews{Total: 380000, Positive: 372000, Negative: 8000},
		Tags: catalog.Tags{
			UserTags:   []string{"Puzzle", "Co-op", "First-Person"},
			Developers: []string{"Valve"},
			Publishers: []string{"Valve"},
		},
	}
}

func TestCompareFieldOrderStable(t *testing.T) {
	eng := testEngine(t)
	want := []string{"name", "price", "ccu", "owners", "reviewCount", "positiveRate", "tags", "releaseDate"}

	res := eng.Compare(Guess{}, testTarget())
	got := make([]string, len(res.Matches))
	for i, m := range res.Matches {
		got[i] = m.Field
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("field order = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(eng.Fields(), want) {
		t.Errorf("Fields() = %v, want %v", eng.Fields(), want)
	}
}

func TestCompareEmptyGuessAllUnknown(t *testing.T) {
	eng := testEngine(t)
	res := eng.Compare(Guess{}, testTarget())
	for _, m := range res.Matches {
		if m.Status != StatusUnknown {
			t.Errorf("%s: status = %q, want unknown", m.Field, m.Status)
		}
		if m.Guessed != nil {
			t.Errorf("%s: guessed = %q, want nil", m.Field, *m.Guessed)
		}
	}
	if res.Correct {
		t.Error("empty guess must not be correct")
	}
}

func TestCompareSelfGuessAllExact(t *testing.T) {
	eng := testEngine(t)
	target := testTarget()
	res := eng.Compare(GuessFromGame(target), target)
	for _, m := range res.Matches {
		if m.Status != StatusExact {
			t.Errorf("%s: status = %q, want exact", m.Field, m.Status)
		}
	}
	if !res.Correct {
		t.Error("self guess must be correct")
	}
}

func TestCorrectnessIndependence(t *testing.T) {
	eng := testEngine(t)
	target := testTarget()

	// Every attribute right except the name: not correct.
	imposter := GuessFromGame(target)
	name := "Half-Life 3"
	imposter.Name = &name
	res := eng.Compare(imposter, target)
	if res.Correct {
		t.Error("matching attributes with a wrong name must not win")
	}
	if res.Matches[0].Status != StatusWrong {
		t.Errorf("name status = %q, want wrong", res.Matches[0].Status)
	}

	// Only the name right: correct regardless of everything else.
	rightName := target.Name
	res = eng.Compare(Guess{Name: &rightName}, target)
	if !res.Correct {
		t.Error("exact name alone must win")
	}
	for _, m := range res.Matches[1:] {
		if m.Status != StatusUnknown {
			t.Errorf("%s: status = %q, want unknown", m.Field, m.Status)
		}
	}
}

func TestCompareIdempotent(t *testing.T) {
	eng := testEngine(t)
	target := testTarget()
	guess := GuessFromGame(testTarget())
	price := 12.49
	guess.Price = &price

	first := eng.Compare(guess, target)
	second := eng.Compare(guess, target)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated compare differs:\n%v\n%v", first, second)
	}
}

func TestDerivedPositiveRate(t *testing.T) {
	eng := testEngine(t)
	target := testTarget() // 372000/380000 → 98%

	guess := Guess{Reviews: &catalog.Reviews{Total: 100, Positive: 97}}
	res := eng.Compare(guess, target)
	var rate FieldMatch
	for _, m := range res.Matches {
		if m.Field == "positiveRate" {
			rate = m
		}
	}
	// 97 vs 98: distance 1, inside the absolute exact band.
	if rate.Status != StatusExact {
		t.Errorf("positiveRate status = %q, want exact", rate.Status)
	}
	if rate.Guessed == nil || *rate.Guessed != "97%" {
		t.Errorf("positiveRate guessed = %v, want 97%%", rate.Guessed)
	}

	// Zero total defines the rate as 0, not a fault.
	guess = Guess{Reviews: &catalog.Reviews{}}
	res = eng.Compare(guess, target)
	for _, m := range res.Matches {
		if m.Field == "positiveRate" && m.Status == StatusUnknown {
			t.Error("zero-total reviews should compare as rate 0, not unknown")
		}
	}
}

func TestDefaultPriceFormatter(t *testing.T) {
	eng := testEngine(t)
	res := eng.Compare(GuessFromGame(testTarget()), testTarget())
	if res.Matches[1].Target != "$9.99" {
		t.Errorf("price rendered as %q, want $9.99", res.Matches[1].Target)
	}
}

func TestNewEngineMissingRule(t *testing.T) {
	cfg, err := rules.Load("")
	if err != nil {
		t.Fatal(err)
	}
	delete(cfg.Attributes, "tags")
	if _, err := NewEngine(cfg, nil); err == nil {
		t.Error("expected an error for a missing attribute rule")
	}
}
