package catalog

import (
	"reflect"
	"testing"
)

func TestParseEmbeddedCatalog(t *testing.T) {
	gs, err := parseCatalog(embeddedCatalog)
	if err != nil {
		t.Fatalf("parseCatalog() error = %v", err)
	}
	if len(gs) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for _, g := range gs {
		if g.AppID == 0 || g.Name == "" || g.ReleaseDate == "" {
			t.Errorf("incomplete record: %+v", g)
		}
	}
}

func TestSearchAndLookups(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	hits := Search("portal", 20)
	if len(hits) != 1 || hits[0].Name != "Portal 2" {
		t.Fatalf("Search(portal) = %v", names(hits))
	}

	// Tag sources are searchable too.
	hits = Search("valve", 20)
	if len(hits) < 3 {
		t.Errorf("Search(valve) = %v, want at least the Valve titles", names(hits))
	}

	if got := Search("", 20); got != nil {
		t.Errorf("empty query should match nothing, got %v", names(got))
	}

	if g, ok := ByName("  portal 2 "); !ok || g.AppID != 620 {
		t.Errorf("ByName lookup failed: %v %v", g, ok)
	}
	if g, ok := ByAppID(570); !ok || g.Name != "Dota 2" {
		t.Errorf("ByAppID lookup failed: %v %v", g, ok)
	}
	if Random() == nil {
		t.Error("Random() returned nil with a loaded catalog")
	}
	if At(0) == nil || At(Size()) != At(0) || At(-1) == nil {
		t.Error("At() should wrap around the catalog")
	}
}

func TestLegacyShapes(t *testing.T) {
	doc := []byte(`{
	  "42": {
	    "name": "Old Export",
	    "releaseDate": "2010-01-01",
	    "price": {"us": {"currency": "USD", "current": 4.99}},
	    "players": {"currentWeekly": 5000, "peakConcurrent": 1200},
	    "reviews": {"total": 10, "positive": 9, "negative": 1},
	    "tags": {
	      "userTags": ["Indie"],
	      "genres": ["Puzzle"],
	      "developer": "Solo Dev",
	      "publisher": "Tiny Pub"
	    }
	  }
	}`)
	gs, err := parseCatalog(doc)
	if err != nil {
		t.Fatalf("parseCatalog() error = %v", err)
	}
	if len(gs) != 1 {
		t.Fatalf("got %d games, want 1", len(gs))
	}
	g := gs[0]
	if g.AppID != 42 {
		t.Errorf("AppID = %d, want 42 (from map key)", g.AppID)
	}
	if g.Popularity.CCU != 1200 || g.Popularity.Owners != 5000 {
		t.Errorf("players not folded into popularity: %+v", g.Popularity)
	}
	want := []string{"indie", "puzzle", "solo dev", "tiny pub"}
	if got := g.Tags.Merged(); !reflect.DeepEqual(got, want) {
		t.Errorf("Merged() = %v, want %v", got, want)
	}
}

func TestPositiveRate(t *testing.T) {
	tests := []struct {
		name string
		r    Reviews
		want int
	}{
		{"zero total", Reviews{}, 0},
		{"negative total", Reviews{Total: -5, Positive: 3}, 0},
		{"rounds up", Reviews{Total: 3, Positive: 2}, 67},
		{"all positive", Reviews{Total: 10, Positive: 10}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.PositiveRate(); got != tt.want {
				t.Errorf("PositiveRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func names(gs []*Game) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Name
	}
	return out
}
