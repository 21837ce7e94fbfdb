// internal/catalog/catalog.go
//
// Game catalog for the guessing engine.
//
// Responsibilities:
//   - Load the catalog from an environment-provided JSON file or fall back
//     to a small embedded default.
//   - Maintain lookup indexes (by app id, by lowercased name).
//   - Supply Search (substring), ByName, ByAppID, Random and Stats.
//
// Catalog format: a JSON object keyed by app id string, one record per game
// (the shape produced by the data pipeline). Legacy record shapes are
// normalized on load, see legacy.go.
//
// Environment variables:
//   CATALOG_FILE=/path/to/games.json
//
// Initialization runs once (sync.Once); every record that survives loading
// is fully populated, which the engine relies on for the target side.

package catalog

import (
	"crypto/rand"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"sync"
)

// Game is the canonical, read-only entity record.
type Game struct {
	AppID       int        `json:"appId"`
	Name        string     `json:"name"`
	ReleaseDate string     `json:"releaseDate"` // "2006-01-02"
	Price       Price      `json:"price"`
	Popularity  Popularity `json:"popularity"`
	Reviews     Reviews    `json:"reviews"`
	Tags        Tags       `json:"tags"`
	Hints       Hints      `json:"hints"`
	HeaderImage string     `json:"header_image,omitempty"`
}

// Price carries per-region pricing; only the US entry is scored.
type Price struct {
	US RegionPrice `json:"us"`
}

type RegionPrice struct {
	Currency string  `json:"currency"`
	Current  float64 `json:"current"`
}

// Popularity holds concurrent-user and ownership counts.
type Popularity struct {
	CCU    int `json:"ccu"`
	Owners int `json:"owners"`
}

// Reviews holds raw review counts. The positive rate is derived, never stored.
type Reviews struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// PositiveRate returns round(positive/total × 100).
// A total of zero (or less) defines the rate as 0.
func (r Reviews) PositiveRate() int {
	if r.Total <= 0 {
		return 0
	}
	return int(float64(r.Positive)/float64(r.Total)*100 + 0.5)
}

// Hints are presentation extras, never scored.
type Hints struct {
	ScreenshotURL string `json:"screenshotUrl,omitempty"`
	FunnyReview   string `json:"funnyReview,omitempty"`
}

// Merged returns the deduplicated union of all tag sub-sources
// (user tags, developers, publishers), lowercased and sorted.
func (t Tags) Merged() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, src := range [][]string{t.UserTags, t.Developers, t.Publishers} {
		for _, label := range src {
			l := strings.ToLower(strings.TrimSpace(label))
			if l == "" {
				continue
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

// --- embedded tiny default (ensures the server runs with no files configured) ---

//go:embed default_small_catalog.json
var embeddedCatalog []byte

var (
	initOnce   sync.Once
	games      []*Game
	byAppID    map[int]*Game
	byName     map[string]*Game
	initialErr error
)

// Init loads the catalog exactly once.
// Returns an error if the catalog ends up empty.
func Init() error {
	initOnce.Do(func() {
		data := embeddedCatalog
		if path := os.Getenv("CATALOG_FILE"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				initialErr = fmt.Errorf("read catalog %s: %w", path, err)
				return
			}
			data = b
		}
		gs, err := parseCatalog(data)
		if err != nil {
			initialErr = err
			return
		}
		install(gs)
		if len(games) == 0 {
			initialErr = errors.New("catalog: no games loaded")
		}
	})
	return initialErr
}

// parseCatalog decodes a catalog document and normalizes legacy shapes.
// Records without a name are dropped.
func parseCatalog(data []byte) ([]*Game, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	out := make([]*Game, 0, len(raw))
	for key, msg := range raw {
		g, err := decodeGame(msg)
		if err != nil {
			return nil, fmt.Errorf("parse catalog entry %s: %w", key, err)
		}
		if g.Name == "" {
			continue
		}
		if g.AppID == 0 {
			fmt.Sscanf(key, "%d", &g.AppID)
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppID < out[j].AppID })
	return out, nil
}

func install(gs []*Game) {
	games = gs
	byAppID = make(map[int]*Game, len(gs))
	byName = make(map[string]*Game, len(gs))
	for _, g := range gs {
		byAppID[g.AppID] = g
		byName[strings.ToLower(g.Name)] = g
	}
}

// Search returns games whose name (or any tag source) contains q,
// case-insensitively, up to limit results. An empty query matches nothing.
func Search(q string, limit int) []*Game {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" || limit <= 0 {
		return nil
	}
	var out []*Game
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Name), q) || matchesTags(g, q) {
			out = append(out, g)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

func matchesTags(g *Game, q string) bool {
	for _, label := range g.Tags.Merged() {
		if strings.Contains(label, q) {
			return true
		}
	}
	return false
}

// ByName returns the game with the exact (case-insensitive) name.
func ByName(name string) (*Game, bool) {
	g, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return g, ok
}

// ByAppID returns the game with the given app id.
func ByAppID(id int) (*Game, bool) {
	g, ok := byAppID[id]
	return g, ok
}

// Random returns a cryptographically random game from the catalog.
func Random() *Game {
	if len(games) == 0 {
		return nil
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(games))))
	return games[nBig.Int64()]
}

// At returns the game at index i (mod catalog size); used by the daily mode's
// deterministic selection.
func At(i int) *Game {
	if len(games) == 0 {
		return nil
	}
	return games[((i%len(games))+len(games))%len(games)]
}

// Size returns the number of loaded games.
func Size() int { return len(games) }
