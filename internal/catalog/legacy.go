// internal/catalog/legacy.go
//
// Normalization of legacy catalog record shapes into the canonical Game.
// Older exports used:
//   - tags as {userTags, genres, developer, publisher} with singular strings,
//     instead of {userTags, developers, publishers};
//   - a players object {currentWeekly, peakConcurrent} instead of
//     popularity {ccu, owners}.
//
// Only the canonical schema exists past this file.

package catalog

import "encoding/json"

// Tags holds the categorical label sources of a game.
type Tags struct {
	UserTags   []string
	Developers []string
	Publishers []string
}

func (t *Tags) UnmarshalJSON(b []byte) error {
	var raw struct {
		UserTags   []string `json:"userTags"`
		Genres     []string `json:"genres"`
		Developers []string `json:"developers"`
		Publishers []string `json:"publishers"`
		Developer  string   `json:"developer"`
		Publisher  string   `json:"publisher"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.UserTags = append(raw.UserTags, raw.Genres...)
	t.Developers = raw.Developers
	t.Publishers = raw.Publishers
	if raw.Developer != "" {
		t.Developers = append(t.Developers, raw.Developer)
	}
	if raw.Publisher != "" {
		t.Publishers = append(t.Publishers, raw.Publisher)
	}
	return nil
}

func (t Tags) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UserTags   []string `json:"userTags"`
		Developers []string `json:"developers"`
		Publishers []string `json:"publishers"`
	}{t.UserTags, t.Developers, t.Publishers})
}

// legacyPlayers is the old popularity shape.
type legacyPlayers struct {
	CurrentWeekly  int `json:"currentWeekly"`
	PeakConcurrent int `json:"peakConcurrent"`
}

// decodeGame unmarshals one catalog record, folding legacy fields in.
// peakConcurrent maps onto ccu; currentWeekly stands in for owners when no
// popularity block is present (nearest available proxy in the old exports).
func decodeGame(msg json.RawMessage) (*Game, error) {
	var aux struct {
		Game
		Players *legacyPlayers `json:"players"`
	}
	if err := json.Unmarshal(msg, &aux); err != nil {
		return nil, err
	}
	g := aux.Game
	if g.Popularity == (Popularity{}) && aux.Players != nil {
		g.Popularity.CCU = aux.Players.PeakConcurrent
		g.Popularity.Owners = aux.Players.CurrentWeekly
	}
	return &g, nil
}
