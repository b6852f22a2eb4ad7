package solver

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
)

type actionProbability struct {
	Action      string  `yaml:"action"`
	Probability float64 `yaml:"probability"`
}

type report struct {
	Player     string                                 `yaml:"player"`
	Mode       string                                 `yaml:"mode"`
	Value      float64                                `yaml:"value"`
	Strategies map[string]map[int][]actionProbability `yaml:"strategies"`
}

// WriteYAML writes the value and the strategy of each player, by
// information set and action.
func (r *Result) WriteYAML(w io.Writer, g *efg.Game) error {
	doc := report{
		Player:     r.Player.String(),
		Mode:       r.Mode.String(),
		Value:      r.Value,
		Strategies: make(map[string]map[int][]actionProbability),
	}
	for p, s := range r.Profile {
		player := gamestate.Player(p)
		byInfoSet := make(map[int][]actionProbability, len(s))
		for is, probs := range s {
			actions := g.ActionsAt(player, is)
			for i, prob := range probs {
				byInfoSet[is] = append(byInfoSet[is], actionProbability{
					Action:      actions[i].Name,
					Probability: prob,
				})
			}
		}
		doc.Strategies[player.String()] = byInfoSet
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// Evaluation is how a profile performs for a player in the full game,
// with leaves weighted individually rather than averaged per cell.
type Evaluation struct {
	// Value is player's expected payoff under the profile.
	Value float64
	// BestResponseValue is what the opponent gets by best responding to
	// player's strategy in the profile.
	BestResponseValue float64
}

func Evaluate(g *efg.Game, player gamestate.Player, profile efg.Profile) (*Evaluation, error) {
	ev, err := g.ExpectedValue(player, profile, efg.EvalOptions{})
	if err != nil {
		return nil, err
	}

	_, brValue, err := g.BestResponse(player.Opponent(), profile)
	if err != nil {
		return nil, err
	}

	return &Evaluation{Value: ev, BestResponseValue: brValue}, nil
}
