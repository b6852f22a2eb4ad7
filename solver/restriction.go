package solver

import (
	"github.com/golang/glog"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/sequence"
)

// BestResponse holds the actions of a best response for each player,
// keyed by "infoSet;actionName".
type BestResponse [gamestate.NumPlayers]map[string]bool

func NewBestResponse() BestResponse {
	return BestResponse{{}, {}}
}

func (br BestResponse) Add(p gamestate.Player, infoSet int, action string) {
	br[p][sequence.Key{InfoSet: infoSet, Action: action}.String()] = true
}

func (br BestResponse) Contains(p gamestate.Player, infoSet int, action string) bool {
	return br[p][sequence.Key{InfoSet: infoSet, Action: action}.String()]
}

// BestResponseOf returns the actions played with positive probability
// in profile.
func BestResponseOf(g *efg.Game, profile efg.Profile) BestResponse {
	br := NewBestResponse()
	for p, s := range profile {
		player := gamestate.Player(p)
		for is, probs := range s {
			actions := g.ActionsAt(player, is)
			for i, prob := range probs {
				if prob > 0 && i < len(actions) {
					br.Add(player, is, actions[i].Name)
				}
			}
		}
	}
	return br
}

// Restriction is the set of enabled actions of a restricted game.
// Actions are only ever enabled, never disabled.
type Restriction struct {
	game       *efg.Game
	enabled    [gamestate.NumPlayers]map[int]map[string]bool
	numEnabled int
}

// NewRestriction returns a restriction of g with no actions enabled.
func NewRestriction(g *efg.Game) *Restriction {
	return &Restriction{
		game:    g,
		enabled: [gamestate.NumPlayers]map[int]map[string]bool{{}, {}},
	}
}

// Enabled implements sequence.Filter.
func (r *Restriction) Enabled(p gamestate.Player, infoSet int, action string) bool {
	return r.enabled[p][infoSet][action]
}

// NumEnabled returns the number of distinct enabled actions.
func (r *Restriction) NumEnabled() int {
	return r.numEnabled
}

func (r *Restriction) enable(p gamestate.Player, infoSet int, action string) bool {
	actions, ok := r.enabled[p][infoSet]
	if !ok {
		actions = make(map[string]bool)
		r.enabled[p][infoSet] = actions
	}
	if actions[action] {
		return false
	}
	actions[action] = true
	r.numEnabled++
	return true
}

// Update walks the restricted game in pre-order. At the first visit of
// each information set it enables the actions of br that are not yet
// enabled; it descends only through enabled actions, so the walk
// covers the restricted game as it grows. It returns the number of
// actions enabled.
func (r *Restriction) Update(br BestResponse) int {
	added := 0
	visited := [gamestate.NumPlayers]map[int]bool{{}, {}}
	stack := []int{r.game.Root().ID}
	for len(stack) > 0 {
		n := r.game.Node(stack[len(stack)-1])
		stack = stack[:len(stack)-1]

		switch n.Type {
		case gamestate.ChanceNode:
			for i := len(n.Actions) - 1; i >= 0; i-- {
				stack = append(stack, n.Actions[i].Child)
			}
		case gamestate.PlayerNode:
			p := n.Player
			if !visited[p][n.InfoSet] {
				visited[p][n.InfoSet] = true
				for _, a := range n.Actions {
					if br.Contains(p, n.InfoSet, a.Name) && r.enable(p, n.InfoSet, a.Name) {
						glog.V(2).Infof("Enabled %v action %q at information set %d", p, a.Name, n.InfoSet)
						added++
					}
				}
			}

			for i := len(n.Actions) - 1; i >= 0; i-- {
				if r.Enabled(p, n.InfoSet, n.Actions[i].Name) {
					stack = append(stack, n.Actions[i].Child)
				}
			}
		}
	}

	return added
}
