package efg

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/efg/gamestate"
)

// Abstraction maps information sets of a game onto (usually fewer)
// abstract information sets. Unmapped information sets are their own
// abstraction.
type Abstraction struct {
	mapping [gamestate.NumPlayers]map[int]int
}

func NewAbstraction() *Abstraction {
	return &Abstraction{
		mapping: [gamestate.NumPlayers]map[int]int{{}, {}},
	}
}

// Merge reports p's information set from as abstract information set to.
func (a *Abstraction) Merge(p gamestate.Player, from, to int) {
	a.mapping[p][from] = to
}

// ParseAbstraction parses a comma-separated list of merges written as
// "player:from:to", with one-based player numbers as in game files.
// For example "2:3:1,2:4:1" merges player 2's information sets 3 and 4
// into 1.
func ParseAbstraction(s string) (*Abstraction, error) {
	a := NewAbstraction()
	for _, merge := range strings.Split(s, ",") {
		merge = strings.TrimSpace(merge)
		if merge == "" {
			continue
		}

		fields := strings.Split(merge, ":")
		if len(fields) != 3 {
			return nil, errors.Errorf("invalid merge %q: expected player:from:to", merge)
		}
		var nums [3]int
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid merge %q", merge)
			}
			nums[i] = n
		}

		p, err := gamestate.PlayerFromNumber(nums[0])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid merge %q", merge)
		}
		a.Merge(p, nums[1], nums[2])
	}

	return a, nil
}

func (a *Abstraction) InfoSet(p gamestate.Player, infoSet int) int {
	if a == nil {
		return infoSet
	}
	if to, ok := a.mapping[p][infoSet]; ok {
		return to
	}
	return infoSet
}

// WithAbstraction returns a view of g whose GameStates report abstract
// information sets. The view shares g's nodes.
func (g *Game) WithAbstraction(a *Abstraction) (*Game, error) {
	for p, m := range a.mapping {
		player := gamestate.Player(p)
		for from, to := range m {
			fromActions := g.ActionsAt(player, from)
			toActions := g.ActionsAt(player, to)
			if fromActions == nil || toActions == nil {
				return nil, errors.Errorf("%v: cannot abstract information set %d as %d: unknown information set",
					player, from, to)
			}
			if len(fromActions) != len(toActions) {
				return nil, errors.Errorf("%v: cannot abstract information set %d as %d: %d != %d actions",
					player, from, to, len(fromActions), len(toActions))
			}
		}
	}

	view := *g
	view.abstraction = a
	return &view, nil
}
