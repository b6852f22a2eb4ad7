package sequence

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/efg"
	"github.com/timpalpant/efg/gamestate"
)

// Filter reports whether an action of an information set is enabled.
// Leaves below disabled actions are left out of the payoff cells.
type Filter interface {
	Enabled(p gamestate.Player, infoSet int, action string) bool
}

type Options struct {
	// Filter restricts the game. A nil Filter enables every action.
	Filter Filter
	// NormalizePayoffs subtracts each player's smallest payoff from
	// every leaf before accumulating it.
	NormalizePayoffs bool
}

type encodeFrame struct {
	node       int
	seq        [gamestate.NumPlayers]int
	natureProb float64
	enabled    bool
}

// encoder holds the state of a single walk over the tree.
type encoder struct {
	game    *efg.Game
	opts    Options
	enc     *Encoding
	offset  [gamestate.NumPlayers]float64
	visited [gamestate.NumPlayers]map[int]bool
	reached [gamestate.NumPlayers]map[int]bool
	nature  map[int]bool
}

// Encode walks the game once in pre-order and returns its sequence form
// with respect to the solving player.
func Encode(game *efg.Game, solving gamestate.Player, opts Options) (*Encoding, error) {
	e := &encoder{
		game: game,
		opts: opts,
		enc: &Encoding{
			Solving:      solving,
			Dual:         solving.Opponent(),
			players:      [gamestate.NumPlayers]playerSequences{newPlayerSequences(), newPlayerSequences()},
			dualInfoSets: make([][]int, 1),
			cellIndex:    make(map[[2]int]int),
		},
		visited: [gamestate.NumPlayers]map[int]bool{{}, {}},
		reached: [gamestate.NumPlayers]map[int]bool{{}, {}},
		nature:  make(map[int]bool),
	}
	if opts.NormalizePayoffs {
		for p := range e.offset {
			e.offset[p], _ = game.PayoffRange(gamestate.Player(p))
		}
	}

	if err := e.walk(); err != nil {
		return nil, err
	}

	for p := range e.enc.players {
		player := gamestate.Player(p)
		if encoded, declared := e.enc.NumSequences(player), game.NumSequences(player); encoded != declared {
			return nil, &CrossCheckError{Player: player, Encoded: encoded, Declared: declared}
		}
	}

	glog.V(1).Infof("Encoded sequences for %v: %d/%d player sequences, %d nature sequences, %d payoff cells",
		solving, e.enc.NumSequences(gamestate.Player1), e.enc.NumSequences(gamestate.Player2),
		e.enc.numNature, len(e.enc.cells))
	return e.enc, nil
}

func (e *encoder) enabled(p gamestate.Player, infoSet int, action string) bool {
	return e.opts.Filter == nil || e.opts.Filter.Enabled(p, infoSet, action)
}

func (e *encoder) walk() error {
	solving, dual := e.enc.Solving, e.enc.Dual
	stack := []encodeFrame{{node: e.game.Root().ID, natureProb: 1.0, enabled: true}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := e.game.Node(f.node)

		switch n.Type {
		case gamestate.TerminalNode:
			if f.enabled {
				e.enc.addLeaf(f.seq[dual], f.seq[solving],
					f.natureProb*(n.Payoffs[solving]-e.offset[solving]),
					f.natureProb*(n.Payoffs[dual]-e.offset[dual]))
			}
		case gamestate.ChanceNode:
			if !e.nature[n.ID] {
				e.nature[n.ID] = true
				e.enc.numNature += len(n.Actions)
			}
			for i := len(n.Actions) - 1; i >= 0; i-- {
				a := n.Actions[i]
				child := f
				child.node = a.Child
				child.natureProb *= a.Probability
				stack = append(stack, child)
			}
		case gamestate.PlayerNode:
			p := n.Player
			if err := e.visitInfoSet(n, f.seq[p]); err != nil {
				return err
			}
			if f.enabled && !e.reached[p][n.InfoSet] {
				e.reached[p][n.InfoSet] = true
				e.recordReached(n, f.seq[p])
			}

			ps := &e.enc.players[p]
			for i := len(n.Actions) - 1; i >= 0; i-- {
				a := n.Actions[i]
				child := f
				child.node = a.Child
				child.seq[p] = ps.ids[Key{n.InfoSet, a.Name}]
				child.enabled = f.enabled && e.enabled(p, n.InfoSet, a.Name)
				stack = append(stack, child)
			}
		}
	}

	return nil
}

// visitInfoSet assigns sequence ids to the actions of n's information
// set the first time it is visited.
func (e *encoder) visitInfoSet(n *efg.Node, parent int) error {
	p := n.Player
	ps := &e.enc.players[p]
	if e.visited[p][n.InfoSet] {
		if ps.parents[n.InfoSet] != parent {
			return errors.Errorf("%v information set %d is reached from sequences %q and %q (imperfect recall)",
				p, n.InfoSet, ps.seqs[ps.parents[n.InfoSet]].name, ps.seqs[parent].name)
		}
		return nil
	}
	e.visited[p][n.InfoSet] = true
	ps.parents[n.InfoSet] = parent

	symmetric := make(map[string]int, len(n.Actions))
	for _, a := range n.Actions {
		symmetric[a.Name]++
	}

	for _, a := range n.Actions {
		key := Key{n.InfoSet, a.Name}
		if _, ok := ps.ids[key]; ok {
			continue
		}

		id := len(ps.seqs)
		ps.ids[key] = id
		ps.byInfoSet[n.InfoSet] = append(ps.byInfoSet[n.InfoSet], id)
		ps.seqs = append(ps.seqs, sequenceInfo{
			name:      key.String(),
			infoSet:   n.InfoSet,
			action:    a.Name,
			symmetric: symmetric[a.Name],
		})
	}

	if p == e.enc.Dual {
		for len(e.enc.dualInfoSets) < len(ps.seqs) {
			e.enc.dualInfoSets = append(e.enc.dualInfoSets, nil)
		}
		e.enc.dualInfoSets[parent] = append(e.enc.dualInfoSets[parent], n.InfoSet)
	}

	return nil
}

func (e *encoder) recordReached(n *efg.Node, parent int) {
	p := n.Player
	ps := &e.enc.players[p]
	entry := InfoSetEntry{ID: n.InfoSet, Parent: parent}
	for _, seq := range ps.byInfoSet[n.InfoSet] {
		if e.enabled(p, n.InfoSet, ps.seqs[seq].action) {
			entry.Sequences = append(entry.Sequences, seq)
		}
	}
	ps.reached = append(ps.reached, entry)
}
