package efg

import (
	"fmt"

	"github.com/timpalpant/efg/gamestate"
)

func (g *Game) nodeInfo(id int) gamestate.NodeInfo {
	n := &g.nodes[id]
	info := gamestate.NodeInfo{
		ID:              id,
		Type:            n.Type,
		Player:          n.Player,
		InfoSet:         n.InfoSet,
		OriginalInfoSet: n.InfoSet,
		Payoffs:         n.Payoffs,
	}
	if n.Type == gamestate.PlayerNode {
		info.InfoSet = g.abstraction.InfoSet(n.Player, n.InfoSet)
	}
	return info
}

// InitialState returns a cursor positioned at the root.
func (g *Game) InitialState() *gamestate.GameState {
	return gamestate.New(g.nodeInfo(g.root))
}

// NumActions returns the number of actions at the cursor's node.
func (g *Game) NumActions(gs *gamestate.GameState) int {
	return len(g.nodes[gs.CurrentNode()].Actions)
}

// ActionName returns the name of an action at the cursor's node.
func (g *Game) ActionName(gs *gamestate.GameState, action int) (string, error) {
	n := &g.nodes[gs.CurrentNode()]
	if action < 0 || action >= len(n.Actions) {
		return "", &InvalidStateError{
			Op:     "ActionName",
			NodeID: n.ID,
			Msg:    fmt.Sprintf("action %d out of range [0, %d)", action, len(n.Actions)),
		}
	}
	return n.Actions[action].Name, nil
}

// Apply advances the cursor along action, which was taken with
// probability p.
func (g *Game) Apply(gs *gamestate.GameState, action int, p float64) error {
	n := &g.nodes[gs.CurrentNode()]
	if n.IsLeaf() {
		return &InvalidStateError{Op: "Apply", NodeID: n.ID, Msg: "node is a leaf"}
	}
	if action < 0 || action >= len(n.Actions) {
		return &InvalidStateError{
			Op:     "Apply",
			NodeID: n.ID,
			Msg:    fmt.Sprintf("action %d out of range [0, %d)", action, len(n.Actions)),
		}
	}

	gs.Push(action, p, g.nodeInfo(n.Actions[action].Child))
	return nil
}

// Undo returns the cursor to the parent of its node.
func (g *Game) Undo(gs *gamestate.GameState) error {
	if !gs.Pop() {
		return &InvalidStateError{Op: "Undo", NodeID: gs.CurrentNode(), Msg: "already at the root"}
	}
	return nil
}

// NatureProbability returns the probability that nature takes action at
// the cursor's node, which must be a chance node.
func (g *Game) NatureProbability(gs *gamestate.GameState, action int) (float64, error) {
	n := &g.nodes[gs.CurrentNode()]
	if n.Type != gamestate.ChanceNode {
		return 0, &InvalidStateError{Op: "NatureProbability", NodeID: n.ID, Msg: "not a chance node"}
	}
	if action < 0 || action >= len(n.Actions) {
		return 0, &InvalidStateError{
			Op:     "NatureProbability",
			NodeID: n.ID,
			Msg:    fmt.Sprintf("action %d out of range [0, %d)", action, len(n.Actions)),
		}
	}
	return n.Actions[action].Probability, nil
}
