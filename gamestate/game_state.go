package gamestate

import (
	"fmt"
	"strings"
)

// NodeInfo is the part of a game tree node that a GameState tracks.
type NodeInfo struct {
	ID     int
	Type   NodeType
	Player Player
	// InfoSet is the information set reported to the acting player,
	// which may be an abstraction of OriginalInfoSet.
	InfoSet         int
	OriginalInfoSet int
	Payoffs         [NumPlayers]float64
}

// GameState is a cursor into a game tree. It records the path of nodes
// from the root to the current node, the action taken at each step and
// the probability with which it was taken.
type GameState struct {
	path    []NodeInfo
	actions []int
	probs   []float64
	reach   []float64
}

// New returns a new GameState positioned at the given root.
func New(root NodeInfo) *GameState {
	return &GameState{
		path:  []NodeInfo{root},
		reach: []float64{1.0},
	}
}

// Push records that action was taken with probability p at the current
// node, leading to child.
func (gs *GameState) Push(action int, p float64, child NodeInfo) {
	gs.actions = append(gs.actions, action)
	gs.probs = append(gs.probs, p)
	gs.reach = append(gs.reach, gs.ReachProbability()*p)
	gs.path = append(gs.path, child)
}

// Pop returns the cursor to the parent of the current node.
// It returns false if the cursor is already at the root.
func (gs *GameState) Pop() bool {
	if len(gs.path) <= 1 {
		return false
	}

	n := len(gs.actions) - 1
	gs.actions = gs.actions[:n]
	gs.probs = gs.probs[:n]
	gs.reach = gs.reach[:n+1]
	gs.path = gs.path[:n+1]
	return true
}

func (gs *GameState) current() *NodeInfo {
	return &gs.path[len(gs.path)-1]
}

// CurrentNode returns the id of the node the cursor points at.
func (gs *GameState) CurrentNode() int {
	return gs.current().ID
}

func (gs *GameState) Type() NodeType {
	return gs.current().Type
}

// Player returns the player to act. It is only meaningful at player nodes.
func (gs *GameState) Player() Player {
	return gs.current().Player
}

func (gs *GameState) InfoSet() int {
	return gs.current().InfoSet
}

func (gs *GameState) OriginalInfoSet() int {
	return gs.current().OriginalInfoSet
}

func (gs *GameState) IsLeaf() bool {
	return gs.current().Type == TerminalNode
}

// Payoff returns the terminal value for player p. It panics if the
// cursor is not at a leaf.
func (gs *GameState) Payoff(p Player) float64 {
	if !gs.IsLeaf() {
		panic(fmt.Errorf("cannot get the payoff of a non-terminal node: %d", gs.CurrentNode()))
	}

	return gs.current().Payoffs[p]
}

// Depth returns the number of actions taken since the root.
func (gs *GameState) Depth() int {
	return len(gs.actions)
}

// History returns the ids of the nodes from the root to the current node.
func (gs *GameState) History() []int {
	result := make([]int, len(gs.path))
	for i, n := range gs.path {
		result[i] = n.ID
	}
	return result
}

// Actions returns the action index taken at each step from the root.
func (gs *GameState) Actions() []int {
	return append([]int(nil), gs.actions...)
}

// ReachProbability is the product of the probabilities passed to Push
// along the current path.
func (gs *GameState) ReachProbability() float64 {
	return gs.reach[len(gs.reach)-1]
}

func (gs *GameState) String() string {
	var sb strings.Builder
	for i, n := range gs.path {
		if i > 0 {
			fmt.Fprintf(&sb, " -[%d]-> ", gs.actions[i-1])
		}
		fmt.Fprintf(&sb, "%s(%d)", n.Type, n.ID)
	}
	return sb.String()
}
