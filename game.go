package efg

import (
	"math"
	"sort"

	"github.com/timpalpant/efg/gamestate"
)

// Action is an edge of the game tree.
type Action struct {
	Name  string
	Child int
	// Probability is the nature probability of a chance action.
	Probability float64
}

// Node is a node of the game tree.
type Node struct {
	ID int
	// Name is the label of the history leading to this node.
	Name    string
	Type    gamestate.NodeType
	Player  gamestate.Player
	InfoSet int
	Actions []Action
	Payoffs [gamestate.NumPlayers]float64
}

func (n *Node) IsLeaf() bool {
	return n.Type == gamestate.TerminalNode
}

func (n *Node) Payoff(p gamestate.Player) float64 {
	return n.Payoffs[p]
}

// infoSetTable stores the member nodes of a player's information sets,
// indexed by id relative to the smallest id seen.
type infoSetTable struct {
	base    int
	members [][]int
}

func (t *infoSetTable) get(id int) []int {
	idx := id - t.base
	if idx < 0 || idx >= len(t.members) {
		return nil
	}
	return t.members[idx]
}

// Game is an immutable two-player extensive-form game tree.
type Game struct {
	Title       string
	PlayerNames [gamestate.NumPlayers]string

	nodes        []Node
	root         int
	infoSets     [gamestate.NumPlayers]infoSetTable
	numInfoSets  [gamestate.NumPlayers]int
	numSequences [gamestate.NumPlayers]int
	minPayoff    [gamestate.NumPlayers]float64
	maxPayoff    [gamestate.NumPlayers]float64

	abstraction *Abstraction
}

func (g *Game) Root() *Node {
	return &g.nodes[g.root]
}

// Node returns the node with the given id, or nil if there is none.
func (g *Game) Node(id int) *Node {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return &g.nodes[id]
}

func (g *Game) NumNodes() int {
	return len(g.nodes)
}

// NumInfoSets returns the number of information sets declared for p.
func (g *Game) NumInfoSets(p gamestate.Player) int {
	return g.numInfoSets[p]
}

// NumSequences returns one (the empty sequence) plus the number of
// distinct actions over all of p's information sets.
func (g *Game) NumSequences(p gamestate.Player) int {
	return g.numSequences[p]
}

// SmallestInfoSetID returns the smallest information set id used by p.
func (g *Game) SmallestInfoSetID(p gamestate.Player) int {
	return g.infoSets[p].base
}

// InfoSets returns the ids of p's non-empty information sets in
// ascending order.
func (g *Game) InfoSets(p gamestate.Player) []int {
	t := &g.infoSets[p]
	result := make([]int, 0, len(t.members))
	for i, members := range t.members {
		if len(members) > 0 {
			result = append(result, t.base+i)
		}
	}
	return result
}

// InfoSetMembers returns the ids of the nodes in p's information set.
func (g *Game) InfoSetMembers(p gamestate.Player, infoSet int) []int {
	return g.infoSets[p].get(infoSet)
}

// ActionsAt returns the actions available in p's information set.
// Every member of an information set has the same ordered action names,
// so the first member is used as the representative.
func (g *Game) ActionsAt(p gamestate.Player, infoSet int) []Action {
	members := g.infoSets[p].get(infoSet)
	if len(members) == 0 {
		return nil
	}
	return g.nodes[members[0]].Actions
}

// SymmetricCount returns the number of times an action name occurs in
// p's information set.
func (g *Game) SymmetricCount(p gamestate.Player, infoSet int, name string) int {
	n := 0
	for _, a := range g.ActionsAt(p, infoSet) {
		if a.Name == name {
			n++
		}
	}
	return n
}

// PayoffRange returns the smallest and largest leaf payoff for p.
func (g *Game) PayoffRange(p gamestate.Player) (float64, float64) {
	return g.minPayoff[p], g.maxPayoff[p]
}

// preorder appends the node ids reachable from the root to order,
// in pre-order.
func (g *Game) preorder(order []int) []int {
	stack := allocIntSlice()
	defer func() { freeIntSlice(stack) }()
	stack = append(stack, g.root)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, id)
		actions := g.nodes[id].Actions
		for i := len(actions) - 1; i >= 0; i-- {
			stack = append(stack, actions[i].Child)
		}
	}
	return order
}

func distinctNames(actions []Action) int {
	seen := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		seen[a.Name] = struct{}{}
	}
	return len(seen)
}

// finalize builds the information set tables and derived counts once
// all nodes are linked.
func (g *Game) finalize() error {
	for p := range g.minPayoff {
		g.minPayoff[p] = math.Inf(1)
		g.maxPayoff[p] = math.Inf(-1)
	}

	byPlayer := [gamestate.NumPlayers]map[int][]int{{}, {}}
	for _, id := range g.preorder(nil) {
		n := &g.nodes[id]
		switch n.Type {
		case gamestate.PlayerNode:
			byPlayer[n.Player][n.InfoSet] = append(byPlayer[n.Player][n.InfoSet], id)
		case gamestate.TerminalNode:
			for p, v := range n.Payoffs {
				g.minPayoff[p] = math.Min(g.minPayoff[p], v)
				g.maxPayoff[p] = math.Max(g.maxPayoff[p], v)
			}
		}
	}

	for p, sets := range byPlayer {
		player := gamestate.Player(p)
		ids := make([]int, 0, len(sets))
		for id := range sets {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		t := infoSetTable{members: make([][]int, g.numInfoSets[p])}
		if len(ids) > 0 {
			t.base = ids[0]
		}
		g.numSequences[p] = 1
		for _, id := range ids {
			idx := id - t.base
			if idx >= len(t.members) {
				return parseErrorf(0, "%v information set %d exceeds the %d declared",
					player, id, g.numInfoSets[p])
			}

			members := sets[id]
			first := g.nodes[members[0]].Actions
			for _, m := range members[1:] {
				if !sameActionNames(first, g.nodes[m].Actions) {
					return parseErrorf(0, "%v information set %d: node %d has different actions than node %d",
						player, id, m, members[0])
				}
			}

			t.members[idx] = members
			g.numSequences[p] += distinctNames(first)
		}
		g.infoSets[p] = t
	}

	return nil
}

func sameActionNames(a, b []Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
