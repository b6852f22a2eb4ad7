package efg

import (
	"expvar"
	"fmt"
	"math/rand"
	"sort"

	"github.com/timpalpant/efg/gamestate"
)

var (
	nodesVisited         = expvar.NewInt("nodes_visited")
	terminalNodesVisited = expvar.NewInt("nodes_visited/terminal")
	playerNodesVisited   = expvar.NewInt("nodes_visited/player")
	chanceNodesVisited   = expvar.NewInt("nodes_visited/chance")
)

// TreeNode is a node of a parsed Game that can be walked like an
// expanded game tree. Children are built lazily and released by Close.
type TreeNode struct {
	game     *Game
	id       int
	parent   *TreeNode
	children []TreeNode
	// cumulativeProbs are the cumulative nature probabilities of a
	// chance node's children, used by SampleChild.
	cumulativeProbs []float64
}

// NewTreeNode returns the root of g.
func NewTreeNode(g *Game) *TreeNode {
	return &TreeNode{game: g, id: g.root}
}

func (n *TreeNode) node() *Node {
	return &n.game.nodes[n.id]
}

// ID returns the id of the underlying game node.
func (n *TreeNode) ID() int {
	return n.id
}

func (n *TreeNode) String() string {
	node := n.node()
	return fmt.Sprintf("%v node %d (%s)", node.Type, node.ID, node.Name)
}

func (n *TreeNode) Type() gamestate.NodeType {
	return n.node().Type
}

// Player returns the acting player. It is only meaningful at player nodes.
func (n *TreeNode) Player() gamestate.Player {
	return n.node().Player
}

// InfoSet returns the (possibly abstracted) information set of p.
func (n *TreeNode) InfoSet(p gamestate.Player) *InfoSet {
	node := n.node()
	return &InfoSet{
		Player:     p,
		ID:         n.game.abstraction.InfoSet(p, node.InfoSet),
		NumActions: len(node.Actions),
	}
}

// Utility returns the payoff of p at a terminal node.
func (n *TreeNode) Utility(p gamestate.Player) float64 {
	node := n.node()
	if !node.IsLeaf() {
		panic("cannot get the utility of a non-terminal node")
	}
	return node.Payoffs[p]
}

func (n *TreeNode) NumChildren() int {
	return len(n.node().Actions)
}

func (n *TreeNode) GetChild(i int) *TreeNode {
	n.buildChildren()
	return &n.children[i]
}

// Parent returns the node this one was built from, or nil at the root.
func (n *TreeNode) Parent() *TreeNode {
	return n.parent
}

// GetChildProbability returns nature's probability of the i'th child.
// It panics at non-chance nodes.
func (n *TreeNode) GetChildProbability(i int) float64 {
	node := n.node()
	if node.Type != gamestate.ChanceNode {
		panic("cannot get the probability of a non-chance node")
	}
	return node.Actions[i].Probability
}

// SampleChild samples a child of a chance node from nature's
// probabilities, returning it with its probability.
func (n *TreeNode) SampleChild(rng *rand.Rand) (*TreeNode, float64) {
	node := n.node()
	if node.Type != gamestate.ChanceNode {
		panic("cannot sample child of a non-chance node")
	}

	n.buildChildren()
	if n.cumulativeProbs == nil {
		n.cumulativeProbs = make([]float64, len(node.Actions))
		total := 0.0
		for i, a := range node.Actions {
			total += a.Probability
			n.cumulativeProbs[i] = total
		}
	}

	x := rng.Float64() * n.cumulativeProbs[len(n.cumulativeProbs)-1]
	selected := sort.Search(len(n.cumulativeProbs), func(i int) bool {
		return n.cumulativeProbs[i] >= x
	})
	if selected == len(n.children) {
		selected--
	}
	return &n.children[selected], node.Actions[selected].Probability
}

// Close releases the node's children and records the visit.
func (n *TreeNode) Close() {
	nodesVisited.Add(1)
	switch n.node().Type {
	case gamestate.ChanceNode:
		chanceNodesVisited.Add(1)
	case gamestate.TerminalNode:
		terminalNodesVisited.Add(1)
	default:
		playerNodesVisited.Add(1)
	}

	n.children = nil
	n.cumulativeProbs = nil
}

func (n *TreeNode) buildChildren() {
	if n.children != nil {
		return
	}

	actions := n.node().Actions
	n.children = make([]TreeNode, len(actions))
	for i, a := range actions {
		n.children[i] = TreeNode{game: n.game, id: a.Child, parent: n}
	}
}
