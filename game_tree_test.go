package efg

import (
	"math/rand"
	"testing"

	"github.com/timpalpant/efg/gamestate"
)

func countNodes(node *TreeNode) (total, terminal int) {
	total = 1
	if node.Type() == gamestate.TerminalNode {
		return total, 1
	}

	for i := 0; i < node.NumChildren(); i++ {
		n, nt := countNodes(node.GetChild(i))
		total += n
		terminal += nt
	}
	node.Close()
	return total, terminal
}

func TestTreeNode(t *testing.T) {
	g := loadMatchingPennies(t)
	root := NewTreeNode(g)

	total, terminal := countNodes(root)
	if total != 15 || terminal != 8 {
		t.Errorf("expected 15 nodes (8 terminal), got %d (%d)", total, terminal)
	}

	if p := root.GetChildProbability(1); p != 0.5 {
		t.Errorf("expected 0.5, got %v", p)
	}
	child, p := root.SampleChild(rand.New(rand.NewSource(1)))
	if p != 0.5 || child.Type() != gamestate.PlayerNode || child.Player() != gamestate.Player1 {
		t.Errorf("unexpected sampled child %v (%v)", child, p)
	}
	if child.Parent() != root || root.Parent() != nil {
		t.Error("sampled child has wrong parent")
	}

	attacker := child.GetChild(0)
	is := attacker.InfoSet(attacker.Player())
	if is.Key() != child.GetChild(1).InfoSet(gamestate.Player2).Key() {
		t.Error("expected attacker nodes to share an info set")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for non-chance node probability")
		}
	}()
	child.GetChildProbability(0)
}
