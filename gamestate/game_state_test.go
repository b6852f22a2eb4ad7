package gamestate

import (
	"reflect"
	"testing"
)

func TestPlayerNumbers(t *testing.T) {
	for _, p := range []Player{Player1, Player2} {
		got, err := PlayerFromNumber(p.Number())
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Errorf("expected %v, got %v", p, got)
		}
	}

	if Player1.Opponent() != Player2 || Player2.Opponent() != Player1 {
		t.Error("opponent mismatch")
	}

	for _, n := range []int{0, 3, -1} {
		if _, err := PlayerFromNumber(n); err == nil {
			t.Errorf("expected error for player number %d", n)
		}
	}
}

func TestPushPop(t *testing.T) {
	root := NodeInfo{ID: 0, Type: ChanceNode}
	gs := New(root)
	gs.Push(1, 0.25, NodeInfo{ID: 3, Type: PlayerNode, Player: Player2, InfoSet: 7, OriginalInfoSet: 9})
	gs.Push(0, 1.0, NodeInfo{ID: 4, Type: TerminalNode, Payoffs: [NumPlayers]float64{2, -2}})

	if !gs.IsLeaf() {
		t.Fatal("expected leaf")
	}
	if gs.Payoff(Player1) != 2 || gs.Payoff(Player2) != -2 {
		t.Errorf("unexpected payoffs: %v %v", gs.Payoff(Player1), gs.Payoff(Player2))
	}
	if gs.ReachProbability() != 0.25 {
		t.Errorf("expected reach 0.25, got %v", gs.ReachProbability())
	}
	if !reflect.DeepEqual(gs.History(), []int{0, 3, 4}) {
		t.Errorf("unexpected history: %v", gs.History())
	}
	if !reflect.DeepEqual(gs.Actions(), []int{1, 0}) {
		t.Errorf("unexpected actions: %v", gs.Actions())
	}

	if !gs.Pop() {
		t.Fatal("pop failed")
	}
	if gs.Player() != Player2 || gs.InfoSet() != 7 || gs.OriginalInfoSet() != 9 {
		t.Errorf("unexpected state after pop: %v", gs)
	}
	gs.Pop()
	if gs.Pop() {
		t.Error("expected pop at root to fail")
	}
	if gs.Depth() != 0 || gs.ReachProbability() != 1.0 {
		t.Errorf("unexpected root state: depth %d reach %v", gs.Depth(), gs.ReachProbability())
	}
}
