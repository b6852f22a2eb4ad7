package efg

import (
	"math"
	"testing"

	"github.com/timpalpant/efg/gamestate"
)

func pureProfile(p1, p2 int) Profile {
	profile := NewProfile()
	profile[gamestate.Player1][0] = make([]float64, 2)
	profile[gamestate.Player1][0][p1] = 1.0
	profile[gamestate.Player2][0] = make([]float64, 2)
	profile[gamestate.Player2][0][p2] = 1.0
	return profile
}

func TestExpectedValue(t *testing.T) {
	g := loadMatchingPennies(t)

	testCases := []struct {
		profile Profile
		player  gamestate.Player
		want    float64
	}{
		{UniformProfile(g), gamestate.Player1, 0},
		{pureProfile(0, 0), gamestate.Player1, 1},
		{pureProfile(0, 0), gamestate.Player2, -1},
		{pureProfile(0, 1), gamestate.Player1, -1},
		{pureProfile(1, 1), gamestate.Player1, 1},
	}

	for _, tc := range testCases {
		v, err := g.ExpectedValue(tc.player, tc.profile, EvalOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(v-tc.want) > 1e-12 {
			t.Errorf("%v: expected %v, got %v", tc.player, tc.want, v)
		}
	}
}

func TestNodeValuesZeroBranch(t *testing.T) {
	g := loadMatchingPennies(t)
	values, err := g.NodeValues(gamestate.Player1, pureProfile(0, 0), EvalOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// Player 1 never plays T, so the subtree below node 5 is a zero branch.
	if values[5] != 0 {
		t.Errorf("expected zero value in zero branch, got %v", values[5])
	}
	if values[6] != -1 {
		t.Errorf("expected leaves to keep their payoff, got %v", values[6])
	}
	if values[2] != 1 {
		t.Errorf("expected 1 at node 2, got %v", values[2])
	}
}

func TestExpectedValueNormalized(t *testing.T) {
	g := loadMatchingPennies(t)
	v, err := g.ExpectedValue(gamestate.Player1, UniformProfile(g), EvalOptions{NormalizePayoffs: true})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-1.0) > 1e-12 {
		t.Errorf("expected 1, got %v", v)
	}
}

func TestExpectedValueUniformPolicy(t *testing.T) {
	g := loadMatchingPennies(t)
	_, err := g.ExpectedValue(gamestate.Player1, UniformProfile(g), EvalOptions{ZeroBranch: ZeroBranchUniform})
	if err != ErrUniformNotImplemented {
		t.Errorf("expected ErrUniformNotImplemented, got %v", err)
	}
}

func TestBestResponse(t *testing.T) {
	g := loadMatchingPennies(t)

	// Against heads the attacker plays tails.
	s, v, err := g.BestResponse(gamestate.Player2, pureProfile(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if s.Probability(0, 1) != 1 {
		t.Errorf("expected tails, got %v", s[0])
	}
	if v != 1 {
		t.Errorf("expected value 1, got %v", v)
	}

	// Against a uniform attacker every action is a best response; the
	// first one wins ties.
	s, v, err = g.BestResponse(gamestate.Player1, UniformProfile(g))
	if err != nil {
		t.Fatal(err)
	}
	if s.Probability(0, 0) != 1 || v != 0 {
		t.Errorf("unexpected best response %v with value %v", s[0], v)
	}
}
