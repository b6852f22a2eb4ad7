package matrixgame

import (
	"math"
	"math/rand"
	"testing"
)

func TestFictitiousPlay_RockPaperScissors(t *testing.T) {
	payoffs := [][]float64{
		[]float64{0, 1, -1}, // Player 0 plays rock.
		[]float64{-1, 0, 1}, // Player 0 plays scissors.
		[]float64{1, -1, 0}, // Player 0 plays paper.
	}

	rng := rand.New(rand.NewSource(123))
	p0, p1 := FictitiousPlay(payoffs, 10000, 0, rng)
	t.Logf("Player 0 Nash equilibrium policy: %v", p0)
	t.Logf("Player 1 Nash equilibrium policy: %v", p1)

	for i := range p0 {
		if math.Abs(p0[i]-1.0/3) > 0.1 || math.Abs(p1[i]-1.0/3) > 0.1 {
			t.Errorf("expected uniform play, got %v and %v", p0, p1)
		}
	}
	if v := Value(payoffs, p0, p1); math.Abs(v) > 0.05 {
		t.Errorf("expected value near 0, got %v", v)
	}
}

func TestFictitiousPlay_Dominated(t *testing.T) {
	payoffs := [][]float64{
		[]float64{3, 2},
		[]float64{1, 0},
	}

	rng := rand.New(rand.NewSource(123))
	p0, p1 := FictitiousPlay(payoffs, 1000, 0, rng)
	if p0[0] < 0.99 || p1[1] < 0.99 {
		t.Errorf("expected pure equilibrium, got %v and %v", p0, p1)
	}
	if v := Value(payoffs, p0, p1); math.Abs(v-2) > 0.05 {
		t.Errorf("expected value 2, got %v", v)
	}
}
