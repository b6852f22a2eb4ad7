package solver

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/lp"
)

// Mode selects how the opponent is modelled.
type Mode uint8

const (
	// ZeroSum lets the opponent best-respond within the program through
	// binary action variables.
	ZeroSum Mode = iota
	// Stackelberg fixes the opponent to a pure response given up front.
	Stackelberg
)

var modeStr = [...]string{
	"zerosum",
	"stackelberg",
}

func (m Mode) String() string {
	return modeStr[m]
}

func ParseMode(s string) (Mode, error) {
	for i, name := range modeStr {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, errors.Errorf("unknown mode: %q", s)
}

type Options struct {
	// Player is the solving player.
	Player gamestate.Player
	Mode   Mode
	// NormalizePayoffs subtracts each player's smallest payoff from
	// every leaf before building the program.
	NormalizePayoffs bool
	Engine           lp.Options
	// NewModel creates the model for each solve. If nil, lp.NewSimplex
	// is used.
	NewModel func(lp.Options) lp.Model
	// ModelOutput, if set, receives every model in LP format before
	// it is solved (for models that implement io.WriterTo).
	ModelOutput io.Writer
}

func DefaultOptions() Options {
	return Options{
		Player: gamestate.Player1,
		Mode:   ZeroSum,
		Engine: lp.DefaultOptions(),
	}
}

func (o Options) newModel() lp.Model {
	if o.NewModel != nil {
		return o.NewModel(o.Engine)
	}
	return lp.NewSimplex(o.Engine)
}
