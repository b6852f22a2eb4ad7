package solver

import (
	"fmt"
	"math"

	"github.com/timpalpant/efg/lp"
	"github.com/timpalpant/efg/sequence"
)

// program is a model built from an encoding, with the handles of its
// sequence variables.
type program struct {
	model    lp.Model
	enc      *sequence.Encoding
	mode     Mode
	response FixedResponse

	primal map[int]lp.Var
	dual   map[int]lp.Var
	z      map[[2]int]lp.Var
	// cellsByDual indexes enc.Cells() by dual sequence.
	cellsByDual map[int][]int
}

func newProgram(model lp.Model, enc *sequence.Encoding, mode Mode) *program {
	prog := &program{
		model:       model,
		enc:         enc,
		mode:        mode,
		primal:      make(map[int]lp.Var),
		dual:        make(map[int]lp.Var),
		z:           make(map[[2]int]lp.Var),
		cellsByDual: make(map[int][]int),
	}
	for i, c := range enc.Cells() {
		prog.cellsByDual[c.Dual] = append(prog.cellsByDual[c.Dual], i)
	}
	return prog
}

// primalExpr is the realization weight of a solving player sequence.
// The empty sequence is always played.
func (prog *program) primalExpr(seq int) lp.Expr {
	if seq == sequence.Root {
		return lp.Constant(1)
	}
	return lp.VarExpr(prog.primal[seq])
}

func (prog *program) dualExpr(seq int) lp.Expr {
	if seq == sequence.Root {
		return lp.Constant(1)
	}
	return lp.VarExpr(prog.dual[seq])
}

// cellExpr is the joint realization weight of a cell's pair of sequences.
func (prog *program) cellExpr(c *sequence.Cell) lp.Expr {
	if c.Dual == sequence.Root {
		return prog.primalExpr(c.Primal)
	}
	return lp.VarExpr(prog.z[[2]int{c.Dual, c.Primal}])
}

// addPrimalConstraints adds a variable for every enabled sequence of the
// solving player, and requires the sequences extending an information
// set to sum to the weight of the sequence leading into it.
func (prog *program) addPrimalConstraints() {
	for _, entry := range prog.enc.Reached(prog.enc.Solving) {
		var children lp.Expr
		for _, seq := range entry.Sequences {
			v := prog.model.NewVar(0, 1, lp.Continuous, fmt.Sprintf("x%d", seq))
			prog.primal[seq] = v
			children.Add(1, v)
		}

		lp.AddEq(prog.model, fmt.Sprintf("primal_is%d", entry.ID),
			children, prog.primalExpr(entry.Parent))
	}
}

// buildZeroSum builds the program in which the opponent plays a pure
// realization plan through binary variables. The product of opponent
// and solving player weights in each cell is linearized with
//   z <= x, z <= y, z >= x + y - 1,
// which is exact because y is binary.
//
// Best response is enforced with one value variable per opponent
// information set I:
//   v_I >= s_a                  for each enabled a in I
//   v_I <= s_a + M(1 - y_a)
// where s_a is the opponent's payoff in the cells ending at a plus the
// values of the information sets directly beneath a. Every v_I is then
// at least the best continuation at I, and equal to it wherever the
// plan plays.
func (prog *program) buildZeroSum() {
	prog.addPrimalConstraints()

	reached := prog.enc.Reached(prog.enc.Dual)
	for _, entry := range reached {
		var choice lp.Expr
		for _, seq := range entry.Sequences {
			v := prog.model.NewVar(0, 1, lp.Integer, fmt.Sprintf("y%d", seq))
			prog.dual[seq] = v
			choice.Add(1, v)
		}
		lp.AddEq(prog.model, fmt.Sprintf("dual_is%d", entry.ID), choice, prog.dualExpr(entry.Parent))
	}

	var objective lp.Expr
	bound := 1.0
	cells := prog.enc.Cells()
	for i := range cells {
		c := &cells[i]
		if c.Dual != sequence.Root {
			name := fmt.Sprintf("z%d_%d", c.Dual, c.Primal)
			z := prog.model.NewVar(0, 1, lp.Continuous, name)
			prog.z[[2]int{c.Dual, c.Primal}] = z

			x, y := prog.primalExpr(c.Primal), prog.dualExpr(c.Dual)
			lp.AddLe(prog.model, name+"_x", lp.VarExpr(z), x)
			lp.AddLe(prog.model, name+"_y", lp.VarExpr(z), y)
			var both lp.Expr
			both.AddExpr(1, x).AddExpr(1, y).AddConstant(-1)
			lp.AddGe(prog.model, name+"_xy", lp.VarExpr(z), both)
			bound += math.Abs(c.AverageDual())
		}

		objective.AddExpr(c.AveragePrimal(), prog.cellExpr(c))
	}
	prog.model.Maximize(objective)

	// No continuation value exceeds the total opponent payoff in magnitude.
	values := make(map[int]lp.Var, len(reached))
	for _, entry := range reached {
		values[entry.ID] = prog.model.NewVar(-bound, bound, lp.Continuous, fmt.Sprintf("v%d", entry.ID))
	}

	bigM := 2 * bound
	for _, entry := range reached {
		v := lp.VarExpr(values[entry.ID])
		for _, seq := range entry.Sequences {
			var payoff lp.Expr
			for _, i := range prog.cellsByDual[seq] {
				c := &cells[i]
				payoff.AddExpr(c.AverageDual(), prog.primalExpr(c.Primal))
			}
			for _, child := range prog.enc.DualInfoSets(seq) {
				if cv, ok := values[child]; ok {
					payoff.Add(1, cv)
				}
			}
			lp.AddGe(prog.model, fmt.Sprintf("br_is%d_%d", entry.ID, seq), v, payoff)

			var slack lp.Expr
			slack.AddExpr(1, payoff).AddConstant(bigM).Add(-bigM, prog.dual[seq])
			lp.AddLe(prog.model, fmt.Sprintf("br_is%d_%d_tight", entry.ID, seq), v, slack)
		}
	}
}

// buildStackelberg builds the program in which the opponent's response
// is fixed: only cells the response realizes enter the objective.
func (prog *program) buildStackelberg(response FixedResponse) {
	prog.response = response
	prog.addPrimalConstraints()

	var objective lp.Expr
	cells := prog.enc.Cells()
	for i := range cells {
		c := &cells[i]
		if c.Dual != sequence.Root && !response.Realizes(prog.enc, c.Dual) {
			continue
		}
		objective.AddExpr(c.AveragePrimal(), prog.primalExpr(c.Primal))
	}
	prog.model.Maximize(objective)
}

// solution is a snapshot of the solved sequence weights.
type solution struct {
	primal map[int]float64
	dual   map[int]float64
}

func (prog *program) snapshot() *solution {
	sol := &solution{
		primal: make(map[int]float64, len(prog.primal)),
		dual:   make(map[int]float64, len(prog.dual)),
	}
	for seq, v := range prog.primal {
		sol.primal[seq] = prog.model.Value(v)
	}
	for seq, v := range prog.dual {
		sol.dual[seq] = prog.model.Value(v)
	}
	if prog.mode == Stackelberg {
		for is, action := range prog.response {
			if seq, ok := prog.enc.ID(prog.enc.Dual, is, action); ok {
				sol.dual[seq] = 1
			}
		}
	}
	return sol
}
