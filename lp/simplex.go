package lp

import (
	"context"
	"expvar"
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	golp "gonum.org/v1/gonum/optimize/convex/lp"
)

var (
	solves        = expvar.NewInt("lp/solves")
	relaxations   = expvar.NewInt("lp/relaxations")
	branchNodes   = expvar.NewInt("lp/branch_nodes")
	solveFailures = expvar.NewInt("lp/failures")
)

// Coefficients below this magnitude are treated as zero.
const zeroCoef = 1e-12

type variable struct {
	lb, ub float64
	kind   VarKind
	name   string
}

type constraint struct {
	name  string
	terms []Term
	sense Sense
	rhs   float64
}

// SimplexModel implements Model with gonum's simplex method. Integer
// variables are handled by depth-first branch and bound over the
// linear relaxation.
type SimplexModel struct {
	opts      Options
	vars      []variable
	cons      []constraint
	objective Expr

	status   Status
	values   []float64
	objValue float64
}

// Verify that we implement the interface.
var _ Model = &SimplexModel{}

func NewSimplex(opts Options) *SimplexModel {
	return &SimplexModel{opts: opts}
}

func (m *SimplexModel) NewVar(lb, ub float64, kind VarKind, name string) Var {
	m.vars = append(m.vars, variable{lb: lb, ub: ub, kind: kind, name: name})
	return Var(len(m.vars) - 1)
}

// AddConstraint implements Model. Terms of the same variable are merged
// and constants are moved to the right-hand side.
func (m *SimplexModel) AddConstraint(name string, lhs Expr, sense Sense, rhs Expr) {
	var combined Expr
	combined.AddExpr(1, lhs)
	combined.AddExpr(-1, rhs)
	m.cons = append(m.cons, constraint{
		name:  name,
		terms: mergeTerms(combined.Terms),
		sense: sense,
		rhs:   0 - combined.Constant,
	})
}

func (m *SimplexModel) Maximize(objective Expr) {
	m.objective = Expr{
		Terms:    mergeTerms(objective.Terms),
		Constant: objective.Constant,
	}
}

func (m *SimplexModel) Status() Status {
	return m.status
}

func (m *SimplexModel) Value(v Var) float64 {
	if m.values == nil {
		return math.NaN()
	}
	return m.values[v]
}

func (m *SimplexModel) ObjectiveValue() float64 {
	return m.objValue
}

func (m *SimplexModel) NumVars() int {
	return len(m.vars)
}

func (m *SimplexModel) NumConstraints() int {
	return len(m.cons)
}

func mergeTerms(terms []Term) []Term {
	index := make(map[Var]int, len(terms))
	var result []Term
	for _, t := range terms {
		if i, ok := index[t.Var]; ok {
			result[i].Coef += t.Coef
			continue
		}
		index[t.Var] = len(result)
		result = append(result, t)
	}

	n := 0
	for _, t := range result {
		if math.Abs(t.Coef) > zeroCoef {
			result[n] = t
			n++
		}
	}
	return result[:n]
}

type bbNode struct {
	lb, ub []float64
}

// Solve implements Model.
func (m *SimplexModel) Solve(ctx context.Context) error {
	solves.Add(1)
	start := time.Now()
	m.status = NotSolved
	m.values = nil
	m.objValue = 0

	root := bbNode{
		lb: make([]float64, len(m.vars)),
		ub: make([]float64, len(m.vars)),
	}
	for j, v := range m.vars {
		root.lb[j], root.ub[j] = v.lb, v.ub
		if v.kind == Integer {
			root.lb[j] = math.Ceil(v.lb - m.opts.IntegralityTolerance)
			root.ub[j] = math.Floor(v.ub + m.opts.IntegralityTolerance)
		}
	}

	var best []float64
	bestObj := math.Inf(-1)
	stack := []bbNode{root}
	for len(stack) > 0 {
		if err := m.checkTime(ctx, start); err != nil {
			m.status = TimedOut
			return err
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		branchNodes.Add(1)

		x, obj, status, err := m.solveRelaxation(node.lb, node.ub)
		switch status {
		case Infeasible:
			continue
		case Optimal:
		default:
			return m.fail(status, err)
		}
		if best != nil && obj <= bestObj+m.opts.Tolerance {
			continue
		}

		j := m.fractional(x)
		if j < 0 {
			best, bestObj = x, obj
			continue
		}

		down := bbNode{lb: node.lb, ub: append([]float64(nil), node.ub...)}
		down.ub[j] = math.Floor(x[j])
		up := bbNode{lb: append([]float64(nil), node.lb...), ub: node.ub}
		up.lb[j] = math.Ceil(x[j])
		// The branch nearer to the relaxed value is explored first.
		if x[j]-down.ub[j] >= 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}

	if best == nil {
		return m.fail(Infeasible, nil)
	}

	for j, v := range m.vars {
		if v.kind == Integer {
			best[j] = math.Round(best[j])
		}
	}
	m.values = best
	m.objValue = m.evalObjective(best)
	m.status = Optimal
	glog.V(2).Infof("Solved model with %d variables and %d constraints in %v: objective %v",
		len(m.vars), len(m.cons), time.Since(start), m.objValue)
	return nil
}

func (m *SimplexModel) fail(status Status, err error) error {
	solveFailures.Add(1)
	m.status = status
	m.values = nil
	return &UnsolvableModelError{Status: status, Err: err}
}

func (m *SimplexModel) checkTime(ctx context.Context, start time.Time) error {
	elapsed := time.Since(start)
	if err := ctx.Err(); err != nil {
		return &EngineTimeoutError{Limit: m.opts.TimeLimit, Elapsed: elapsed, Err: err}
	}
	if m.opts.TimeLimit > 0 && elapsed > m.opts.TimeLimit {
		return &EngineTimeoutError{Limit: m.opts.TimeLimit, Elapsed: elapsed}
	}
	return nil
}

// fractional returns the first integer variable whose value is not
// integral, or -1.
func (m *SimplexModel) fractional(x []float64) int {
	for j, v := range m.vars {
		if v.kind != Integer {
			continue
		}
		if math.Abs(x[j]-math.Round(x[j])) > m.opts.IntegralityTolerance {
			return j
		}
	}
	return -1
}

func (m *SimplexModel) evalObjective(x []float64) float64 {
	obj := m.objective.Constant
	for _, t := range m.objective.Terms {
		obj += t.Coef * x[t.Var]
	}
	return obj
}

// solveRelaxation solves the linear relaxation of the model with the
// given variable bounds.
func (m *SimplexModel) solveRelaxation(lb, ub []float64) (x []float64, obj float64, status Status, err error) {
	relaxations.Add(1)
	sf, status := m.standardForm(lb, ub)
	if status != NotSolved {
		return nil, 0, status, nil
	}

	x = make([]float64, len(m.vars))
	copy(x, lb)
	if sf.rows > 0 {
		optX, status, err := sf.solve(m.opts.Tolerance)
		if status != Optimal {
			return nil, 0, status, err
		}
		for j, col := range sf.cols {
			if col >= 0 {
				x[j] += optX[col]
			}
		}
	}

	return x, m.evalObjective(x), Optimal, nil
}

// standardForm is the problem
//   minimize c'y s.t. Ay = b, y >= 0
// over the free variables shifted by their lower bounds, plus slacks.
type standardForm struct {
	rows, ncols int
	a           []float64
	b           []float64
	c           []float64
	// cols maps model variables to columns, or -1 for fixed variables.
	cols []int
}

type sfRow struct {
	terms []Term
	slack float64
	rhs   float64
}

// standardForm converts the model. It returns a status other than
// NotSolved if the bounds alone determine the outcome.
func (m *SimplexModel) standardForm(lb, ub []float64) (*standardForm, Status) {
	tol := m.opts.Tolerance
	cost := make([]float64, len(m.vars))
	for _, t := range m.objective.Terms {
		cost[t.Var] -= t.Coef
	}

	sf := &standardForm{cols: make([]int, len(m.vars))}
	free := make([]bool, len(m.vars))
	for j := range m.vars {
		if lb[j] > ub[j]+tol {
			return nil, Infeasible
		}
		free[j] = ub[j]-lb[j] > tol
	}

	var rows []sfRow
	used := make([]bool, len(m.vars))
	for _, c := range m.cons {
		rhs := c.rhs
		var terms []Term
		for _, t := range c.terms {
			rhs -= t.Coef * lb[t.Var]
			if free[t.Var] {
				terms = append(terms, t)
			}
		}

		if len(terms) == 0 {
			if (c.sense == LessEqual && rhs < -tol) ||
				(c.sense == GreaterEqual && rhs > tol) ||
				(c.sense == Equal && math.Abs(rhs) > tol) {
				return nil, Infeasible
			}
			continue
		}

		row := sfRow{terms: terms, rhs: rhs}
		switch c.sense {
		case LessEqual:
			row.slack = 1
		case GreaterEqual:
			row.slack = -1
		}
		for _, t := range terms {
			used[t.Var] = true
		}
		rows = append(rows, row)
	}

	for j := range m.vars {
		if !free[j] {
			continue
		}
		if !math.IsInf(ub[j], 1) {
			rows = append(rows, sfRow{
				terms: []Term{{Var: Var(j), Coef: 1}},
				slack: 1,
				rhs:   ub[j] - lb[j],
			})
			used[j] = true
		} else if !used[j] {
			// An unconstrained variable sits at its lower bound unless
			// increasing it improves the objective without limit.
			if cost[j] < -tol {
				return nil, Unbounded
			}
			free[j] = false
		}
	}

	for j := range m.vars {
		sf.cols[j] = -1
		if free[j] {
			sf.cols[j] = sf.ncols
			sf.ncols++
		}
	}
	nStructural := sf.ncols
	for _, r := range rows {
		if r.slack != 0 {
			sf.ncols++
		}
	}

	sf.rows = len(rows)
	sf.a = make([]float64, sf.rows*sf.ncols)
	sf.b = make([]float64, sf.rows)
	sf.c = make([]float64, sf.ncols)
	for j, col := range sf.cols {
		if col >= 0 {
			sf.c[col] = cost[j]
		}
	}

	slackCol := nStructural
	for i, r := range rows {
		sign := 1.0
		if r.rhs < 0 {
			sign = -1.0
		}
		for _, t := range r.terms {
			sf.a[i*sf.ncols+sf.cols[t.Var]] += sign * t.Coef
		}
		if r.slack != 0 {
			sf.a[i*sf.ncols+slackCol] = sign * r.slack
			slackCol++
		}
		sf.b[i] = sign * r.rhs
	}

	return sf, NotSolved
}

func (sf *standardForm) solve(tol float64) (optX []float64, status Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			optX, status, err = nil, Failed, fmt.Errorf("simplex panicked: %v", r)
		}
	}()

	a := mat.NewDense(sf.rows, sf.ncols, sf.a)
	_, optX, err = golp.Simplex(sf.c, a, sf.b, tol, nil)
	switch errors.Cause(err) {
	case nil:
		return optX, Optimal, nil
	case golp.ErrInfeasible:
		return nil, Infeasible, err
	case golp.ErrUnbounded:
		return nil, Unbounded, err
	default:
		return nil, Failed, errors.Wrap(err, "simplex")
	}
}
