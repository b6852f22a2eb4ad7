// Package lp defines the linear (and mixed-integer) programming models
// used by the solver, and a backend based on gonum's simplex method.
package lp

import (
	"context"
	"time"
)

type VarKind uint8

const (
	Continuous VarKind = iota
	// Integer variables take integral values within their bounds.
	Integer
)

// Var is a handle to a variable of a Model.
type Var int

type Term struct {
	Var  Var
	Coef float64
}

// Expr is a linear expression: a sum of terms plus a constant.
type Expr struct {
	Terms    []Term
	Constant float64
}

// VarExpr returns the expression consisting of v alone.
func VarExpr(v Var) Expr {
	return Expr{Terms: []Term{{Var: v, Coef: 1}}}
}

// Constant returns a constant expression.
func Constant(c float64) Expr {
	return Expr{Constant: c}
}

// Add adds coef*v to e.
func (e *Expr) Add(coef float64, v Var) *Expr {
	e.Terms = append(e.Terms, Term{Var: v, Coef: coef})
	return e
}

func (e *Expr) AddConstant(c float64) *Expr {
	e.Constant += c
	return e
}

// AddExpr adds coef*o to e.
func (e *Expr) AddExpr(coef float64, o Expr) *Expr {
	for _, t := range o.Terms {
		e.Terms = append(e.Terms, Term{Var: t.Var, Coef: coef * t.Coef})
	}
	e.Constant += coef * o.Constant
	return e
}

type Sense uint8

const (
	LessEqual Sense = iota
	Equal
	GreaterEqual
)

var senseStr = [...]string{"<=", "=", ">="}

func (s Sense) String() string {
	return senseStr[s]
}

type Status uint8

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
	Failed
	TimedOut
)

var statusStr = [...]string{
	"NotSolved",
	"Optimal",
	"Infeasible",
	"Unbounded",
	"Failed",
	"TimedOut",
}

func (s Status) String() string {
	return statusStr[s]
}

// Model is a maximization problem over bounded variables.
// Models are not safe for concurrent use.
type Model interface {
	// NewVar adds a variable with bounds lb <= v <= ub. ub may be +Inf.
	NewVar(lb, ub float64, kind VarKind, name string) Var
	// AddConstraint adds the constraint lhs (sense) rhs.
	AddConstraint(name string, lhs Expr, sense Sense, rhs Expr)
	Maximize(objective Expr)
	// Solve optimizes the model. Failures are reported as
	// *UnsolvableModelError or *EngineTimeoutError, in which case
	// no values are available.
	Solve(ctx context.Context) error
	Status() Status
	// Value returns the value of v in the last successful solve.
	Value(v Var) float64
	ObjectiveValue() float64
	NumVars() int
	NumConstraints() int
}

func AddEq(m Model, name string, lhs, rhs Expr) {
	m.AddConstraint(name, lhs, Equal, rhs)
}

func AddLe(m Model, name string, lhs, rhs Expr) {
	m.AddConstraint(name, lhs, LessEqual, rhs)
}

func AddGe(m Model, name string, lhs, rhs Expr) {
	m.AddConstraint(name, lhs, GreaterEqual, rhs)
}

type Options struct {
	// Tolerance is passed to the simplex method.
	Tolerance float64
	// IntegralityTolerance is how far from an integer an integer
	// variable may be and still be considered integral.
	IntegralityTolerance float64
	// TimeLimit bounds the wall-clock time of Solve. Zero means no limit.
	TimeLimit time.Duration
}

func DefaultOptions() Options {
	return Options{
		Tolerance:            1e-10,
		IntegralityTolerance: 1e-6,
	}
}
