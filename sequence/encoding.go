// Package sequence encodes the sequence form of a two-player game tree:
// the sequences of each player and the payoffs of every pair of
// sequences that lead to a leaf together.
package sequence

import (
	"fmt"

	"github.com/timpalpant/efg/gamestate"
)

// Root is the id of every player's empty sequence.
const Root = 0

// RootName is the name of the empty sequence.
const RootName = "root"

// Key identifies a sequence by the information set it extends and the
// name of the action taken there.
type Key struct {
	InfoSet int
	Action  string
}

func (k Key) String() string {
	return fmt.Sprintf("%d;%s", k.InfoSet, k.Action)
}

// Cell accumulates the leaves reached by a pair of dual and primal
// sequences.
type Cell struct {
	Dual   int
	Primal int
	// PrimalPayoff and DualPayoff are sums of nature-weighted leaf
	// payoffs of the solving and the dual player.
	PrimalPayoff float64
	DualPayoff   float64
	// Count is the number of leaves merged into the cell.
	Count int
}

func (c *Cell) AveragePrimal() float64 {
	return c.PrimalPayoff / float64(c.Count)
}

func (c *Cell) AverageDual() float64 {
	return c.DualPayoff / float64(c.Count)
}

// InfoSetEntry describes an information set reached through enabled
// actions.
type InfoSetEntry struct {
	ID int
	// Parent is the player's own sequence leading into the information set.
	Parent int
	// Sequences are the enabled sequences extending the information set,
	// one per distinct action name, in action order.
	Sequences []int
}

type sequenceInfo struct {
	name      string
	infoSet   int
	action    string
	symmetric int
}

type playerSequences struct {
	ids       map[Key]int
	byInfoSet map[int][]int
	parents   map[int]int
	seqs      []sequenceInfo
	reached   []InfoSetEntry
}

func newPlayerSequences() playerSequences {
	return playerSequences{
		ids:       make(map[Key]int),
		byInfoSet: make(map[int][]int),
		parents:   make(map[int]int),
		seqs:      []sequenceInfo{{name: RootName, infoSet: -1, symmetric: 1}},
	}
}

// Encoding is the sequence form of a game for one solving player.
type Encoding struct {
	Solving gamestate.Player
	Dual    gamestate.Player

	players      [gamestate.NumPlayers]playerSequences
	numNature    int
	dualInfoSets [][]int
	cells        []Cell
	cellIndex    map[[2]int]int
}

func (e *Encoding) NumSequences(p gamestate.Player) int {
	return len(e.players[p].seqs)
}

func (e *Encoding) NumNatureSequences() int {
	return e.numNature
}

// ID returns the sequence of p that takes action in infoSet.
func (e *Encoding) ID(p gamestate.Player, infoSet int, action string) (int, bool) {
	id, ok := e.players[p].ids[Key{infoSet, action}]
	return id, ok
}

// Sequences returns the sequences extending p's information set, one per
// distinct action name, in action order.
func (e *Encoding) Sequences(p gamestate.Player, infoSet int) []int {
	return e.players[p].byInfoSet[infoSet]
}

// Name returns the sequence formatted as "infoSet;action".
func (e *Encoding) Name(p gamestate.Player, seq int) string {
	return e.players[p].seqs[seq].name
}

// InfoSetOf returns the information set a sequence extends, or -1 for
// the root sequence.
func (e *Encoding) InfoSetOf(p gamestate.Player, seq int) int {
	return e.players[p].seqs[seq].infoSet
}

func (e *Encoding) ActionOf(p gamestate.Player, seq int) string {
	return e.players[p].seqs[seq].action
}

// SymmetricCount returns the number of actions of the sequence's
// information set that share its name.
func (e *Encoding) SymmetricCount(p gamestate.Player, seq int) int {
	return e.players[p].seqs[seq].symmetric
}

// ParentOf returns p's own sequence leading into infoSet.
func (e *Encoding) ParentOf(p gamestate.Player, infoSet int) (int, bool) {
	seq, ok := e.players[p].parents[infoSet]
	return seq, ok
}

// DualInfoSets returns the dual player's information sets directly
// beneath a dual sequence.
func (e *Encoding) DualInfoSets(seq int) []int {
	if seq >= len(e.dualInfoSets) {
		return nil
	}
	return e.dualInfoSets[seq]
}

// Reached returns p's information sets reached through enabled actions,
// in pre-order of first visit.
func (e *Encoding) Reached(p gamestate.Player) []InfoSetEntry {
	return e.players[p].reached
}

// Cells returns the payoff cells in the order they were first reached.
func (e *Encoding) Cells() []Cell {
	return e.cells
}

// Cell returns the payoff cell of a pair of sequences.
func (e *Encoding) Cell(dual, primal int) (*Cell, bool) {
	idx, ok := e.cellIndex[[2]int{dual, primal}]
	if !ok {
		return nil, false
	}
	return &e.cells[idx], true
}

func (e *Encoding) addLeaf(dual, primal int, primalPayoff, dualPayoff float64) {
	key := [2]int{dual, primal}
	idx, ok := e.cellIndex[key]
	if !ok {
		idx = len(e.cells)
		e.cellIndex[key] = idx
		e.cells = append(e.cells, Cell{Dual: dual, Primal: primal})
	}

	c := &e.cells[idx]
	c.PrimalPayoff += primalPayoff
	c.DualPayoff += dualPayoff
	c.Count++
}
