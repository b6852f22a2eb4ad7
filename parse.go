package efg

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/efg/gamestate"
)

// Chance probabilities must sum to one within this tolerance.
const probabilityTolerance = 1e-4

type token struct {
	text   string
	quoted bool
}

func (t token) is(s string) bool {
	return !t.quoted && t.text == s
}

// tokenize splits a line on whitespace, treating double-quoted strings
// (with backslash escapes) as single tokens.
func tokenize(line string, lineNo int) ([]token, error) {
	var tokens []token
	var sb strings.Builder
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '"':
			sb.Reset()
			i++
			closed := false
			for i < len(line) {
				if line[i] == '\\' && i+1 < len(line) {
					sb.WriteByte(line[i+1])
					i += 2
					continue
				}
				if line[i] == '"' {
					closed = true
					i++
					break
				}
				sb.WriteByte(line[i])
				i++
			}
			if !closed {
				return nil, parseErrorf(lineNo, "unterminated string")
			}
			tokens = append(tokens, token{text: sb.String(), quoted: true})
		default:
			start := i
			for i < len(line) && line[i] != ' ' && line[i] != '\t' && line[i] != '\r' && line[i] != '"' {
				i++
			}
			tokens = append(tokens, token{text: line[start:i]})
		}
	}
	return tokens, nil
}

// LoadFile parses the game stored in the named file.
func LoadFile(filename string) (*Game, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	return g, nil
}

type parseFrame struct {
	id   int
	next int
}

// Parse reads a game tree in extensive-form game format.
// Nodes must appear in pre-order: the children of a node are the
// subtrees that follow it, in the order of its actions.
func Parse(r io.Reader) (*Game, error) {
	g := &Game{}
	var seen []bool
	var stack []parseFrame
	haveHeader := false
	haveRoot := false
	numParsed := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens, err := tokenize(line, lineNo)
		if err != nil {
			return nil, err
		}

		if !haveHeader {
			if err := g.parseHeader(tokens, lineNo); err != nil {
				return nil, err
			}
			seen = make([]bool, len(g.nodes))
			haveHeader = true
			continue
		}

		node, err := parseNode(tokens, lineNo)
		if err != nil {
			return nil, err
		}
		if node.ID < 0 || node.ID >= len(g.nodes) {
			return nil, parseErrorf(lineNo, "node id %d out of range [0, %d)", node.ID, len(g.nodes))
		}
		if seen[node.ID] {
			return nil, parseErrorf(lineNo, "duplicate node id %d", node.ID)
		}
		seen[node.ID] = true
		numParsed++
		g.nodes[node.ID] = *node

		if len(stack) == 0 {
			if haveRoot {
				return nil, parseErrorf(lineNo, "node %d is not reachable from the root", node.ID)
			}
			g.root = node.ID
			haveRoot = true
		} else {
			top := &stack[len(stack)-1]
			g.nodes[top.id].Actions[top.next].Child = node.ID
			top.next++
			if top.next == len(g.nodes[top.id].Actions) {
				stack = stack[:len(stack)-1]
			}
		}

		if !node.IsLeaf() {
			stack = append(stack, parseFrame{id: node.ID})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading game")
	}

	if !haveHeader {
		return nil, parseErrorf(0, "missing header")
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, parseErrorf(lineNo, "node %d is missing the subtree for action %d",
			top.id, top.next)
	}
	if numParsed != len(g.nodes) {
		return nil, parseErrorf(lineNo, "header declares %d nodes but %d were given",
			len(g.nodes), numParsed)
	}

	if err := g.finalize(); err != nil {
		return nil, err
	}

	glog.V(1).Infof("Parsed game %q: %d nodes, %d/%d information sets, %d/%d sequences",
		g.Title, len(g.nodes), g.numInfoSets[0], g.numInfoSets[1],
		g.numSequences[0], g.numSequences[1])
	return g, nil
}

// parseHeader parses:
//   EFG 2 R "title" { "player 1" "player 2" } numNodes numInfoSetsP1 numInfoSetsP2
func (g *Game) parseHeader(tokens []token, lineNo int) error {
	if len(tokens) != 11 || !tokens[0].is("EFG") || !tokens[1].is("2") ||
		!tokens[4].is("{") || !tokens[7].is("}") {
		return parseErrorf(lineNo, "malformed header")
	}

	g.Title = tokens[3].text
	g.PlayerNames[gamestate.Player1] = tokens[5].text
	g.PlayerNames[gamestate.Player2] = tokens[6].text

	numNodes, err := parseInt(tokens[8], lineNo)
	if err != nil {
		return err
	}
	if numNodes <= 0 {
		return parseErrorf(lineNo, "game must have at least one node")
	}
	g.nodes = make([]Node, numNodes)

	for p := range g.numInfoSets {
		n, err := parseInt(tokens[9+p], lineNo)
		if err != nil {
			return err
		}
		if n < 0 {
			return parseErrorf(lineNo, "negative information set count")
		}
		g.numInfoSets[p] = n
	}

	return nil
}

// braced returns the tokens between an opening brace at tokens[start]
// and a closing brace that must be the last token.
func braced(tokens []token, start int, lineNo int) ([]token, error) {
	if len(tokens) < start+2 || !tokens[start].is("{") || !tokens[len(tokens)-1].is("}") {
		return nil, parseErrorf(lineNo, "expected braced list at field %d", start+1)
	}
	return tokens[start+1 : len(tokens)-1], nil
}

func parseNode(tokens []token, lineNo int) (*Node, error) {
	if len(tokens) < 3 {
		return nil, parseErrorf(lineNo, "too few fields")
	}

	id, err := parseInt(tokens[2], lineNo)
	if err != nil {
		return nil, err
	}
	node := &Node{ID: id, Name: tokens[1].text}

	switch {
	case tokens[0].is("c"):
		node.Type = gamestate.ChanceNode
		list, err := braced(tokens, 3, lineNo)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 || len(list)%2 != 0 {
			return nil, parseErrorf(lineNo, "chance node %d: expected (action, probability) pairs", id)
		}

		total := 0.0
		for i := 0; i < len(list); i += 2 {
			p, err := parseFloat(list[i+1], lineNo)
			if err != nil {
				return nil, err
			}
			if p < 0 {
				return nil, parseErrorf(lineNo, "chance node %d: negative probability %v", id, p)
			}
			total += p
			node.Actions = append(node.Actions, Action{Name: list[i].text, Probability: p})
		}
		if math.Abs(total-1.0) > probabilityTolerance {
			return nil, parseErrorf(lineNo, "chance node %d: probabilities sum to %v", id, total)
		}
	case tokens[0].is("p"):
		node.Type = gamestate.PlayerNode
		if len(tokens) < 6 {
			return nil, parseErrorf(lineNo, "too few fields for player node")
		}
		n, err := parseInt(tokens[3], lineNo)
		if err != nil {
			return nil, err
		}
		node.Player, err = gamestate.PlayerFromNumber(n)
		if err != nil {
			return nil, parseErrorf(lineNo, "%v", err)
		}
		node.InfoSet, err = parseInt(tokens[4], lineNo)
		if err != nil {
			return nil, err
		}

		list, err := braced(tokens, 5, lineNo)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, parseErrorf(lineNo, "player node %d has no actions", id)
		}
		for _, t := range list {
			node.Actions = append(node.Actions, Action{Name: t.text})
		}
	case tokens[0].is("t"):
		node.Type = gamestate.TerminalNode
		if len(tokens) != 8 {
			return nil, parseErrorf(lineNo, "terminal node: expected 8 fields, got %d", len(tokens))
		}
		list, err := braced(tokens, 4, lineNo)
		if err != nil {
			return nil, err
		}
		for p := range node.Payoffs {
			node.Payoffs[p], err = parseFloat(list[p], lineNo)
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, parseErrorf(lineNo, "unknown node kind %q", tokens[0].text)
	}

	return node, nil
}

func parseInt(t token, lineNo int) (int, error) {
	v, err := strconv.Atoi(t.text)
	if err != nil || t.quoted {
		return 0, parseErrorf(lineNo, "expected integer, got %q", t.text)
	}
	return v, nil
}

func parseFloat(t token, lineNo int) (float64, error) {
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil || t.quoted || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, parseErrorf(lineNo, "expected number, got %q", t.text)
	}
	return v, nil
}
