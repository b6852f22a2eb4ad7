package efg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/timpalpant/efg/gamestate"
)

func quote(s string) string {
	s = strings.Replace(s, `\`, `\\`, -1)
	s = strings.Replace(s, `"`, `\"`, -1)
	return `"` + s + `"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type writeFrame struct {
	id    int
	depth int
}

// WriteTo writes the game in the format read by Parse, indenting each
// node by its depth.
func (g *Game) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	fmt.Fprintf(cw, "EFG 2 R %s { %s %s } %d %d %d\n",
		quote(g.Title), quote(g.PlayerNames[gamestate.Player1]), quote(g.PlayerNames[gamestate.Player2]),
		len(g.nodes), g.numInfoSets[gamestate.Player1], g.numInfoSets[gamestate.Player2])

	stack := []writeFrame{{id: g.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &g.nodes[f.id]

		cw.WriteString(strings.Repeat("  ", f.depth))
		switch n.Type {
		case gamestate.ChanceNode:
			fmt.Fprintf(cw, "c %s %d {", quote(n.Name), n.ID)
			for _, a := range n.Actions {
				fmt.Fprintf(cw, " %s %s", quote(a.Name), formatFloat(a.Probability))
			}
			cw.WriteString(" }\n")
		case gamestate.PlayerNode:
			fmt.Fprintf(cw, "p %s %d %d %d {", quote(n.Name), n.ID, n.Player.Number(), n.InfoSet)
			for _, a := range n.Actions {
				fmt.Fprintf(cw, " %s", quote(a.Name))
			}
			cw.WriteString(" }\n")
		case gamestate.TerminalNode:
			fmt.Fprintf(cw, "t %s %d %s { %s %s }\n", quote(n.Name), n.ID, quote(""),
				formatFloat(n.Payoffs[gamestate.Player1]), formatFloat(n.Payoffs[gamestate.Player2]))
		}

		for i := len(n.Actions) - 1; i >= 0; i-- {
			stack = append(stack, writeFrame{id: n.Actions[i].Child, depth: f.depth + 1})
		}
	}

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

func (g *Game) String() string {
	var sb strings.Builder
	g.WriteTo(&sb)
	return sb.String()
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}

func (cw *countingWriter) WriteString(s string) (int, error) {
	return cw.Write([]byte(s))
}
