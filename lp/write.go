package lp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
)

func (m *SimplexModel) varName(v Var) string {
	if name := m.vars[v].name; name != "" {
		return name
	}
	return "v" + strconv.Itoa(int(v))
}

func (m *SimplexModel) writeTerms(w io.Writer, terms []Term) {
	if len(terms) == 0 {
		fmt.Fprint(w, " 0")
	}
	for _, t := range terms {
		sign := "+"
		coef := t.Coef
		if coef < 0 {
			sign = "-"
			coef = -coef
		}
		fmt.Fprintf(w, " %s %s %s", sign, strconv.FormatFloat(coef, 'g', -1, 64), m.varName(t.Var))
	}
}

// WriteTo writes the model in CPLEX LP format.
func (m *SimplexModel) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	fmt.Fprintln(cw, "Maximize")
	fmt.Fprint(cw, " obj:")
	m.writeTerms(cw, m.objective.Terms)
	if m.objective.Constant != 0 {
		fmt.Fprintf(cw, " + %s", strconv.FormatFloat(m.objective.Constant, 'g', -1, 64))
	}
	fmt.Fprintln(cw)

	fmt.Fprintln(cw, "Subject To")
	for i, c := range m.cons {
		name := c.name
		if name == "" {
			name = "c" + strconv.Itoa(i)
		}
		fmt.Fprintf(cw, " %s:", name)
		m.writeTerms(cw, c.terms)
		fmt.Fprintf(cw, " %v %s\n", c.sense, strconv.FormatFloat(c.rhs, 'g', -1, 64))
	}

	fmt.Fprintln(cw, "Bounds")
	var integers []Var
	for j, v := range m.vars {
		ub := "+inf"
		if !math.IsInf(v.ub, 1) {
			ub = strconv.FormatFloat(v.ub, 'g', -1, 64)
		}
		fmt.Fprintf(cw, " %s <= %s <= %s\n", strconv.FormatFloat(v.lb, 'g', -1, 64), m.varName(Var(j)), ub)
		if v.kind == Integer {
			integers = append(integers, Var(j))
		}
	}

	if len(integers) > 0 {
		fmt.Fprintln(cw, "Generals")
		for _, v := range integers {
			fmt.Fprintf(cw, " %s\n", m.varName(v))
		}
	}
	fmt.Fprintln(cw, "End")

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

type countingWriter struct {
	w   io.Writer
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
