package dx7

import (
	"fmt"
	"strings"
)

// Topology describes how one of the 32 algorithms routes the operators.
// Operators are numbered 1..6 as on the synth.
type Topology struct {
	Carriers []int    // operators heard at the output
	Edges    [][2]int // modulator, modulated operator
	Feedback [2]int   // feedback loop from, to (the same operator unless the loop spans several)
}

// Modulators returns the operators that modulate op, in ascending order.
func (t *Topology) Modulators(op int) []int {
	var mods []int
	for _, e := range t.Edges {
		if e[1] == op {
			mods = append(mods, e[0])
		}
	}
	return mods
}

// IsCarrier reports whether op is a carrier.
func (t *Topology) IsCarrier(op int) bool {
	for _, c := range t.Carriers {
		if c == op {
			return true
		}
	}
	return false
}

// Format renders the topology as one expression per carrier chain joined by
// " + ", using arrow between a modulator and its target. The operator with
// feedback is written as FB(n). For example algorithm 1 with arrow "->" is
//
//	2->1 + FB(6)->5->4->3
func (t *Topology) Format(arrow string) string {
	chains := make([]string, len(t.Carriers))
	for i, c := range t.Carriers {
		chains[i] = t.expr(c, arrow)
	}
	s := strings.Join(chains, " + ")
	if from, to := t.Feedback[0], t.Feedback[1]; from != to {
		s += fmt.Sprintf("  (feedback %d%s%d)", from, arrow, to)
	}
	return s
}

func (t *Topology) expr(op int, arrow string) string {
	name := fmt.Sprint(op)
	if op == t.Feedback[1] {
		name = fmt.Sprintf("FB(%d)", op)
	}
	mods := t.Modulators(op)
	switch len(mods) {
	case 0:
		return name
	case 1:
		return t.expr(mods[0], arrow) + arrow + name
	default:
		parts := make([]string, len(mods))
		for i, m := range mods {
			parts[i] = t.expr(m, arrow)
		}
		return "(" + strings.Join(parts, " + ") + ")" + arrow + name
	}
}

// AlgorithmTopology returns the routing of algorithm alg (0-based, as stored).
func AlgorithmTopology(alg byte) (*Topology, bool) {
	if alg > MaxAlgorithm {
		return nil, false
	}
	return &algorithms[alg], true
}

func fb(op int) [2]int { return [2]int{op, op} }

var algorithms = [32]Topology{
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 4}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 4}, {6, 5}}, Feedback: fb(2)},
	{Carriers: []int{1, 4}, Edges: [][2]int{{2, 1}, {3, 2}, {5, 4}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 4}, Edges: [][2]int{{2, 1}, {3, 2}, {5, 4}, {6, 5}}, Feedback: [2]int{4, 6}},
	{Carriers: []int{1, 3, 5}, Edges: [][2]int{{2, 1}, {4, 3}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 3, 5}, Edges: [][2]int{{2, 1}, {4, 3}, {6, 5}}, Feedback: [2]int{5, 6}},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 3}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 3}, {6, 5}}, Feedback: fb(4)},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 3}, {6, 5}}, Feedback: fb(2)},
	{Carriers: []int{1, 4}, Edges: [][2]int{{2, 1}, {3, 2}, {5, 4}, {6, 4}}, Feedback: fb(3)},
	{Carriers: []int{1, 4}, Edges: [][2]int{{2, 1}, {3, 2}, {5, 4}, {6, 4}}, Feedback: fb(6)},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 3}, {6, 3}}, Feedback: fb(2)},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 3}, {6, 3}}, Feedback: fb(6)},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 4}, {6, 4}}, Feedback: fb(6)},
	{Carriers: []int{1, 3}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 4}, {6, 4}}, Feedback: fb(2)},
	{Carriers: []int{1}, Edges: [][2]int{{2, 1}, {3, 1}, {4, 3}, {5, 1}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1}, Edges: [][2]int{{2, 1}, {3, 1}, {4, 3}, {5, 1}, {6, 5}}, Feedback: fb(2)},
	{Carriers: []int{1}, Edges: [][2]int{{2, 1}, {3, 1}, {4, 1}, {5, 4}, {6, 5}}, Feedback: fb(3)},
	{Carriers: []int{1, 4, 5}, Edges: [][2]int{{2, 1}, {3, 2}, {6, 4}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 4}, Edges: [][2]int{{3, 1}, {3, 2}, {5, 4}, {6, 4}}, Feedback: fb(3)},
	{Carriers: []int{1, 2, 4, 5}, Edges: [][2]int{{3, 1}, {3, 2}, {6, 4}, {6, 5}}, Feedback: fb(3)},
	{Carriers: []int{1, 3, 4, 5}, Edges: [][2]int{{2, 1}, {6, 3}, {6, 4}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 4, 5}, Edges: [][2]int{{3, 2}, {6, 4}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 3, 4, 5}, Edges: [][2]int{{6, 3}, {6, 4}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 3, 4, 5}, Edges: [][2]int{{6, 4}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 4}, Edges: [][2]int{{3, 2}, {5, 4}, {6, 4}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 4}, Edges: [][2]int{{3, 2}, {5, 4}, {6, 4}}, Feedback: fb(3)},
	{Carriers: []int{1, 3, 6}, Edges: [][2]int{{2, 1}, {4, 3}, {5, 4}}, Feedback: fb(5)},
	{Carriers: []int{1, 2, 3, 5}, Edges: [][2]int{{4, 3}, {6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 3, 6}, Edges: [][2]int{{4, 3}, {5, 4}}, Feedback: fb(5)},
	{Carriers: []int{1, 2, 3, 4, 5}, Edges: [][2]int{{6, 5}}, Feedback: fb(6)},
	{Carriers: []int{1, 2, 3, 4, 5, 6}, Feedback: fb(6)},
}
