package exec

import (
	"fmt"

	"github.com/pterm/pterm"
)

// RenderTrace prints the recorded walk trace as a pterm tree, one node per
// dispatch, nested by Depth — the same tree-of-s-expressions idiom used for
// rendering parse state elsewhere in the pack, applied here to a flat
// (rule id, position, outcome) trace instead of an AST.
func RenderTrace(trace []TraceEntry) {
	if len(trace) == 0 {
		return
	}
	root := pterm.TreeNode{Text: "walk trace"}
	stack := []*pterm.TreeNode{&root}
	for _, e := range trace {
		node := pterm.TreeNode{Text: traceLabel(e)}
		depth := e.Depth
		if depth < 0 {
			depth = 0
		}
		if depth+1 > len(stack) {
			depth = len(stack) - 1
		}
		parent := stack[depth]
		parent.Children = append(parent.Children, node)
		stack = stack[:depth+1]
		stack = append(stack, &parent.Children[len(parent.Children)-1])
	}
	pterm.DefaultTree.WithRoot(root).Render()
}

func traceLabel(e TraceEntry) string {
	status := "ok"
	if !e.OK {
		status = "fail"
	}
	return fmt.Sprintf("rule#%d @%d len=%d %s", e.RuleID, e.Position, e.Length, status)
}
