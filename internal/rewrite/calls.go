package rewrite

import (
	"strings"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

var assumptionCalls = map[string]bool{
	"assumeTrue":  true,
	"assumeFalse": true,
}

// rewriteCall adapts Assume.assumeTrue/assumeFalse to Assumptions: the
// (condition, message) pair becomes (message, condition) and an explicit
// receiver is rebound to Assumptions.
//
// Calls without a receiver (static imports) keep no receiver.
func (p *pass) rewriteCall(id tree.NodeID) {
	n := p.t.Node(id)
	if !assumptionCalls[n.Name] || !p.allowed(RuleAssumptionCall, id) {
		return
	}
	recv := p.t.Receiver(id)
	if recv.IsValid() && isAssumptions(p.t, recv) {
		return
	}

	changed := false
	if args := p.t.Args(id); len(args) == 2 {
		first := 0
		if recv.IsValid() {
			first = 1
		}
		// comments between the arguments live in the gaps
		p.t.SwapChildren(id, first, first+1)
		changed = true
	}
	if recv.IsValid() {
		p.replace(recv, p.t.NewName(assumptionNamespace))
		changed = true
	}
	if changed {
		p.applied(RuleAssumptionCall, id, n.Name)
	}
}

// isAssumptions reports whether recv already names the Jupiter class.
func isAssumptions(t *tree.Tree, recv tree.NodeID) bool {
	n := t.Node(recv)
	if n.Kind != tree.KindName {
		return false
	}
	return n.Name == assumptionNamespace || strings.HasSuffix(n.Name, ".jupiter.api."+assumptionNamespace)
}
