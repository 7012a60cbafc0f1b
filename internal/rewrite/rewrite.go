// Package rewrite migrates a parsed JUnit 4 test source tree to JUnit 5 in
// a single pass.
//
// A Rewriter is immutable once built and may be shared by goroutines; each
// Rewrite call owns the tree it is given for the duration of the call.
package rewrite

import (
	"errors"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

// Suppressor reports whether a rule is switched off for a source line,
// typically by a nomigrate comment.
type Suppressor interface {
	IsSuppressed(rule string, line int) bool
}

// Rewriter applies the migration rules that are not disabled.
type Rewriter struct {
	disabled map[string]bool
}

// New returns a Rewriter with the given rules turned off.
func New(disabled ...string) *Rewriter {
	r := &Rewriter{disabled: make(map[string]bool, len(disabled))}
	for _, rule := range disabled {
		r.disabled[rule] = true
	}
	return r
}

// Enabled reports whether rule runs.
func (r *Rewriter) Enabled(rule string) bool {
	return !r.disabled[rule]
}

// Applied records one successful node transformation.
type Applied struct {
	Rule   string
	Pos    tree.Position
	Detail string
}

// Result summarizes one pass over a tree.
type Result struct {
	// Mutations counts structural changes, injected imports included.
	Mutations int
	// Injected lists the static imports added to the file, in order.
	Injected []string
	Applied  []Applied
	Failures []*Failure
}

// Changed reports whether the pass modified the tree.
func (r *Result) Changed() bool {
	return r.Mutations > 0
}

// Err joins the failures of the pass, or returns nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// pass holds the state of a single Rewrite call.
type pass struct {
	r    *Rewriter
	t    *tree.Tree
	sup  Suppressor
	file tree.NodeID
	res  *Result
}

// Rewrite migrates t in place and reports what happened. sup may be nil.
// Malformed nodes are left untouched and reported in Result.Failures; the
// rest of the tree is still rewritten.
func (r *Rewriter) Rewrite(t *tree.Tree, sup Suppressor) *Result {
	p := &pass{
		r:   r,
		t:   t,
		sup: sup,
		res: &Result{},
	}
	root := t.Root()
	if !root.IsValid() {
		return p.res
	}
	if t.Kind(root) == tree.KindFile {
		p.file = root
	}
	p.visit(root)
	return p.res
}

func (p *pass) allowed(rule string, id tree.NodeID) bool {
	if !p.r.Enabled(rule) {
		return false
	}
	if p.sup != nil {
		if pos := p.t.Node(id).Pos; pos.IsValid() && p.sup.IsSuppressed(rule, pos.Line) {
			return false
		}
	}
	return true
}

// replace swaps old for repl, carrying the source position over so later
// reports point at the original code.
func (p *pass) replace(old, repl tree.NodeID) {
	on, rn := p.t.Node(old), p.t.Node(repl)
	rn.Pos, rn.End = on.Pos, on.End
	p.t.Replace(old, repl)
}

func (p *pass) applied(rule string, id tree.NodeID, detail string) {
	p.res.Mutations++
	p.res.Applied = append(p.res.Applied, Applied{
		Rule:   rule,
		Pos:    p.t.Node(id).Pos,
		Detail: detail,
	})
}

func (p *pass) fail(kind FailureKind, rule string, id tree.NodeID, detail string) *Failure {
	return &Failure{
		Kind:   kind,
		Rule:   rule,
		Node:   id,
		Pos:    p.t.Node(id).Pos,
		Detail: detail,
	}
}
