package rewrite

import (
	"fmt"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

// renameAnnotation applies the generic rename path shared by all three
// annotation shapes. Every renamed annotation is argument-free in Jupiter,
// so the replacement is always a marker. It reports whether it fired.
func (p *pass) renameAnnotation(id tree.NodeID) bool {
	n := p.t.Node(id)
	target, ok := Lookup(n.Name)
	if !ok || !p.allowed(RuleAnnotationRename, id) {
		return false
	}
	p.replace(id, p.t.NewMarker(target))
	p.applied(RuleAnnotationRename, id, "@"+n.Name+" -> @"+target)
	return true
}

// rewriteMarker handles @Name. The table rename and the Ignore rule resolve
// to a single replacement.
func (p *pass) rewriteMarker(id tree.NodeID) {
	if p.renameAnnotation(id) {
		return
	}
	if p.t.Node(id).Name != disableSource || !p.allowed(RuleIgnoreDisabled, id) {
		return
	}
	p.replace(id, p.t.NewMarker(disableTarget))
	p.applied(RuleIgnoreDisabled, id, "@"+disableSource+" -> @"+disableTarget)
}

// rewriteSingleValue handles @Name(value). @Ignore("reason") keeps its
// reason; any other value shape is rejected.
func (p *pass) rewriteSingleValue(id tree.NodeID) {
	if p.renameAnnotation(id) {
		return
	}
	if p.t.Node(id).Name != disableSource || !p.allowed(RuleIgnoreDisabled, id) {
		return
	}
	value := p.t.Child(id, 0)
	if !value.IsValid() || p.t.Kind(value) != tree.KindStringLiteral {
		p.res.Failures = append(p.res.Failures,
			p.fail(MalformedAnnotationValue, RuleIgnoreDisabled, id, describe(p.t, value)))
		return
	}
	lit := p.t.NewStringLiteral(p.t.Node(value).Text)
	p.replace(id, p.t.NewSingleValue(disableTarget, lit))
	p.applied(RuleIgnoreDisabled, id, "@"+disableSource+"(...) -> @"+disableTarget+"(...)")
}

// rewriteKeyValue handles @Name(k = v, ...). Only @Test attributes are
// expanded; the pairs are validated before anything is mutated.
func (p *pass) rewriteKeyValue(id tree.NodeID) {
	if p.renameAnnotation(id) {
		return
	}
	if p.t.Node(id).Name != testSource || !p.allowed(RuleTestAttributes, id) {
		return
	}

	wraps, failures := p.planWraps(id)
	if len(failures) > 0 {
		p.res.Failures = append(p.res.Failures, failures...)
		return
	}

	if len(wraps) > 0 {
		body := p.bodyOf(id)
		if !body.IsValid() {
			p.res.Failures = append(p.res.Failures,
				p.fail(MissingMethodBody, RuleTestAttributes, id, "no block next to @"+testSource))
			return
		}
		for _, w := range wraps {
			w.apply(p, body)
		}
	}

	p.replace(id, p.t.NewMarker(testTarget))
	p.applied(RuleTestAttributes, id, fmt.Sprintf("@%s(...) -> @%s, %d wrap(s)", testSource, testTarget, len(wraps)))
}

// planWraps turns the recognized pairs into wraps, in declaration order.
// Unknown keys are skipped.
func (p *pass) planWraps(id tree.NodeID) ([]wrap, []*Failure) {
	var (
		wraps    []wrap
		failures []*Failure
	)
	for _, pair := range p.t.Children(id) {
		if p.t.Kind(pair) != tree.KindMemberValuePair {
			continue
		}
		value := p.t.Child(pair, 0)
		switch p.t.Node(pair).Name {
		case timeoutKey:
			w, err := timeoutWrap(p.t, value)
			if err != nil {
				failures = append(failures, p.fail(InvalidTimeoutValue, RuleTestAttributes, pair, err.Error()))
				continue
			}
			wraps = append(wraps, w)
		case expectedKey:
			w, err := expectedWrap(p.t, value)
			if err != nil {
				failures = append(failures, p.fail(InvalidExpectedType, RuleTestAttributes, pair, err.Error()))
				continue
			}
			wraps = append(wraps, w)
		}
	}
	return wraps, failures
}

// bodyOf finds the method body next to an annotation: the first block among
// the direct children of the annotation's parent.
func (p *pass) bodyOf(annotation tree.NodeID) tree.NodeID {
	parent := p.t.Parent(annotation)
	if !parent.IsValid() {
		return tree.NoNode
	}
	for _, c := range p.t.Children(parent) {
		if p.t.Kind(c) == tree.KindBlock {
			return c
		}
	}
	return tree.NoNode
}

func describe(t *tree.Tree, id tree.NodeID) string {
	if !id.IsValid() {
		return "missing value"
	}
	return "got " + t.Kind(id).String()
}
