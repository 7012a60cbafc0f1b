package nolint

import (
	"fmt"
	"math"
	"strings"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

const nomigratePrefix = "//nomigrate"

// comment tags produced by the Java parser.
const (
	lineCommentTag  = "line_comment"
	blockCommentTag = "block_comment"
	packageTag      = "package_declaration"
)

// Manager tracks nomigrate scopes and checks if a line is suppressed.
type Manager struct {
	scopes []scope
}

// scope represents a line range where nomigrate applies.
type scope struct {
	rules map[string]struct{}
	start int
	end   int
}

// ParseComments collects the nomigrate comments of t and returns a Manager.
//
// A comment before the package declaration covers the whole file. A
// comment that trails code on the same line covers that code. Any other
// comment covers itself and the node that follows it.
func ParseComments(t *tree.Tree) *Manager {
	m := &Manager{}
	root := t.Root()
	if !root.IsValid() {
		return m
	}
	t.Walk(root, func(id tree.NodeID) bool {
		if !isComment(t.Node(id)) {
			return true
		}
		sc, err := parseComment(t, id)
		if err != nil {
			// ignore malformed comments
			return false
		}
		m.scopes = append(m.scopes, sc)
		return false
	})
	return m
}

func isComment(n *tree.Node) bool {
	return n.Kind == tree.KindRaw && (n.Tag == lineCommentTag || n.Tag == blockCommentTag)
}

// commentText returns the source text of a comment leaf.
func commentText(n *tree.Node) string {
	if n.Text != "" {
		return n.Text
	}
	if len(n.Children) == 0 && len(n.Gaps) == 1 {
		return n.Gaps[0]
	}
	return ""
}

// directive strips comment markers and spacing: "// nomigrate:a" and
// "/* nomigrate:a */" both become "//nomigrate:a".
func directive(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	case strings.HasPrefix(text, "//"):
		text = strings.TrimPrefix(text, "//")
	default:
		return ""
	}
	return "//" + strings.TrimSpace(text)
}

func parseComment(t *tree.Tree, id tree.NodeID) (scope, error) {
	var sc scope
	text := directive(commentText(t.Node(id)))

	if !strings.HasPrefix(text, nomigratePrefix) {
		return sc, fmt.Errorf("not a nomigrate comment")
	}
	rest := text[len(nomigratePrefix):]

	// either a colon and a rule list, or nothing for every rule
	if len(rest) > 0 && rest[0] != ':' {
		return sc, fmt.Errorf("invalid nomigrate comment format")
	}
	if len(rest) > 0 {
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return sc, fmt.Errorf("invalid nomigrate comment: no rules specified after colon")
		}
	}
	sc.rules = parseRuleNames(rest)

	pos := t.Node(id).Pos
	parent := t.Parent(id)
	idx := t.IndexOf(parent, id)
	if idx < 0 {
		sc.start, sc.end = pos.Line, pos.Line
		return sc, nil
	}
	siblings := t.Children(parent)

	if parent == t.Root() && beforePackage(t, siblings, idx) {
		sc.start, sc.end = 1, lastLine(t)
		return sc, nil
	}

	if idx > 0 {
		prev := t.Node(siblings[idx-1])
		if prev.End.Line == pos.Line && !isComment(prev) {
			sc.start, sc.end = prev.Pos.Line, prev.End.Line
			return sc, nil
		}
	}

	for _, next := range siblings[idx+1:] {
		n := t.Node(next)
		if isComment(n) {
			continue
		}
		if n.Pos.IsValid() {
			sc.start, sc.end = pos.Line, n.End.Line
			return sc, nil
		}
		break
	}

	// nothing follows: the comment line only
	sc.start, sc.end = pos.Line, pos.Line
	return sc, nil
}

// beforePackage reports whether the comment at idx is preceded by comments
// only and followed by the package declaration.
func beforePackage(t *tree.Tree, siblings []tree.NodeID, idx int) bool {
	for _, id := range siblings[:idx] {
		if !isComment(t.Node(id)) {
			return false
		}
	}
	for _, id := range siblings[idx+1:] {
		n := t.Node(id)
		if isComment(n) {
			continue
		}
		return n.Kind == tree.KindRaw && n.Tag == packageTag
	}
	return false
}

func lastLine(t *tree.Tree) int {
	end := t.Node(t.Root()).End.Line
	if end == 0 {
		// synthesized trees carry no end position
		return math.MaxInt
	}
	return end
}

// parseRuleNames parses the rule list of a nomigrate comment.
func parseRuleNames(text string) map[string]struct{} {
	rules := make(map[string]struct{})
	if text == "" {
		return rules
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rules[rule] = struct{}{}
		}
	}
	return rules
}

// IsSuppressed reports whether rule is switched off on line.
func (m *Manager) IsSuppressed(rule string, line int) bool {
	for _, sc := range m.scopes {
		if line < sc.start || line > sc.end {
			continue
		}
		// an empty rule set applies to all rules
		if len(sc.rules) == 0 {
			return true
		}
		if _, ok := sc.rules[rule]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of parsed scopes.
func (m *Manager) Len() int {
	return len(m.scopes)
}
