// Package javasrc parses Java source into a tree.Tree using the tree-sitter
// Java grammar.
//
// Only the shapes the rewriter acts on get a dedicated node kind. Every
// other construct becomes a Raw node tagged with its grammar kind. Each node
// records the source text between its children as gaps, so printing an
// untouched tree reproduces the input byte for byte.
package javasrc

import (
	"errors"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

// ErrSyntax is wrapped by every error Parse returns for malformed source.
var ErrSyntax = errors.New("java syntax error")

// Parse parses src and converts the concrete syntax tree.
func Parse(filename string, src []byte) (*tree.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		return nil, fmt.Errorf("setting language: %w", err)
	}

	cst := parser.Parse(src, nil)
	if cst == nil {
		return nil, fmt.Errorf("%s: parse returned no tree", filename)
	}
	defer cst.Close()

	root := cst.RootNode()
	if root == nil || root.Kind() != kindProgram {
		return nil, fmt.Errorf("%s: parse returned no program node", filename)
	}
	if root.HasError() {
		pos := tree.Position{Line: 1, Column: 1}
		if bad := firstError(root); bad != nil {
			pos = startOf(bad)
		}
		return nil, fmt.Errorf("%s:%s: %w", filename, pos, ErrSyntax)
	}

	c := &converter{src: src, t: tree.New(filename)}
	c.t.SetRoot(c.file(root))
	return c.t, nil
}

// firstError returns the first ERROR or MISSING node in source order.
func firstError(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

func startOf(n *tree_sitter.Node) tree.Position {
	p := n.StartPosition()
	return tree.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func endOf(n *tree_sitter.Node) tree.Position {
	p := n.EndPosition()
	return tree.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
