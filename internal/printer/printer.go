// Package printer serializes a syntax tree back to Java source.
//
// Nodes that still carry the source gaps recorded by the parser are printed
// verbatim, so untouched code keeps its original formatting. Nodes built or
// restructured by the rewriter are laid out by kind, indented relative to
// the line they start on.
package printer

import (
	"bytes"
	"io"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

const indentUnit = "    "

type printer struct {
	t   *tree.Tree
	buf bytes.Buffer
}

// Print returns the source text of the whole tree.
func Print(t *tree.Tree) []byte {
	p := &printer{t: t}
	if root := t.Root(); root.IsValid() {
		p.node(root)
	}
	return p.buf.Bytes()
}

// Fprint writes the source text of the whole tree to w.
func Fprint(w io.Writer, t *tree.Tree) error {
	_, err := w.Write(Print(t))
	return err
}

// Node returns the source text of a single subtree.
func Node(t *tree.Tree, id tree.NodeID) string {
	p := &printer{t: t}
	p.node(id)
	return p.buf.String()
}

func (p *printer) node(id tree.NodeID) {
	n := p.t.Node(id)
	if n.Gaps != nil && len(n.Gaps) == len(n.Children)+1 {
		p.gaps(n)
		return
	}
	p.layout(n)
}

func (p *printer) gaps(n *tree.Node) {
	p.buf.WriteString(n.Gaps[0])
	for i, c := range n.Children {
		p.node(c)
		p.buf.WriteString(n.Gaps[i+1])
	}
}

func (p *printer) layout(n *tree.Node) {
	switch n.Kind {
	case tree.KindFile:
		p.file(n)
	case tree.KindImport:
		p.buf.WriteString("import ")
		if n.Static {
			p.buf.WriteString("static ")
		}
		p.buf.WriteString(n.Name)
		if n.Wildcard {
			p.buf.WriteString(".*")
		}
		p.buf.WriteString(";")
	case tree.KindMarkerAnnotation:
		p.buf.WriteString("@" + n.Name)
	case tree.KindSingleValueAnnotation, tree.KindKeyValueAnnotation:
		p.buf.WriteString("@" + n.Name + "(")
		p.list(n.Children, ", ")
		p.buf.WriteString(")")
	case tree.KindMemberValuePair:
		p.buf.WriteString(n.Name + " = ")
		p.list(n.Children, "")
	case tree.KindMethodCall:
		args := n.Children
		if n.HasReceiver && len(args) > 0 {
			p.node(args[0])
			p.buf.WriteString(".")
			args = args[1:]
		}
		p.buf.WriteString(n.Name + "(")
		p.list(args, ", ")
		p.buf.WriteString(")")
	case tree.KindExprStmt:
		p.list(n.Children, "")
		p.buf.WriteString(";")
	case tree.KindClosure:
		p.buf.WriteString("() -> ")
		p.list(n.Children, "")
	case tree.KindBlock:
		p.block(n)
	case tree.KindClassLiteral:
		p.buf.WriteString(n.Name + ".class")
	case tree.KindStringLiteral, tree.KindIntegerLiteral:
		p.buf.WriteString(n.Text)
	case tree.KindName:
		p.buf.WriteString(n.Name)
	case tree.KindDeclaration:
		p.lines(n.Children, p.currentIndent())
	case tree.KindRaw:
		p.list(n.Children, " ")
	case tree.KindInvalid:
	}
}

func (p *printer) list(ids []tree.NodeID, sep string) {
	for i, c := range ids {
		if i > 0 {
			p.buf.WriteString(sep)
		}
		p.node(c)
	}
}

// lines prints each id on its own line at indent.
func (p *printer) lines(ids []tree.NodeID, indent string) {
	for i, c := range ids {
		if i > 0 {
			p.buf.WriteString("\n" + indent)
		}
		p.node(c)
	}
}

func (p *printer) file(n *tree.Node) {
	prev := tree.KindInvalid
	for i, c := range n.Children {
		kind := p.t.Kind(c)
		if i > 0 {
			p.buf.WriteString("\n")
			if kind != prev && (kind == tree.KindImport || prev == tree.KindImport) {
				p.buf.WriteString("\n")
			}
		}
		p.node(c)
		prev = kind
	}
	if len(n.Children) > 0 {
		p.buf.WriteString("\n")
	}
}

func (p *printer) block(n *tree.Node) {
	if len(n.Children) == 0 {
		p.buf.WriteString("{}")
		return
	}
	indent := p.currentIndent()
	p.buf.WriteString("{")
	for _, c := range n.Children {
		p.buf.WriteString("\n" + indent + indentUnit)
		p.node(c)
	}
	p.buf.WriteString("\n" + indent + "}")
}

// currentIndent returns the leading whitespace of the line being written.
func (p *printer) currentIndent() string {
	b := p.buf.Bytes()
	start := bytes.LastIndexByte(b, '\n') + 1
	end := start
	for end < len(b) && (b[end] == ' ' || b[end] == '\t') {
		end++
	}
	return string(b[start:end])
}
