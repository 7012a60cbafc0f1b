package javasrc

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

// grammar node kinds
const (
	kindProgram          = "program"
	kindImport           = "import_declaration"
	kindMarkerAnnotation = "marker_annotation"
	kindAnnotation       = "annotation"
	kindElementValuePair = "element_value_pair"
	kindMethodInvocation = "method_invocation"
	kindBlock            = "block"
	kindExpressionStmt   = "expression_statement"
	kindClassLiteral     = "class_literal"
	kindStringLiteral    = "string_literal"
	kindIdentifier       = "identifier"
	kindScopedIdentifier = "scoped_identifier"
	kindFieldAccess      = "field_access"
	kindModifiers        = "modifiers"
	kindAsterisk         = "asterisk"
	kindLineComment      = "line_comment"
	kindBlockComment     = "block_comment"
	kindStaticKeyword    = "static"
)

// grammar field names
const (
	fieldName          = "name"
	fieldObject        = "object"
	fieldArguments     = "arguments"
	fieldTypeArguments = "type_arguments"
	fieldKey           = "key"
	fieldValue         = "value"
)

var integerKinds = map[string]bool{
	"decimal_integer_literal": true,
	"hex_integer_literal":     true,
	"octal_integer_literal":   true,
	"binary_integer_literal":  true,
}

// declarationKinds maps declaration grammar kinds to tree.Node.DeclKind.
var declarationKinds = map[string]string{
	"class_declaration":           "class",
	"interface_declaration":       "interface",
	"enum_declaration":            "enum",
	"record_declaration":          "record",
	"annotation_type_declaration": "annotation",
	"method_declaration":          "method",
	"constructor_declaration":     "constructor",
}

type converter struct {
	src []byte
	t   *tree.Tree
}

// part is a converted child together with the source range it covers.
type part struct {
	id         tree.NodeID
	start, end uint
}

func (c *converter) text(n *tree_sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) part(n *tree_sitter.Node, id tree.NodeID) part {
	return part{id: id, start: n.StartByte(), end: n.EndByte()}
}

// emit adds proto with parts as children. The source between the parts
// inside [start, end) becomes the node's gaps.
func (c *converter) emit(proto tree.Node, start, end uint, parts []part) tree.NodeID {
	proto.Children = make([]tree.NodeID, 0, len(parts))
	proto.Gaps = make([]string, 0, len(parts)+1)
	at := start
	for _, p := range parts {
		proto.Gaps = append(proto.Gaps, string(c.src[at:p.start]))
		proto.Children = append(proto.Children, p.id)
		at = p.end
	}
	proto.Gaps = append(proto.Gaps, string(c.src[at:end]))
	return c.t.Add(proto)
}

// emitNode is emit over the range of n, with positions taken from n.
func (c *converter) emitNode(n *tree_sitter.Node, proto tree.Node, parts []part) tree.NodeID {
	proto.Pos, proto.End = startOf(n), endOf(n)
	return c.emit(proto, n.StartByte(), n.EndByte(), parts)
}

// leaf adds proto with the text of n as its only gap.
func (c *converter) leaf(n *tree_sitter.Node, proto tree.Node) tree.NodeID {
	return c.emitNode(n, proto, nil)
}

// file converts the program node. The file spans the whole input so
// leading and trailing whitespace is kept.
func (c *converter) file(n *tree_sitter.Node) tree.NodeID {
	proto := tree.Node{Kind: tree.KindFile, Pos: tree.Position{Line: 1, Column: 1}, End: endOf(n)}
	return c.emit(proto, 0, uint(len(c.src)), c.namedParts(n))
}

func (c *converter) namedParts(n *tree_sitter.Node) []part {
	count := n.NamedChildCount()
	parts := make([]part, 0, count)
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		parts = append(parts, c.part(child, c.node(child)))
	}
	return parts
}

func (c *converter) node(n *tree_sitter.Node) tree.NodeID {
	kind := n.Kind()
	switch {
	case kind == kindImport:
		return c.importDecl(n)
	case kind == kindMarkerAnnotation:
		return c.leaf(n, tree.Node{Kind: tree.KindMarkerAnnotation, Name: c.fieldText(n, fieldName)})
	case kind == kindAnnotation:
		return c.annotation(n)
	case kind == kindElementValuePair:
		return c.pair(n)
	case kind == kindMethodInvocation:
		return c.call(n)
	case kind == kindBlock:
		return c.emitNode(n, tree.Node{Kind: tree.KindBlock}, c.namedParts(n))
	case kind == kindExpressionStmt:
		return c.exprStmt(n)
	case kind == kindClassLiteral:
		return c.classLiteral(n)
	case kind == kindStringLiteral:
		return c.leaf(n, tree.Node{Kind: tree.KindStringLiteral, Text: c.text(n)})
	case integerKinds[kind]:
		return c.leaf(n, tree.Node{Kind: tree.KindIntegerLiteral, Text: c.text(n)})
	case kind == kindIdentifier || kind == kindScopedIdentifier:
		return c.leaf(n, tree.Node{Kind: tree.KindName, Name: c.text(n)})
	case declarationKinds[kind] != "":
		return c.declaration(n)
	default:
		return c.raw(n)
	}
}

func (c *converter) raw(n *tree_sitter.Node) tree.NodeID {
	proto := tree.Node{Kind: tree.KindRaw, Tag: n.Kind()}
	if n.NamedChildCount() == 0 {
		proto.Text = c.text(n)
	}
	return c.emitNode(n, proto, c.namedParts(n))
}

func (c *converter) fieldText(n *tree_sitter.Node, field string) string {
	if child := n.ChildByFieldName(field); child != nil {
		return c.text(child)
	}
	return ""
}

// importDecl keeps the declaration text as a single gap; the dotted name
// and flags are lifted onto the node.
func (c *converter) importDecl(n *tree_sitter.Node) tree.NodeID {
	proto := tree.Node{Kind: tree.KindImport}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch {
		case !child.IsNamed() && child.Kind() == kindStaticKeyword:
			proto.Static = true
		case child.Kind() == kindAsterisk:
			proto.Wildcard = true
		case child.Kind() == kindIdentifier || child.Kind() == kindScopedIdentifier:
			proto.Name = c.text(child)
		}
	}
	return c.leaf(n, proto)
}

// annotation converts @Name(...). A lone unnamed element makes a single
// value annotation, anything else a key/value annotation.
func (c *converter) annotation(n *tree_sitter.Node) tree.NodeID {
	proto := tree.Node{Name: c.fieldText(n, fieldName)}
	args := n.ChildByFieldName(fieldArguments)

	var elements []*tree_sitter.Node
	if args != nil {
		elements = c.significant(args)
	}

	if len(elements) == 1 && elements[0].Kind() != kindElementValuePair {
		proto.Kind = tree.KindSingleValueAnnotation
		return c.emitNode(n, proto, []part{c.part(elements[0], c.node(elements[0]))})
	}

	proto.Kind = tree.KindKeyValueAnnotation
	parts := make([]part, 0, len(elements))
	for _, el := range elements {
		parts = append(parts, c.part(el, c.node(el)))
	}
	return c.emitNode(n, proto, parts)
}

func (c *converter) pair(n *tree_sitter.Node) tree.NodeID {
	proto := tree.Node{Kind: tree.KindMemberValuePair, Name: c.fieldText(n, fieldKey)}
	var parts []part
	if value := n.ChildByFieldName(fieldValue); value != nil {
		parts = append(parts, c.part(value, c.node(value)))
	}
	return c.emitNode(n, proto, parts)
}

// call converts a method invocation. Calls with explicit type arguments
// stay raw.
func (c *converter) call(n *tree_sitter.Node) tree.NodeID {
	if n.ChildByFieldName(fieldTypeArguments) != nil {
		return c.raw(n)
	}
	proto := tree.Node{Kind: tree.KindMethodCall, Name: c.fieldText(n, fieldName)}
	var parts []part
	if obj := n.ChildByFieldName(fieldObject); obj != nil {
		proto.HasReceiver = true
		parts = append(parts, c.part(obj, c.receiver(obj)))
	}
	if args := n.ChildByFieldName(fieldArguments); args != nil {
		for _, arg := range c.significant(args) {
			parts = append(parts, c.part(arg, c.node(arg)))
		}
	}
	return c.emitNode(n, proto, parts)
}

// receiver turns a dotted receiver into a single name.
func (c *converter) receiver(n *tree_sitter.Node) tree.NodeID {
	switch n.Kind() {
	case kindIdentifier, kindScopedIdentifier, kindFieldAccess:
		if isDotted(n) {
			return c.leaf(n, tree.Node{Kind: tree.KindName, Name: c.text(n)})
		}
	}
	return c.node(n)
}

// isDotted reports whether n is an identifier or a chain of field accesses
// ending in identifiers.
func isDotted(n *tree_sitter.Node) bool {
	switch n.Kind() {
	case kindIdentifier:
		return true
	case kindScopedIdentifier, kindFieldAccess:
		for i := uint(0); i < n.NamedChildCount(); i++ {
			if child := n.NamedChild(i); !isComment(child) && !isDotted(child) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (c *converter) exprStmt(n *tree_sitter.Node) tree.NodeID {
	var parts []part
	if expr := c.significant(n); len(expr) > 0 {
		parts = append(parts, c.part(expr[0], c.node(expr[0])))
	}
	return c.emitNode(n, tree.Node{Kind: tree.KindExprStmt}, parts)
}

func (c *converter) classLiteral(n *tree_sitter.Node) tree.NodeID {
	proto := tree.Node{Kind: tree.KindClassLiteral}
	if typ := c.significant(n); len(typ) > 0 {
		proto.Name = c.text(typ[0])
	}
	return c.leaf(n, proto)
}

// declaration converts a type or member declaration. The children of the
// modifiers node are lifted so annotations sit directly next to the body.
func (c *converter) declaration(n *tree_sitter.Node) tree.NodeID {
	proto := tree.Node{
		Kind:     tree.KindDeclaration,
		DeclKind: declarationKinds[n.Kind()],
		Name:     c.fieldText(n, fieldName),
	}
	var parts []part
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == kindModifiers {
			parts = append(parts, c.namedParts(child)...)
			continue
		}
		parts = append(parts, c.part(child, c.node(child)))
	}
	return c.emitNode(n, proto, parts)
}

// significant returns the named children of n that are not comments.
// Comments between them stay in the gaps.
func (c *converter) significant(n *tree_sitter.Node) []*tree_sitter.Node {
	var out []*tree_sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := n.NamedChild(i); !isComment(child) {
			out = append(out, child)
		}
	}
	return out
}

func isComment(n *tree_sitter.Node) bool {
	return n.Kind() == kindLineComment || n.Kind() == kindBlockComment
}
