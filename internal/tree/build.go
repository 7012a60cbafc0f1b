package tree

// Constructors for synthesized nodes. None of them carry source gaps, so the
// printer lays them out by kind.

func (t *Tree) NewFile(members ...NodeID) NodeID {
	return t.Add(Node{Kind: KindFile, Children: members})
}

func (t *Tree) NewImport(name string, static, wildcard bool) NodeID {
	return t.Add(Node{Kind: KindImport, Name: name, Static: static, Wildcard: wildcard})
}

func (t *Tree) NewMarker(name string) NodeID {
	return t.Add(Node{Kind: KindMarkerAnnotation, Name: name})
}

func (t *Tree) NewSingleValue(name string, value NodeID) NodeID {
	return t.Add(Node{Kind: KindSingleValueAnnotation, Name: name, Children: []NodeID{value}})
}

func (t *Tree) NewKeyValue(name string, pairs ...NodeID) NodeID {
	return t.Add(Node{Kind: KindKeyValueAnnotation, Name: name, Children: pairs})
}

func (t *Tree) NewPair(key string, value NodeID) NodeID {
	return t.Add(Node{Kind: KindMemberValuePair, Name: key, Children: []NodeID{value}})
}

// NewCall builds a method call. A NoNode receiver means an unqualified call.
func (t *Tree) NewCall(receiver NodeID, name string, args ...NodeID) NodeID {
	n := Node{Kind: KindMethodCall, Name: name}
	if receiver.IsValid() {
		n.HasReceiver = true
		n.Children = append(n.Children, receiver)
	}
	n.Children = append(n.Children, args...)
	return t.Add(n)
}

func (t *Tree) NewExprStmt(expr NodeID) NodeID {
	return t.Add(Node{Kind: KindExprStmt, Children: []NodeID{expr}})
}

func (t *Tree) NewBlock(stmts ...NodeID) NodeID {
	return t.Add(Node{Kind: KindBlock, Children: stmts})
}

// NewClosure builds a zero-parameter lambda around body.
func (t *Tree) NewClosure(body NodeID) NodeID {
	return t.Add(Node{Kind: KindClosure, Children: []NodeID{body}})
}

func (t *Tree) NewClassLiteral(typeName string) NodeID {
	return t.Add(Node{Kind: KindClassLiteral, Name: typeName})
}

func (t *Tree) NewStringLiteral(quoted string) NodeID {
	return t.Add(Node{Kind: KindStringLiteral, Text: quoted})
}

func (t *Tree) NewIntegerLiteral(text string) NodeID {
	return t.Add(Node{Kind: KindIntegerLiteral, Text: text})
}

func (t *Tree) NewName(name string) NodeID {
	return t.Add(Node{Kind: KindName, Name: name})
}

func (t *Tree) NewDeclaration(declKind, name string, members ...NodeID) NodeID {
	return t.Add(Node{Kind: KindDeclaration, DeclKind: declKind, Name: name, Children: members})
}

// NewRaw builds an opaque node printed as text.
func (t *Tree) NewRaw(tag, text string) NodeID {
	return t.Add(Node{Kind: KindRaw, Tag: tag, Gaps: []string{text}})
}

// Receiver returns the explicit receiver of a method call, or NoNode.
func (t *Tree) Receiver(call NodeID) NodeID {
	n := t.Node(call)
	if n.Kind != KindMethodCall || !n.HasReceiver || len(n.Children) == 0 {
		return NoNode
	}
	return n.Children[0]
}

// Args returns the argument list of a method call.
func (t *Tree) Args(call NodeID) []NodeID {
	n := t.Node(call)
	if n.HasReceiver && len(n.Children) > 0 {
		return n.Children[1:]
	}
	return n.Children
}
