package rewrite

import "github.com/gnoswap-labs/junitmig/internal/tree"

// visit dispatches id and then descends into the child list id has after
// its handler ran. When the handler replaced id, that list is the frozen
// pre-replacement one: children moved into the replacement are still
// visited, while the replacement itself is never dispatched.
func (p *pass) visit(id tree.NodeID) {
	p.dispatch(id)

	// copy: handlers below may insert into this list (imports on the file)
	children := append([]tree.NodeID(nil), p.t.Children(id)...)
	for _, c := range children {
		p.visit(c)
	}
}

func (p *pass) dispatch(id tree.NodeID) {
	switch p.t.Kind(id) {
	case tree.KindImport:
		p.rewriteImport(id)
	case tree.KindMarkerAnnotation:
		p.rewriteMarker(id)
	case tree.KindSingleValueAnnotation:
		p.rewriteSingleValue(id)
	case tree.KindKeyValueAnnotation:
		p.rewriteKeyValue(id)
	case tree.KindMethodCall:
		p.rewriteCall(id)
	case tree.KindInvalid,
		tree.KindFile,
		tree.KindMemberValuePair,
		tree.KindBlock,
		tree.KindExprStmt,
		tree.KindClosure,
		tree.KindClassLiteral,
		tree.KindStringLiteral,
		tree.KindIntegerLiteral,
		tree.KindName,
		tree.KindDeclaration,
		tree.KindRaw:
		// no handler
	}
}
