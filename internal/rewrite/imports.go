package rewrite

import "github.com/gnoswap-labs/junitmig/internal/tree"

const packageDeclarationTag = "package_declaration"

func (p *pass) rewriteImport(id tree.NodeID) {
	n := p.t.Node(id)
	target, ok := Lookup(n.Name)
	if !ok || !p.allowed(RuleImportRename, id) {
		return
	}
	// Jupiter imports are always explicit
	p.replace(id, p.t.NewImport(target, n.Static, false))
	p.applied(RuleImportRename, id, n.Name+" -> "+target)
}

// inject adds a static import to the file under rewrite, once.
func (p *pass) inject(name string) {
	if !p.file.IsValid() {
		return
	}
	if InjectImport(p.t, p.file, name, true) {
		p.res.Mutations++
		p.res.Injected = append(p.res.Injected, name)
	}
}

// InjectImport adds an import of name to file unless one with the same name
// and static flag is already present. The new import goes after the last
// existing import, else after the package declaration, else first. It
// reports whether the file changed.
func InjectImport(t *tree.Tree, file tree.NodeID, name string, static bool) bool {
	at := 0
	for i, c := range t.Children(file) {
		n := t.Node(c)
		switch {
		case n.Kind == tree.KindImport:
			if n.Name == name && n.Static == static && !n.Wildcard {
				return false
			}
			at = i + 1
		case n.Kind == tree.KindRaw && n.Tag == packageDeclarationTag && at == 0:
			at = i + 1
		}
	}
	t.InsertChild(file, at, t.NewImport(name, static, false))
	return true
}
