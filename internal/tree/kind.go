package tree

// Kind identifies the variant of a Node. The set is closed: the rewriter
// dispatches on it with an exhaustive switch.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFile
	KindImport
	KindMarkerAnnotation
	KindSingleValueAnnotation
	KindKeyValueAnnotation
	KindMemberValuePair
	KindMethodCall
	KindBlock
	KindExprStmt
	KindClosure
	KindClassLiteral
	KindStringLiteral
	KindIntegerLiteral
	KindName
	KindDeclaration
	KindRaw

	kindCount
)

var kindNames = [...]string{
	KindInvalid:               "invalid",
	KindFile:                  "file",
	KindImport:                "import",
	KindMarkerAnnotation:      "marker-annotation",
	KindSingleValueAnnotation: "single-value-annotation",
	KindKeyValueAnnotation:    "key-value-annotation",
	KindMemberValuePair:       "member-value-pair",
	KindMethodCall:            "method-call",
	KindBlock:                 "block",
	KindExprStmt:              "expr-stmt",
	KindClosure:               "closure",
	KindClassLiteral:          "class-literal",
	KindStringLiteral:         "string-literal",
	KindIntegerLiteral:        "integer-literal",
	KindName:                  "name",
	KindDeclaration:           "declaration",
	KindRaw:                   "raw",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// IsAnnotation reports whether k is one of the three annotation shapes.
func (k Kind) IsAnnotation() bool {
	switch k {
	case KindMarkerAnnotation, KindSingleValueAnnotation, KindKeyValueAnnotation:
		return true
	}
	return false
}
