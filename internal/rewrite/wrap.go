package rewrite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

// wrap is a validated @Test attribute waiting to be applied to a body.
type wrap struct {
	key      string
	millis   int64
	typeName string
}

func timeoutWrap(t *tree.Tree, value tree.NodeID) (wrap, error) {
	if !value.IsValid() || t.Kind(value) != tree.KindIntegerLiteral {
		return wrap{}, fmt.Errorf("%s", describe(t, value))
	}
	ms, err := parseIntLiteral(t.Node(value).Text)
	if err != nil {
		return wrap{}, err
	}
	return wrap{key: timeoutKey, millis: ms}, nil
}

func expectedWrap(t *tree.Tree, value tree.NodeID) (wrap, error) {
	if !value.IsValid() || t.Kind(value) != tree.KindClassLiteral {
		return wrap{}, fmt.Errorf("%s", describe(t, value))
	}
	return wrap{key: expectedKey, typeName: t.Node(value).Name}, nil
}

func (w wrap) apply(p *pass, block tree.NodeID) {
	switch w.key {
	case timeoutKey:
		p.wrapTimeout(block, w.millis)
	case expectedKey:
		p.wrapExpected(block, w.typeName)
	}
}

// wrapTimeout turns the body into
//
//	assertTimeout(ofMillis(ms), () -> { <body> });
func (p *pass) wrapTimeout(block tree.NodeID, ms int64) {
	closure := p.closureOf(block)
	duration := p.t.NewCall(tree.NoNode, ofMillisCall, p.t.NewIntegerLiteral(strconv.FormatInt(ms, 10)))
	call := p.t.NewCall(tree.NoNode, assertTimeoutCall, duration, closure)
	p.t.SetChildren(block, []tree.NodeID{p.t.NewExprStmt(call)})

	p.inject(durationOfMillis)
	p.inject(assertTimeoutImport)
}

// wrapExpected turns the body into
//
//	assertThrows(T.class, () -> { <body> });
func (p *pass) wrapExpected(block tree.NodeID, typeName string) {
	closure := p.closureOf(block)
	call := p.t.NewCall(tree.NoNode, assertThrowsCall, p.t.NewClassLiteral(typeName), closure)
	p.t.SetChildren(block, []tree.NodeID{p.t.NewExprStmt(call)})

	p.inject(assertThrowsImport)
}

// closureOf moves the current statements of block into a new
// zero-parameter closure.
func (p *pass) closureOf(block tree.NodeID) tree.NodeID {
	stmts := append([]tree.NodeID(nil), p.t.Children(block)...)
	return p.t.NewClosure(p.t.NewBlock(stmts...))
}

// parseIntLiteral reads a Java integer literal: decimal, hex, octal or
// binary, with optional underscores and an l/L suffix.
func parseIntLiteral(text string) (int64, error) {
	s := strings.TrimRight(text, "lL")
	s = strings.ReplaceAll(s, "_", "")
	if len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '7' {
		s = "0o" + s[1:]
	}
	if len(s) > 1 && s[0] == '0' {
		// hex, octal and binary literals may use the full 64 bits
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer literal %q", text)
		}
		return int64(u), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", text)
	}
	return v, nil
}
