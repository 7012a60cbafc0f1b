package javasrc

import (
	"testing"

	"github.com/gnoswap-labs/junitmig/internal/printer"
	"github.com/gnoswap-labs/junitmig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `// header comment
package com.example;

import org.junit.Test;
import static org.junit.Assume.assumeTrue;
import org.junit.*;

public class CalculatorTest {
    @Before
    public void setUp() {
        calc = new Calculator();
    }

    @Test(timeout = 500, expected = ArithmeticException.class)
    public void divides() {
        Assume.assumeTrue(ready,  "not ready");
        calc.divide(1, 0); // boom
    }

    @Ignore("slow test")
    @Test
    public void slow() {}
}
`

// find returns the nodes under the root matching pred, in source order.
func find(tr *tree.Tree, pred func(*tree.Node) bool) []tree.NodeID {
	var out []tree.NodeID
	tr.Walk(tr.Root(), func(id tree.NodeID) bool {
		if pred(tr.Node(id)) {
			out = append(out, id)
		}
		return true
	})
	return out
}

func ofKind(kind tree.Kind) func(*tree.Node) bool {
	return func(n *tree.Node) bool { return n.Kind == kind }
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"sample", sample},
		{"empty", ""},
		{"whitespace only", "\n\n   \n"},
		{"no trailing newline", "class A { void f() { g(); } }"},
		{"generic call", "class A { void f() { this.<String>g(\"x\"); } }\n"},
		{"comments everywhere", "/* a */ class /* b */ A { // c\n  @Test /* d */ void f() { /* e */ }\n}\n"},
		{"tabs", "class A {\n\t@Test\n\tvoid f() {\n\t\tassumeFalse(c,\t\"m\");\n\t}\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Parse("A.java", []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.src, string(printer.Print(tr)))
		})
	}
}

func TestImports(t *testing.T) {
	t.Parallel()

	tr, err := Parse("CalculatorTest.java", []byte(sample))
	require.NoError(t, err)

	imports := find(tr, ofKind(tree.KindImport))
	require.Len(t, imports, 3)

	tests := []struct {
		name     string
		static   bool
		wildcard bool
	}{
		{"org.junit.Test", false, false},
		{"org.junit.Assume.assumeTrue", true, false},
		{"org.junit", false, true},
	}
	for i, tt := range tests {
		n := tr.Node(imports[i])
		assert.Equal(t, tt.name, n.Name)
		assert.Equal(t, tt.static, n.Static, n.Name)
		assert.Equal(t, tt.wildcard, n.Wildcard, n.Name)
		assert.Equal(t, tr.Root(), n.Parent)
	}
	assert.Equal(t, tree.Position{Line: 4, Column: 1}, tr.Node(imports[0]).Pos)
}

func TestAnnotations(t *testing.T) {
	t.Parallel()

	tr, err := Parse("CalculatorTest.java", []byte(sample))
	require.NoError(t, err)

	annotations := find(tr, func(n *tree.Node) bool { return n.Kind.IsAnnotation() })
	require.Len(t, annotations, 4)

	before := tr.Node(annotations[0])
	assert.Equal(t, tree.KindMarkerAnnotation, before.Kind)
	assert.Equal(t, "Before", before.Name)

	test := tr.Node(annotations[1])
	assert.Equal(t, tree.KindKeyValueAnnotation, test.Kind)
	assert.Equal(t, "Test", test.Name)
	require.Len(t, test.Children, 2)
	timeout := tr.Node(test.Children[0])
	assert.Equal(t, tree.KindMemberValuePair, timeout.Kind)
	assert.Equal(t, "timeout", timeout.Name)
	assert.Equal(t, "500", tr.Node(timeout.Children[0]).Text)
	assert.Equal(t, tree.KindIntegerLiteral, tr.Kind(timeout.Children[0]))
	expected := tr.Node(tr.Child(test.Children[1], 0))
	assert.Equal(t, tree.KindClassLiteral, expected.Kind)
	assert.Equal(t, "ArithmeticException", expected.Name)

	ignore := tr.Node(annotations[2])
	assert.Equal(t, tree.KindSingleValueAnnotation, ignore.Kind)
	assert.Equal(t, "Ignore", ignore.Name)
	assert.Equal(t, `"slow test"`, tr.Node(ignore.Children[0]).Text)

	assert.Equal(t, tree.KindMarkerAnnotation, tr.Kind(annotations[3]))
}

func TestDeclarationsHoldAnnotationsAndBody(t *testing.T) {
	t.Parallel()

	tr, err := Parse("CalculatorTest.java", []byte(sample))
	require.NoError(t, err)

	methods := find(tr, func(n *tree.Node) bool {
		return n.Kind == tree.KindDeclaration && n.DeclKind == "method"
	})
	require.Len(t, methods, 3)
	assert.Equal(t, "divides", tr.Node(methods[1]).Name)

	for _, m := range methods {
		kinds := make([]tree.Kind, 0)
		for _, c := range tr.Children(m) {
			kinds = append(kinds, tr.Kind(c))
		}
		assert.True(t, tr.Kind(tr.Child(m, 0)).IsAnnotation(), tr.Node(m).Name)
		assert.Contains(t, kinds, tree.KindBlock, tr.Node(m).Name)
	}

	classes := find(tr, func(n *tree.Node) bool {
		return n.Kind == tree.KindDeclaration && n.DeclKind == "class"
	})
	require.Len(t, classes, 1)
	assert.Equal(t, "CalculatorTest", tr.Node(classes[0]).Name)
}

func TestCalls(t *testing.T) {
	t.Parallel()

	tr, err := Parse("CalculatorTest.java", []byte(sample))
	require.NoError(t, err)

	calls := find(tr, ofKind(tree.KindMethodCall))
	require.Len(t, calls, 2)

	assume := tr.Node(calls[0])
	assert.Equal(t, "assumeTrue", assume.Name)
	assert.True(t, assume.HasReceiver)
	recv := tr.Receiver(calls[0])
	assert.Equal(t, tree.KindName, tr.Kind(recv))
	assert.Equal(t, "Assume", tr.Node(recv).Name)
	args := tr.Args(calls[0])
	require.Len(t, args, 2)
	assert.Equal(t, "ready", tr.Node(args[0]).Name)
	assert.Equal(t, `"not ready"`, tr.Node(args[1]).Text)
	assert.Equal(t, tree.KindExprStmt, tr.Kind(tr.Parent(calls[0])))

	divide := tr.Node(calls[1])
	assert.Equal(t, "divide", divide.Name)
	assert.Len(t, tr.Args(calls[1]), 2)
	assert.Equal(t, tree.Position{Line: 17, Column: 9}, divide.Pos)
}

func TestQualifiedReceiver(t *testing.T) {
	t.Parallel()

	src := "class A { void f() { org.junit.Assume.assumeFalse(c, \"m\"); } }"
	tr, err := Parse("A.java", []byte(src))
	require.NoError(t, err)

	calls := find(tr, ofKind(tree.KindMethodCall))
	require.Len(t, calls, 1)
	recv := tr.Receiver(calls[0])
	assert.Equal(t, tree.KindName, tr.Kind(recv))
	assert.Equal(t, "org.junit.Assume", tr.Node(recv).Name)
}

func TestComments(t *testing.T) {
	t.Parallel()

	tr, err := Parse("CalculatorTest.java", []byte(sample))
	require.NoError(t, err)

	comments := find(tr, func(n *tree.Node) bool {
		return n.Kind == tree.KindRaw && n.Tag == kindLineComment
	})
	require.Len(t, comments, 2)
	assert.Equal(t, "// header comment", tr.Node(comments[0]).Text)
	assert.Equal(t, tr.Root(), tr.Parent(comments[0]))
	assert.Equal(t, "// boom", tr.Node(comments[1]).Text)
	assert.Equal(t, tree.KindBlock, tr.Kind(tr.Parent(comments[1])))
}

func TestSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := Parse("Broken.java", []byte("class A {\n  void f( {\n}\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "Broken.java:")
}
