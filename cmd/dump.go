package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/junitmig/internal/javasrc"
	"github.com/gnoswap-labs/junitmig/internal/tree"
	"github.com/gnoswap-labs/junitmig/migrate"
)

var dumpAfter bool

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the syntax tree of a Java file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var engine migrate.Engine
		if dumpAfter {
			m, err := newEngine()
			if err != nil {
				return err
			}
			engine = m
		}
		return runDump(cmd.OutOrStdout(), engine, args[0])
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpAfter, "after", false, "Dump the tree of the migrated source")
}

// dumpNode is the printed form of a tree node.
type dumpNode struct {
	Kind     string
	Pos      string
	Label    string
	Children []dumpNode
}

// runDump parses filename and dumps its tree. With an engine the source is
// migrated first.
func runDump(out io.Writer, engine migrate.Engine, filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if engine != nil {
		report, err := engine.RunSource(filename, src, migrate.Options{DryRun: true})
		if err != nil {
			return err
		}
		src = report.Output
	}

	t, err := javasrc.Parse(filename, src)
	if err != nil {
		return err
	}

	config := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	config.Fdump(out, toDumpNode(t, t.Root()))
	return nil
}

func toDumpNode(t *tree.Tree, id tree.NodeID) dumpNode {
	n := t.Node(id)
	d := dumpNode{Kind: n.Kind.String(), Pos: n.Pos.String()}
	switch {
	case n.Kind == tree.KindRaw && n.Text != "":
		d.Label = n.Tag + " " + n.Text
	case n.Kind == tree.KindRaw:
		d.Label = n.Tag
	case n.Name != "":
		d.Label = n.Name
	default:
		d.Label = n.Text
	}
	for _, child := range t.Children(id) {
		d.Children = append(d.Children, toDumpNode(t, child))
	}
	return d
}
