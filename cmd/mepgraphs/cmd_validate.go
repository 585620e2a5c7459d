package main

import (
	"fmt"

	"mepgraphs/internal/domain"
	"mepgraphs/internal/loader"
	"mepgraphs/internal/traverse"

	"github.com/spf13/cobra"
)

// validateCmd checks a model file without writing anything
var validateCmd = &cobra.Command{
	Use:   "validate <model-file>",
	Short: "Load a model and report which networks would export",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := loader.LoadYAML(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	explorer := traverse.NewExplorer()

	var counts [domain.DisciplineCount]int
	qualifying, traversable := 0, 0
	for _, n := range doc.Networks() {
		if !loader.DefaultPredicate(n) {
			fmt.Fprintf(out, "  %-8s %-24s %-10s %3d elements  skipped\n", n.ID(), n.Name(), n.Discipline(), n.Size())
			continue
		}
		qualifying++

		_, stats, err := explorer.TraverseStats(n.Root())
		if err != nil {
			fmt.Fprintf(out, "  %-8s %-24s %-10s %3d elements%s  error: %v\n", n.ID(), n.Name(), n.Discipline(), n.Size(), graphShape(n), err)
			continue
		}
		traversable++
		counts[n.Discipline()]++
		fmt.Fprintf(out, "  %-8s %-24s %-10s %3d elements%s  %d nodes, %d references, depth %d\n",
			n.ID(), n.Name(), n.Discipline(), n.Size(), graphShape(n), stats.Nodes, stats.References, stats.MaxDepth)
	}

	fmt.Fprintf(out, "%s: %d networks, %d qualifying, %d exportable (%d mechanical, %d electrical, %d piping)\n",
		doc.Title(), len(doc.Networks()), qualifying, traversable,
		counts[domain.DisciplineMechanical], counts[domain.DisciplineElectrical], counts[domain.DisciplinePiping])
	return nil
}

// graphShape describes the connections of an in-memory system, or nothing
// for other network implementations
func graphShape(n domain.Network) string {
	s, ok := n.(*domain.System)
	if !ok || s.Graph == nil {
		return ""
	}

	isolated := 0
	for _, key := range s.Graph.Keys() {
		if s.Graph.Component(key).Degree() == 0 {
			isolated++
		}
	}
	return fmt.Sprintf(", %d connections, %d isolated", s.Graph.EdgeCount(), isolated)
}
