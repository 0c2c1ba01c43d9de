package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-atlas/internal/callgraph"
	"github.com/mvp-joe/code-atlas/internal/export"
	"github.com/mvp-joe/code-atlas/internal/source"
)

var (
	callgraphOut   string
	callgraphQuiet bool
)

// FileCallGraphs pairs a file with the call graphs of its classes.
type FileCallGraphs struct {
	File    string                     `json:"file"`
	Classes []callgraph.ClassCallGraph `json:"classes"`
}

// callgraphCmd represents the callgraph command
var callgraphCmd = &cobra.Command{
	Use:   "callgraph [path]",
	Short: "Build intra-class method call graphs",
	Long: `Callgraph extracts, per class, which of its methods call which other
methods of the same class. Calls into other classes are out of scope.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCallgraph,
}

func init() {
	rootCmd.AddCommand(callgraphCmd)
	callgraphCmd.Flags().StringVarP(&callgraphOut, "out", "o", "", "output file (default under the configured output dir)")
	callgraphCmd.Flags().BoolVarP(&callgraphQuiet, "quiet", "q", false, "disable non-error output")
}

func runCallgraph(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	files, err := discoverFiles(root, cfg)
	if err != nil {
		return err
	}

	var graphs []FileCallGraphs
	classCount := 0
	for _, file := range files {
		switch file.Language {
		case source.LangJava, source.LangCSharp, source.LangPHP:
		default:
			continue
		}
		classes := callgraph.Build(file.Content)
		if len(classes) == 0 {
			continue
		}
		classCount += len(classes)
		graphs = append(graphs, FileCallGraphs{File: file.RelPath, Classes: classes})
	}

	out := callgraphOut
	if out == "" {
		out = outputPath(root, cfg, "call-graphs.json")
	}
	if err := export.WriteJSON(out, graphs); err != nil {
		return err
	}

	if !callgraphQuiet {
		fmt.Printf("Files with call graphs: %d\n", len(graphs))
		fmt.Printf("Classes:                %d\n", classCount)
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}
