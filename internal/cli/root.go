// Package cli wires the atlas commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Atlas - cross-file static analysis for polyglot codebases",
	Long: `Atlas analyzes a source tree without compiling it: it indexes declared
classes and namespaces, resolves imports into a file dependency graph,
detects cycles and coupling hot spots, catalogs HTTP endpoints and
message flows, and exports the results as JSON, DOT, Mermaid, or
Markdown.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
