// scenetool inspects and scaffolds scene files without opening a window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/logger"
)

var resourcesDir string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scenetool",
		Short: "Inspect, validate and create Mini Engine scene files",
		Long: `scenetool works on the JSON scene files written by the editor.
Model paths in a scene are resolved under the resources directory, exactly as
the editor resolves them.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&resourcesDir, "resources", "r", assets.DefaultRoot,
		"directory model paths are resolved under")

	root.AddCommand(newValidateCmd(), newInfoCmd(), newInspectCmd(), newNewCmd())
	return root
}

func main() {
	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
