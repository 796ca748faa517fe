// Command bundlekit bundles browser entrypoints with esbuild and
// post-processes the output into a deployable tree: template-named,
// content-hashed files, an asset-manifest.json, and deferred script tags
// injected into the HTML shells.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/bundlekit/internal/config"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.3.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command tree and maps the outcome to an exit code.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bundlekit: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bundlekit [entrypoints...]",
		Short:         "Bundle, rename, manifest and inject browser assets",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// The bare command behaves like "build".
	root.RunE = buildRunE(config.BindFlags(root.Flags()))

	root.AddCommand(newBuildCmd(), newCheckCmd(), newSandboxCmd())
	return root
}
