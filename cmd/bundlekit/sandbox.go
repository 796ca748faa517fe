package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/bundlekit/internal/sandbox"
)

func newSandboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Manage throwaway build directories",
	}
	cmd.AddCommand(newSandboxCreateCmd(), newSandboxDestroyCmd(), newSandboxImportCmd(), newSandboxExportCmd())
	return cmd
}

func newSandboxCreateCmd() *cobra.Command {
	var (
		exists     string
		randSuffix bool
		tempDir    bool
	)
	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Create a sandbox directory and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := sandbox.ParseExistsPolicy(exists)
			if err != nil {
				return err
			}
			path, err := sandbox.Create(args[0], sandbox.Options{
				Exists:       policy,
				RandomSuffix: randSuffix,
				UseTempDir:   tempDir,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&exists, "exists", string(sandbox.ExistsCleanup), "When the path exists: cleanup | suffix | error")
	cmd.Flags().BoolVar(&randSuffix, "random-suffix", false, "Append a random suffix to the directory name")
	cmd.Flags().BoolVar(&tempDir, "temp", false, "Create the sandbox under the system temp directory")
	return cmd
}

func newSandboxDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <path>",
		Short: "Remove a sandbox and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sandbox.Destroy(args[0])
		},
	}
}

func newSandboxImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <from> <sandbox> <path-in-sandbox>",
		Short: "Copy a file or directory into a sandbox",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := sandbox.Import(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dst)
			return nil
		},
	}
}

func newSandboxExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <sandbox> <path-in-sandbox> <to>",
		Short: "Copy a file or directory out of a sandbox",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := sandbox.Export(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dst)
			return nil
		},
	}
}
