package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tern/internal/driver"
	"tern/internal/fix"
	"tern/internal/project"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <manifest.toml>",
	Short: "Apply field name suggestions to a manifest's source excerpt",
	Long:  `Fix checks a manifest and applies the suggested field name replacements. By default it prints the patched excerpt; --write persists it when the excerpt lives in its own file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting suggestion instead of the first one")
	fixCmd.Flags().Bool("write", false, "write the patched excerpt back to its source file")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	path := args[0]
	man, err := project.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if write && man.Module.SourceFile == "" {
		return fmt.Errorf("--write requires the manifest to use source_file")
	}

	res, err := driver.CheckManifest(man, path, driver.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	mode := fix.ApplyModeOnce
	if applyAll {
		mode = fix.ApplyModeAll
	}
	result, err := fix.Apply(res.FileSet, res.Bag.Items(), fix.ApplyOptions{Mode: mode, Write: write})
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(os.Stdout, "nothing to fix")
		return nil
	}
	if err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}

	for _, applied := range result.Applied {
		fmt.Fprintf(os.Stdout, "applied: %s (%s)\n", applied.Title, applied.Code.ID())
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(os.Stdout, "skipped: %s: %s\n", skipped.Title, skipped.Reason)
	}
	for _, change := range result.FileChanges {
		if change.Written {
			fmt.Fprintf(os.Stdout, "wrote %s (%d edits)\n", change.Path, change.EditCount)
			continue
		}
		fmt.Fprintf(os.Stdout, "patched %s (%d edits):\n%s", change.Path, change.EditCount, change.Content)
	}
	return nil
}
