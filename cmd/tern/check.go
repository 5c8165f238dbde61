package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tern/internal/diagfmt"
	"tern/internal/driver"
	"tern/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <manifest.toml|directory>",
	Short: "Check field accesses declared in one or more manifests",
	Long:  `Check resolves every declared field access against the custom types in a manifest, or in all *.toml manifests within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("ui", false, "render interactive progress while checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	paths, err := driver.ListManifests(args[0])
	if err != nil {
		return fmt.Errorf("failed to list manifests: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no manifests found under %s", args[0])
	}

	opts := driver.ParallelOptions{
		Options: driver.Options{MaxDiagnostics: maxDiagnostics},
		Jobs:    jobs,
	}
	if wd, wdErr := os.Getwd(); wdErr == nil {
		opts.BaseDir = wd
	}

	var results []*driver.Result
	if withUI && isTerminal(os.Stdout) {
		results, err = runCheckWithUI(cmd.Context(), paths, opts)
	} else {
		results, err = driver.CheckPaths(cmd.Context(), paths, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	exit := 0
	for _, res := range results {
		if res != nil && res.Bag.HasErrors() {
			exit = 1
		}
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     color,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		}
		for idx, res := range results {
			if res == nil {
				continue
			}
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath(res, fullPath))
			}
			if res.Bag.Len() == 0 {
				fmt.Fprintln(os.Stdout, "no issues found")
				continue
			}
			diagfmt.Pretty(os.Stdout, res.Bag, res.FileSet, prettyOpts)
		}
	case "short":
		for _, res := range results {
			if res == nil {
				continue
			}
			diagfmt.Short(os.Stdout, res.Bag, res.FileSet, withNotes)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, res := range results {
			if res == nil {
				continue
			}
			data, buildErr := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, jsonOpts)
			if buildErr != nil {
				return fmt.Errorf("failed to build diagnostics output: %w", buildErr)
			}
			output[displayPath(res, fullPath)] = data
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}

	if exit != 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // diagnostics already printed
	}
	return nil
}

func displayPath(res *driver.Result, fullPath bool) string {
	if res.FileID != 0 {
		mode := "auto"
		if fullPath {
			mode = "absolute"
		}
		return res.FileSet.Get(res.FileID).FormatPath(mode, res.FileSet.BaseDir())
	}
	if fullPath {
		if abs, err := source.AbsolutePath(res.Path); err == nil {
			return abs
		}
	}
	return res.Path
}
