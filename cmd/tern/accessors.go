package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tern/internal/driver"
	"tern/internal/project"
)

var accessorsCmd = &cobra.Command{
	Use:   "accessors [flags] <manifest.toml>",
	Short: "Print accessor tables for the custom types in a manifest",
	Long:  `Accessors builds the accessible-field table for every custom type in a manifest: the fields present in all variants at the same position with the same type`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAccessors,
}

func init() {
	accessorsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	accessorsCmd.Flags().Bool("disk-cache", false, "cache computed tables on disk, keyed by manifest content")
	accessorsCmd.Flags().String("cache-dir", "", "override the disk cache directory")
}

func runAccessors(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	path := args[0]
	// #nosec G304 -- path comes from the CLI
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	var cache *driver.DiskCache
	digest := driver.HashContent(raw)
	if enableDiskCache {
		cache, err = driver.OpenDiskCache(cacheDir)
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if payload, ok, cacheErr := cache.Get(digest); cacheErr == nil && ok {
			return renderPayload(payload, format)
		}
	}

	man, err := project.Parse(path, raw)
	if err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	res, err := driver.CheckManifest(man, path, driver.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	order := make([]string, 0, len(man.Types))
	for _, decl := range man.Types {
		order = append(order, decl.Name)
	}
	payload := driver.PayloadFromResult(man.Module.Name, res, order)

	if cache != nil {
		if err := cache.Put(digest, payload); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write disk cache: %v\n", err)
		}
	}
	return renderPayload(payload, format)
}

func renderPayload(payload driver.DiskPayload, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case "pretty":
		for i, table := range payload.Tables {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "%s\n", table.Name)
			if len(table.Fields) == 0 {
				fmt.Fprintln(os.Stdout, "  (no fields accessible across all variants)")
				continue
			}
			for _, field := range table.Fields {
				fmt.Fprintf(os.Stdout, "  .%s: %s (position %d)\n", field.Field, field.Type, field.Position)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
