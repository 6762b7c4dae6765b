package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kinviz/kingraph/client"
)

func newExportCmd() *cobra.Command {
	var (
		outputPath      string
		interesting     []string
		edges           []string
		anchor          string
		includeAll      bool
		includePrivate  bool
		anonymizeLiving bool
		estimateDates   bool
		maxPersons      int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a family tree subgraph to a TAM JSON file",
		Long: `Traverse the registry from the interesting people, stopping at edge
people, and write the resulting nodes and links as a TAM visualization
document. The file is written atomically: a failed export never leaves a
partial document behind.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := apiClient.Export(ctx, client.Selection{
				IncludeAll:      includeAll,
				Interesting:     interesting,
				EdgePeople:      edges,
				Anchor:          anchor,
				IncludePrivate:  includePrivate,
				AnonymizeLiving: anonymizeLiving,
				EstimateDates:   estimateDates,
				MaxPersons:      maxPersons,
			})
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("marshalling export: %w", err)
			}
			out = append(out, '\n')

			if outputPath == "" {
				outputPath = fmt.Sprintf("kingraph-export-%s.json",
					time.Now().UTC().Format("20060102T150405Z"))
			}

			if outputPath == "-" {
				_, err = os.Stdout.Write(out)
				return err
			}

			if err := writeFileAtomic(outputPath, out); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Exported %d nodes, %d links to %s\n",
				len(doc.Nodes), len(doc.Links), outputPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: kingraph-export-<timestamp>.json, use - for stdout)")
	cmd.Flags().StringSliceVarP(&interesting, "interesting", "i", nil, "Interesting person IDs seeding the traversal (repeatable)")
	cmd.Flags().StringSliceVarP(&edges, "edge", "e", nil, "Edge person IDs bounding the traversal (repeatable)")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Anchor person ID (generation 0 reference)")
	cmd.Flags().BoolVar(&includeAll, "all", false, "Include every person in the registry")
	cmd.Flags().BoolVar(&includePrivate, "include-private", false, "Include persons flagged private")
	cmd.Flags().BoolVar(&anonymizeLiving, "anonymize-living", false, "Replace names and dates of living persons")
	cmd.Flags().BoolVar(&estimateDates, "estimate-dates", false, "Estimate missing birth years from dated relatives")
	cmd.Flags().IntVar(&maxPersons, "max-persons", 0, "Cap the traversal at this many persons (0 = server default)")

	return cmd
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so readers never observe a half-written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".kingraph-export-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmp.Name()) //nolint:errcheck
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return err
	}

	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return err
	}

	return os.Rename(tmp.Name(), path)
}
