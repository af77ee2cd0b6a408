// Package scan implements the scan command: preview which elements of a
// rendered page the beacon would observe as LCP candidates.
package scan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/speedkit/lcpboost/internal/common"
	"github.com/speedkit/lcpboost/pkg/fetcher"
	scanpkg "github.com/speedkit/lcpboost/pkg/scan"
	"github.com/speedkit/lcpboost/pkg/storage"
)

// ScanAction lists the candidate elements of one page.
func ScanAction(c *cli.Context) error {
	if c.IsSet("file") && c.IsSet("url") {
		return fmt.Errorf("cannot use both --file and --url")
	}

	var doc []byte
	var err error
	switch {
	case c.IsSet("file"):
		s := &storage.Storage{}
		doc, err = s.ReadFile(c.String("file"))
	case c.IsSet("url"):
		doc, err = fetcher.NewFetcher().GetHTML(c.String("url"))
	default:
		return fmt.Errorf("provide the page via --file or --url")
	}
	if err != nil {
		return err
	}

	candidates, err := scanpkg.Candidates(string(doc), common.SplitList(c.String("selectors")), c.Int("max"))
	if err != nil {
		return fmt.Errorf("failed to scan document: %w", err)
	}

	switch strings.ToLower(c.String("format")) {
	case "yaml":
		out, err := yaml.Marshal(candidates)
		if err != nil {
			return fmt.Errorf("failed to marshal candidates: %w", err)
		}
		fmt.Print(string(out))
	case "json":
		out, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal candidates: %w", err)
		}
		fmt.Println(string(out))
	default:
		if len(candidates) == 0 {
			fmt.Println("No candidates found")
			return nil
		}
		fmt.Printf("%-10s %-50s %-30s\n", "Tag", "Src", "Srcset")
		fmt.Println(strings.Repeat("-", 92))
		for _, cand := range candidates {
			fmt.Printf("%-10s %-50s %-30s\n", cand.Tag, cand.Src, cand.Srcset)
		}
		fmt.Printf("\nTotal: %d candidates\n", len(candidates))
	}
	return nil
}
