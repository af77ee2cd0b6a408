// Package store implements the CLI commands for inspecting and editing
// stored beacon measurements.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/speedkit/lcpboost/models"
	dbpkg "github.com/speedkit/lcpboost/pkg/db"
)

// SetAction stores or replaces the measurement for one page identity.
// The row body comes from --json or --file in the same shape the beacon
// posts; --url and --mobile pin the identity.
func SetAction(c *cli.Context) error {
	if c.IsSet("json") && c.IsSet("file") {
		return fmt.Errorf("cannot use both --json and --file")
	}

	var data []byte
	switch {
	case c.IsSet("json"):
		data = []byte(c.String("json"))
	case c.IsSet("file"):
		var err error
		data, err = os.ReadFile(c.String("file"))
		if err != nil {
			return fmt.Errorf("failed to read row file: %w", err)
		}
	default:
		return fmt.Errorf("provide the row body via --json or --file")
	}

	var row models.PerformanceRow
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("failed to parse row JSON: %w", err)
	}
	if c.IsSet("url") {
		row.URL = c.String("url")
	}
	if c.IsSet("mobile") {
		row.IsMobile = c.Bool("mobile")
	}
	if row.URL == "" {
		return fmt.Errorf("row has no URL; pass --url or include one in the body")
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.UpsertRow(&row); err != nil {
		return fmt.Errorf("failed to store row: %w", err)
	}
	fmt.Printf("Stored measurement for %s (mobile=%t)\n", row.URL, row.IsMobile)
	return nil
}

// GetAction prints the stored measurement for one page identity.
func GetAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	url := c.String("url")
	if url == "" {
		return fmt.Errorf("--url is required")
	}

	row, err := database.GetRow(url, c.Bool("mobile"))
	if err != nil {
		return fmt.Errorf("failed to get row: %w", err)
	}
	if row == nil {
		fmt.Println("No measurement found")
		return nil
	}

	switch strings.ToLower(c.String("format")) {
	case "yaml":
		out, err := yaml.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		fmt.Print(string(out))
	default:
		out, err := json.MarshalIndent(row, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		fmt.Println(string(out))
	}
	return nil
}

// ListAction prints stored measurements as a table.
func ListAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	infos, err := database.ListRows(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list rows: %w", err)
	}
	if len(infos) == 0 {
		fmt.Println("No measurements found")
		return nil
	}

	fmt.Printf("%-6s %-50s %-8s %-8s %-20s\n", "ID", "URL", "Mobile", "LCP", "Updated")
	fmt.Println(strings.Repeat("-", 96))
	for _, info := range infos {
		lcp := "yes"
		if !info.HasLCP {
			lcp = "no"
		}
		fmt.Printf("%-6d %-50s %-8t %-8s %-20s\n",
			info.RowID,
			truncate(info.URL, 50),
			info.IsMobile,
			lcp,
			info.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Printf("\nTotal: %d measurements\n", len(infos))
	return nil
}

// DeleteAction removes the measurement for one page identity.
func DeleteAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	url := c.String("url")
	if url == "" {
		return fmt.Errorf("--url is required")
	}

	deleted, err := database.DeleteRow(url, c.Bool("mobile"))
	if err != nil {
		return fmt.Errorf("failed to delete row: %w", err)
	}
	if !deleted {
		fmt.Println("No measurement found")
		return nil
	}
	fmt.Printf("Deleted measurement for %s (mobile=%t)\n", url, c.Bool("mobile"))
	return nil
}

// PurgeAction removes measurements not updated within --older-than.
func PurgeAction(c *cli.Context) error {
	age, err := time.ParseDuration(c.String("older-than"))
	if err != nil {
		return fmt.Errorf("invalid --older-than duration: %w", err)
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	n, err := database.PurgeOlderThan(time.Now().Add(-age))
	if err != nil {
		return fmt.Errorf("failed to purge rows: %w", err)
	}
	fmt.Printf("Purged %d measurements\n", n)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
