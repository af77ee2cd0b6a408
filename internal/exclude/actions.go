// Package exclude implements the exclusions command: print the lazy-load
// exclusion paths derived from a page's stored measurement.
package exclude

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/speedkit/lcpboost/internal/common"
	"github.com/speedkit/lcpboost/pkg/db"
	"github.com/speedkit/lcpboost/pkg/injector"
)

// ExclusionsAction prints the exclusion paths for one page identity.
func ExclusionsAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if cfg.HomeURL == "" {
		return fmt.Errorf("home_url must be set in the config")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	opt := common.NewOptimizer(cfg, database)
	paths := opt.Exclusions(nil, injector.Request{
		Path:     common.RequestPath(c.String("path")),
		IsMobile: c.Bool("mobile"),
	})

	switch strings.ToLower(c.String("format")) {
	case "yaml":
		out, err := yaml.Marshal(paths)
		if err != nil {
			return fmt.Errorf("failed to marshal paths: %w", err)
		}
		fmt.Print(string(out))
	case "json":
		out, err := json.MarshalIndent(paths, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal paths: %w", err)
		}
		fmt.Println(string(out))
	default:
		if len(paths) == 0 {
			fmt.Println("No exclusions")
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	}
	return nil
}
