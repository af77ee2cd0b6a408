package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/speedkit/lcpboost/internal/exclude"
	"github.com/speedkit/lcpboost/internal/optimize"
	scancmd "github.com/speedkit/lcpboost/internal/scan"
	"github.com/speedkit/lcpboost/internal/serve"
	"github.com/speedkit/lcpboost/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "lcpboost",
		Usage: "LCP post-processing for rendered HTML pages",
		Commands: []*cli.Command{
			{
				Name:   "optimize",
				Usage:  "Optimize rendered pages from files or URLs",
				Action: optimize.OptimizeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "files", Usage: "Comma-separated HTML files to optimize"},
					&cli.StringFlag{Name: "urls", Usage: "Comma-separated page URLs to fetch and optimize"},
					&cli.StringFlag{Name: "path", Usage: "Request path override for --files inputs"},
					&cli.BoolFlag{Name: "mobile", Usage: "Treat requests as mobile"},
					&cli.StringFlag{Name: "config", Usage: "Config file path"},
					&cli.StringFlag{Name: "output-dir", Value: "optimized", Usage: "Directory for optimized output"},
					&cli.IntFlag{Name: "workers", Usage: "Worker count override"},
					&cli.StringFlag{Name: "db", Usage: "Database file path"},
					&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
				},
			},
			{
				Name:   "exclusions",
				Usage:  "Print lazy-load exclusion paths for a page",
				Action: exclude.ExclusionsAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Usage: "Request path or page URL"},
					&cli.BoolFlag{Name: "mobile", Usage: "Use the mobile measurement"},
					&cli.StringFlag{Name: "config", Usage: "Config file path"},
					&cli.StringFlag{Name: "db", Usage: "Database file path"},
					&cli.StringFlag{Name: "format", Value: "text", Usage: "Output format: text, json, yaml"},
				},
			},
			{
				Name:   "scan",
				Usage:  "List the LCP candidate elements of a page",
				Action: scancmd.ScanAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "HTML file to scan"},
					&cli.StringFlag{Name: "url", Usage: "Page URL to fetch and scan"},
					&cli.StringFlag{Name: "selectors", Usage: "Comma-separated candidate selectors"},
					&cli.IntFlag{Name: "max", Usage: "Cap the number of candidates (0 = no cap)"},
					&cli.StringFlag{Name: "format", Value: "text", Usage: "Output format: text, json, yaml"},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the beacon ingest and optimize HTTP server",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "Config file path"},
					&cli.StringFlag{Name: "listen", Usage: "Listen address override"},
					&cli.StringFlag{Name: "db", Usage: "Database file path"},
					&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
				},
			},
			{
				Name:  "store",
				Usage: "Inspect and edit stored measurements",
				Subcommands: []*cli.Command{
					{
						Name:   "set",
						Usage:  "Store or replace a measurement row",
						Action: store.SetAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "Database file path"},
							&cli.StringFlag{Name: "url", Usage: "Page URL the row belongs to"},
							&cli.BoolFlag{Name: "mobile", Usage: "Store as the mobile row"},
							&cli.StringFlag{Name: "json", Usage: "Row body as inline JSON"},
							&cli.StringFlag{Name: "file", Usage: "Row body from a JSON file"},
						},
					},
					{
						Name:   "get",
						Usage:  "Print the measurement for a page",
						Action: store.GetAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "Database file path"},
							&cli.StringFlag{Name: "url", Usage: "Page URL", Required: true},
							&cli.BoolFlag{Name: "mobile", Usage: "Use the mobile row"},
							&cli.StringFlag{Name: "format", Value: "json", Usage: "Output format: json, yaml"},
						},
					},
					{
						Name:   "list",
						Usage:  "List stored measurements",
						Action: store.ListAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "Database file path"},
							&cli.IntFlag{Name: "limit", Value: 50, Usage: "Maximum rows to show (0 = all)"},
						},
					},
					{
						Name:   "delete",
						Usage:  "Delete the measurement for a page",
						Action: store.DeleteAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "Database file path"},
							&cli.StringFlag{Name: "url", Usage: "Page URL", Required: true},
							&cli.BoolFlag{Name: "mobile", Usage: "Delete the mobile row"},
						},
					},
					{
						Name:   "purge",
						Usage:  "Delete measurements older than a duration",
						Action: store.PurgeAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "Database file path"},
							&cli.StringFlag{Name: "older-than", Value: "720h", Usage: "Age cutoff (time.ParseDuration syntax)"},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
