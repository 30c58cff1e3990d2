package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/fedsearch/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fedseed:", err)
		os.Exit(1)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the SQLite record store",
		Required: true,
		EnvVars:  []string{"FEDSEARCH_RECORDS_PATH"},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "fedseed",
		Usage:   "Manage and query the fedsearch record store",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or upgrade the record store schema",
				Action: migrateCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "seed",
				Usage:  "Load organizations and their records from a YAML fixtures file",
				Action: seedCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the fixtures file",
						Required: true,
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Run one federated search and print ranked results",
				ArgsUsage: "TERM",
				Action:    queryCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "org",
						Aliases:  []string{"o"},
						Usage:    "Organization id to search within",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Entity type filter (all, report, data_entry, document, comment)",
						Value:   "all",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Candidates per collection",
						Value: 10,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-collection query timeout",
						Value: 5 * time.Second,
					},
				},
			},
		},
	}
}
