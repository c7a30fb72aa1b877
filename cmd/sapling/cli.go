package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/sapling/internal/config"
	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/ops"
	"github.com/hpungsan/sapling/internal/species"
	"github.com/hpungsan/sapling/internal/web"
)

// maxNoteBytes caps how much of stdin is read for a pledge note.
// Character limits are enforced later by ops.PledgeStore.
const maxNoteBytes = 64 * 1024

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, cat *species.Catalog) *cli.App {
	app := &cli.App{
		Name:    "sapling",
		Usage:   "Tree-planting plans for CO2 offsets",
		Version: Version,
		Commands: []*cli.Command{
			plansCmd(cfg, cat),
			impactCmd(cat),
			speciesCmd(cat),
			pledgeCmd(db, cfg, cat),
			serveCmd(db, cfg, cat),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// plansCmd creates the plans command.
func plansCmd(cfg *config.Config, cat *species.Catalog) *cli.Command {
	return &cli.Command{
		Name:  "plans",
		Usage: "Rank planting plans that offset a CO2 target",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "target-kg", Aliases: []string{"t"}, Required: true, Usage: "Kilograms of CO2 to offset"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Plans(cat, cfg, ops.PlansInput{TargetKg: c.Float64("target-kg")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// impactCmd creates the impact command.
func impactCmd(cat *species.Catalog) *cli.Command {
	return &cli.Command{
		Name:  "impact",
		Usage: "Compute CO2 absorbed by a fixed planting",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "species", Aliases: []string{"s"}, Required: true, Usage: "Species id"},
			&cli.IntFlag{Name: "trees", Aliases: []string{"n"}, Required: true, Usage: "Number of trees"},
			&cli.IntFlag{Name: "years", Aliases: []string{"y"}, Required: true, Usage: "Number of years"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Impact(cat, ops.ImpactInput{
				SpeciesID: c.String("species"),
				Trees:     c.Int("trees"),
				Years:     c.Int("years"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// speciesCmd creates the species command.
func speciesCmd(cat *species.Catalog) *cli.Command {
	return &cli.Command{
		Name:  "species",
		Usage: "List the species catalog",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-sentinel", Usage: "Include the generic average entry"},
		},
		Action: func(c *cli.Context) error {
			return outputJSON(ops.SpeciesList(cat, ops.SpeciesInput{IncludeSentinel: c.Bool("include-sentinel")}))
		},
	}
}

// pledgeCmd groups the pledge subcommands.
func pledgeCmd(db *sql.DB, cfg *config.Config, cat *species.Catalog) *cli.Command {
	return &cli.Command{
		Name:  "pledge",
		Usage: "Record and manage commitments to offset plans",
		Subcommands: []*cli.Command{
			pledgeStoreCmd(db, cfg, cat),
			pledgeFetchCmd(db),
			pledgeListCmd(db),
			pledgeDeleteCmd(db),
			pledgeSummaryCmd(db),
		},
	}
}

// pledgeStoreCmd creates the pledge store command.
func pledgeStoreCmd(db *sql.DB, cfg *config.Config, cat *species.Catalog) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Pledge one of the plans offered for a target",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "target-kg", Aliases: []string{"t"}, Required: true, Usage: "Kilograms of CO2 the plan was generated for"},
			&cli.StringFlag{Name: "species", Aliases: []string{"s"}, Required: true, Usage: "Species id of the chosen plan"},
			&cli.IntFlag{Name: "trees", Aliases: []string{"n"}, Required: true, Usage: "Tree count of the chosen plan"},
			&cli.IntFlag{Name: "years", Aliases: []string{"y"}, Required: true, Usage: "Duration of the chosen plan"},
			&cli.StringFlag{Name: "note", Usage: "Optional note (use - to read it from stdin)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PledgeStoreInput{
				TargetKg:  c.Float64("target-kg"),
				SpeciesID: c.String("species"),
				Trees:     c.Int("trees"),
				Years:     c.Int("years"),
			}

			if c.IsSet("note") {
				note := c.String("note")
				if note == "-" {
					if !stdinHasData() {
						return outputError(errors.NewInvalidRequest("--note - requires the note to be piped via stdin"))
					}
					text, err := readStdin(maxNoteBytes)
					if err != nil {
						return outputError(errors.NewInvalidRequest(err.Error()))
					}
					note = text
				}
				input.Note = &note
			}

			output, err := ops.PledgeStore(c.Context, db, cat, cfg, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// pledgeFetchCmd creates the pledge fetch command.
func pledgeFetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a pledge by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.PledgeFetch(c.Context, db, ops.PledgeFetchInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// pledgeListCmd creates the pledge list command.
func pledgeListCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List pledges, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max items (max 100)"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.PledgeList(c.Context, db, ops.PledgeListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// pledgeDeleteCmd creates the pledge delete command.
func pledgeDeleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Permanently delete a pledge",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.PledgeDelete(c.Context, db, ops.PledgeDeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// pledgeSummaryCmd creates the pledge summary command.
func pledgeSummaryCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Total trees and CO2 across all pledges",
		Action: func(c *cli.Context) error {
			output, err := ops.PledgeSummary(c.Context, db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config, cat *species.Catalog) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8420, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			port := c.Int("port")
			if port < 1 || port > 65535 {
				return outputError(errors.NewInvalidRequest("port must be between 1 and 65535"))
			}
			srv := web.NewServer(db, cfg, cat, Version, c.String("bind"), port)
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var sErr *errors.SaplingError
	if stderrors.As(err, &sErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most limit bytes from stdin.
// Input longer than limit is an error rather than silently truncated.
func readStdin(limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("stdin exceeds %d bytes", limit)
	}
	return strings.TrimSpace(string(data)), nil
}
