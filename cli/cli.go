package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/perfgo/profstore/runs"
)

const AppName = "profstore"
const defaultSuffix = "xhprof"

type App struct {
	logger zerolog.Logger
	fs     afero.Fs
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		fs:     afero.NewOsFs(),
		cli: &cli.App{
			Name:  AppName,
			Usage: "Store, list and retrieve profiling run records",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
				&cli.StringFlag{
					Name:    "data-dir",
					Usage:   "Directory holding run files",
					EnvVars: []string{"PROFSTORE_DATA_DIR"},
					Value:   ".",
				},
				&cli.StringFlag{
					Name:    "suffix",
					Usage:   "Filename suffix identifying managed run files",
					EnvVars: []string{"PROFSTORE_SUFFIX"},
					Value:   defaultSuffix,
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "save",
		Usage:     "Save a run payload read from a JSON file or stdin",
		ArgsUsage: "[FILE]",
		Action:    app.save,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Namespace grouping the run (e.g. application name)",
			},
			&cli.StringFlag{
				Name:  "id",
				Usage: "Explicit run id (generated when omitted)",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "get",
		Usage:     "Print a stored run payload",
		ArgsUsage: "ID",
		Action:    app.get,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Namespace the run was saved under",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List stored runs, newest first",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Only show runs in this namespace",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "delete",
		Usage:     "Delete a stored run",
		ArgsUsage: "ID",
		Action:    app.delete,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Namespace the run was saved under",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "clear",
		Usage:  "Delete every stored run in the data directory",
		Action: app.clear,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Actually delete (required)",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Import a pprof profile as a run payload",
		ArgsUsage: "PROFILE",
		Action:    app.importProfile,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Namespace to file the imported run under",
			},
			&cli.StringFlag{
				Name:  "id",
				Usage: "Explicit run id (generated when omitted)",
			},
		},
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

// repository builds the run repository from the global flags. The data
// directory and suffix are fixed for the lifetime of one invocation.
func (a *App) repository(ctx *cli.Context) *runs.Repository {
	return runs.New(a.logger, a.fs, ctx.String("data-dir"), ctx.String("suffix"))
}
