package cli

// This file contains the delete and clear commands.

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *App) delete(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("no run id specified")
	}
	runID := ctx.Args().First()
	namespace := ctx.String("namespace")

	if !a.repository(ctx).Delete(runID, namespace) {
		return fmt.Errorf("run %s was not deleted", runID)
	}

	fmt.Printf("Deleted run %s\n", runID)
	return nil
}

func (a *App) clear(ctx *cli.Context) error {
	if !ctx.Bool("force") {
		return fmt.Errorf("refusing to delete all runs without --force")
	}
	return a.repository(ctx).DeleteAll()
}
