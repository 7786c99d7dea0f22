package cli

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *App) get(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("no run id specified")
	}
	runID := ctx.Args().First()
	namespace := ctx.String("namespace")

	payload, description, err := a.repository(ctx).Get(runID, namespace)
	if err != nil {
		return err
	}

	if payload == nil {
		// Missing run: the description already names the unknown id.
		return fmt.Errorf("%s", description)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render payload: %w", err)
	}

	fmt.Printf("%s\n%s\n", description, out)
	return nil
}
