package cli

// This file contains the save command, which reads a JSON payload from a
// file or stdin and persists it as a run.

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/perfgo/profstore/model"
)

func (a *App) save(ctx *cli.Context) error {
	namespace := ctx.String("namespace")
	runID := ctx.String("id")

	var reader io.Reader = os.Stdin
	if ctx.Args().Len() > 0 {
		f, err := a.fs.Open(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("failed to open payload file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	var payload model.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("payload is not a JSON object: %w", err)
	}

	// The library treats write failures as best-effort and still hands
	// back a run id; the CLI fails loudly instead.
	id, err := a.repository(ctx).Save(payload, namespace, runID)
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
