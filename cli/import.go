package cli

// This file contains the import command, which ingests an
// already-collected pprof profile as a run payload.

import (
	"fmt"

	"github.com/google/pprof/profile"
	"github.com/urfave/cli/v2"

	"github.com/perfgo/profstore/model"
)

func (a *App) importProfile(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("no profile file specified")
	}
	profilePath := ctx.Args().First()

	f, err := a.fs.Open(profilePath)
	if err != nil {
		return fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	prof, err := profile.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	payload := flattenProfile(prof)

	id, err := a.repository(ctx).Save(payload, ctx.String("namespace"), ctx.String("id"))
	if err != nil {
		return err
	}

	a.logger.Debug().
		Str("profile", profilePath).
		Int("functions", len(payload)).
		Msg("Imported profile")
	fmt.Println(id)
	return nil
}

// flattenProfile folds a pprof profile into the nested-mapping payload
// shape: leaf function name -> sample type ("type/unit") -> total value.
func flattenProfile(prof *profile.Profile) model.Payload {
	payload := model.Payload{}
	for _, sample := range prof.Sample {
		name := leafFunction(sample)

		entry, ok := payload[name].(map[string]any)
		if !ok {
			entry = map[string]any{}
			payload[name] = entry
		}

		for i, value := range sample.Value {
			if i >= len(prof.SampleType) {
				break
			}
			st := prof.SampleType[i]
			key := fmt.Sprintf("%s/%s", st.Type, st.Unit)
			total, _ := entry[key].(float64)
			entry[key] = total + float64(value)
		}
	}
	return payload
}

// leafFunction returns the innermost symbolized function of a sample's
// call stack, or "unknown" when nothing resolved.
func leafFunction(sample *profile.Sample) string {
	for _, loc := range sample.Location {
		for _, line := range loc.Line {
			if line.Function != nil && line.Function.Name != "" {
				return line.Function.Name
			}
		}
	}
	return "unknown"
}
