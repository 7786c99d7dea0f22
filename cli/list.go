package cli

// This file contains the list command for displaying stored runs.

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	filterNamespace := ctx.String("namespace")
	limit := ctx.Int("limit")

	listings, err := a.repository(ctx).List()
	if err != nil {
		return err
	}

	// Apply namespace filter if specified
	if filterNamespace != "" {
		filtered := listings[:0]
		for _, l := range listings {
			if l.Namespace == filterNamespace {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}

	if len(listings) == 0 {
		if filterNamespace != "" {
			fmt.Printf("No runs found in namespace: %s\n", filterNamespace)
		} else {
			fmt.Println("No runs found")
		}
		return nil
	}

	// Apply limit
	display := listings
	if limit > 0 && limit < len(display) {
		display = display[:limit]
	}

	fmt.Printf("\n=== Runs (%d total) ===\n\n", len(listings))

	for _, l := range display {
		timestamp := l.ModifiedAt.Format("2006-01-02 15:04:05")
		fmt.Printf("%s  %8.1f KB  id=%s  namespace=%s\n",
			timestamp, float64(l.SizeBytes)/1024, l.RunID, l.Namespace)
		fmt.Printf("   %s\n", l.FilePath)
	}

	return nil
}
