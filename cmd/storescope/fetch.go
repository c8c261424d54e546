package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/fs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	insights, err := deps.Insights.FetchInsights(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storescope.ErrorMessage(err))
		return err
	}

	if c.Save {
		if deps.Reports == nil {
			return storescope.Errorf(storescope.EINTERNAL, "report storage not configured")
		}
		report := storescope.NewReport(insights)
		if err := deps.Reports.CreateReport(deps.Ctx, report); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storescope.ErrorMessage(err))
			return err
		}
		insights.ID = report.ID
		fmt.Fprintf(deps.Stderr, "Saved report %s\n", report.ID)
	}

	if deps.Writer != nil {
		path, err := deps.Writer.WriteReport(deps.Ctx, insights)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storescope.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		return nil
	}

	return printInsights(deps, insights, c.Markdown)
}

func printInsights(deps *Dependencies, insights *storescope.BrandInsights, markdown bool) error {
	if markdown {
		fmt.Fprint(deps.Stdout, fs.FormatReport(insights))
		return nil
	}
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(insights)
}
