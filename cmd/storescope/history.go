package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/insight"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := storescope.ReportFilter{Limit: c.Limit}
	if c.URL != "" {
		// Reports are stored under the normalized base URL.
		u, err := insight.NormalizeURL(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storescope.ErrorMessage(err))
			return err
		}
		filter.WebsiteURL = &u
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storescope.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved reports. Use 'storescope fetch <url> --save' to save one.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tBRAND\tPRODUCTS\tURL")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.BrandName, r.TotalProducts, r.WebsiteURL)
	}
	return w.Flush()
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storescope.ErrorMessage(err))
		return err
	}
	return printInsights(deps, report.Insights, c.Markdown)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: deleting report %s requires --force\n", c.ID)
		return storescope.Errorf(storescope.EINVALID, "--force required")
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storescope.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}
