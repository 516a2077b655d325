package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/reports"
)

func newReportsCmd(a *app) *cobra.Command {
	var search, category, from, to string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse scraped crime reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.client.AllCrimeReports(cmd.Context())
			if err != nil {
				a.log.Error("crime report fetch failed", "error", err)
				fmt.Println("Could not load crime reports. Try again.")
				return nil
			}

			q := reports.Query{
				Search:   search,
				Category: reports.Category(category),
			}
			if q.From, err = parseDay(from); err != nil {
				return err
			}
			if q.To, err = parseDay(to); err != nil {
				return err
			}

			shown := reports.Filter(reports.Normalize(raw), q)
			if len(shown) == 0 {
				fmt.Println("No reports match.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tCATEGORY\tLOCATION\tTITLE")
			for _, r := range shown {
				date := "unknown"
				if r.PublishedAt != nil {
					date = r.PublishedAt.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					date, r.Category, r.Location, truncate(r.Title, 70))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "terms matched against title, summary, source, location")
	cmd.Flags().StringVar(&category, "category", string(reports.CategoryAll), "crime category filter")
	cmd.Flags().StringVar(&from, "from", "", "earliest publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest publication date (YYYY-MM-DD)")
	return cmd
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
