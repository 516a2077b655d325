package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/fakeapi"
	"github.com/citysafe/citysafe-go/internal/models"
)

func newDevServerCmd(a *app) *cobra.Command {
	var port string
	var seed bool

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local in-memory backend for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := fakeapi.NewStore()
			if seed {
				seedStore(store)
			}

			srv := fakeapi.NewServer(store).NewHTTPServer(port)
			a.log.Info("devserver listening", "addr", srv.Addr, "seeded", seed)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-stop:
			}

			a.log.Info("devserver shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	defaultPort := os.Getenv("PORT")
	if defaultPort == "" {
		defaultPort = "8080"
	}
	cmd.Flags().StringVar(&port, "port", defaultPort, "listen port")
	cmd.Flags().BoolVar(&seed, "seed", true, "preload sample crime data")
	return cmd
}

// seedStore loads a small crime dataset so the map and reports commands show
// something out of the box.
func seedStore(store *fakeapi.Store) {
	store.SeedLocations([]models.LocationCount{
		{Name: "andheri", Count: 50},
		{Name: "bandra", Count: 31},
		{Name: "dadar", Count: 24},
		{Name: "kurla", Count: 18},
		{Name: "colaba", Count: 9},
		{Name: "powai", Count: 4},
	})

	published := func(daysAgo int) *time.Time {
		t := time.Now().AddDate(0, 0, -daysAgo).UTC()
		return &t
	}
	store.SeedReports([]models.CrimeReport{
		{
			ID:           "seed-1",
			Title:        "Chain snatching reported near Andheri station",
			Summary:      "Two commuters reported a theft during the evening rush.",
			Source:       "local desk",
			LocationName: "andheri",
			PublishedAt:  published(1),
		},
		{
			ID:           "seed-2",
			Title:        "Assault outside Bandra nightclub under investigation",
			Summary:      "Police are reviewing CCTV footage after an attack was reported.",
			Source:       "crime wire",
			LocationName: "bandra",
			PublishedAt:  published(3),
		},
		{
			ID:           "seed-3",
			Title:        "Online fraud ring busted in Kurla",
			Summary:      "A phishing scam operation was shut down after a month-long probe.",
			Source:       "cyber cell",
			LocationName: "kurla",
			PublishedAt:  published(7),
		},
	})
}
