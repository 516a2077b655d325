package main

import (
	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/api"
	"github.com/citysafe/citysafe-go/internal/config"
	"github.com/citysafe/citysafe-go/internal/logging"
	"github.com/citysafe/citysafe-go/internal/session"
)

// app carries the process-wide dependencies every command consumes. The
// session is constructed once here and injected everywhere; no command reads
// credential storage on its own.
type app struct {
	cfg    *config.Config
	log    *logging.Logger
	sess   *session.Session
	client *api.Client
}

func newApp() *app {
	cfg := config.Load()
	sess := session.New(session.NewFileStore(cfg.StateDir))
	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(sess),
		api.WithTimeout(cfg.HTTPTimeout),
	)
	return &app{
		cfg:    cfg,
		log:    logging.Default(),
		sess:   sess,
		client: client,
	}
}

func newRootCmd() *cobra.Command {
	a := newApp()

	root := &cobra.Command{
		Use:           "citysafe",
		Short:         "Community safety reporting client",
		Long:          "citysafe posts incident reports, browses the community feed, and shows crime density for covered areas.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newMeCmd(a),
		newFeedCmd(a),
		newPostCmd(a),
		newVoteCmd(a),
		newCommentCmd(a),
		newMapCmd(a),
		newReportsCmd(a),
		newProfileCmd(a),
		newDevServerCmd(a),
	)
	return root
}
