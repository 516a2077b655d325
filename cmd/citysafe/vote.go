package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/vote"
)

func newVoteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Like or downvote a post",
	}
	cmd.AddCommand(
		newVoteKindCmd(a, "like", vote.KindLike),
		newVoteKindCmd(a, "down", vote.KindDownvote),
	)
	return cmd
}

func newVoteKindCmd(a *app, name string, kind vote.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <post-id>",
		Short: "Toggle a " + name + " vote on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Bootstrap(cmd.Context(), a.client); err != nil {
				return err
			}
			postID := args[0]

			view, err := a.client.PostByID(cmd.Context(), postID)
			if err != nil {
				return err
			}

			engine := vote.NewEngine(a.client)
			engine.SeedFromPost(&view.Post, a.sess.User().ID)

			state, err := engine.Apply(cmd.Context(), postID, kind)
			if err != nil {
				return err
			}

			fmt.Printf("Likes %d  Downvotes %d", state.Likes, state.DownVotes)
			switch {
			case state.ViewerHasLiked():
				fmt.Print("  (you liked this)")
			case state.ViewerHasDownvoted():
				fmt.Print("  (you downvoted this)")
			}
			fmt.Println()
			return nil
		},
	}
}
