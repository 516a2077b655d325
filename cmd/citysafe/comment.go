package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/comments"
)

func newCommentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage comments on a post",
	}
	cmd.AddCommand(
		newCommentAddCmd(a),
		newCommentDeleteCmd(a),
	)
	return cmd
}

func newCommentAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <post-id> <text...>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Bootstrap(cmd.Context(), a.client); err != nil {
				return err
			}
			postID := args[0]
			text := strings.Join(args[1:], " ")

			view, err := a.client.PostByID(cmd.Context(), postID)
			if err != nil {
				return err
			}

			ledger := comments.NewLedger(postID, a.client, view.Post.Comments)
			c, err := ledger.Post(cmd.Context(), a.sess.User().ID, text)
			if err != nil {
				return err
			}
			fmt.Println("Commented:", c.ID)
			return nil
		},
	}
}

func newCommentDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id> <comment-id>",
		Short: "Delete your own comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Bootstrap(cmd.Context(), a.client); err != nil {
				return err
			}
			postID, commentID := args[0], args[1]

			view, err := a.client.PostByID(cmd.Context(), postID)
			if err != nil {
				return err
			}

			ledger := comments.NewLedger(postID, a.client, view.Post.Comments)
			if err := ledger.Delete(cmd.Context(), commentID); err != nil {
				return err
			}
			fmt.Println("Comment deleted")
			return nil
		},
	}
}
