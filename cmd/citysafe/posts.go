package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/feed"
	"github.com/citysafe/citysafe-go/internal/forms"
	"github.com/citysafe/citysafe-go/internal/models"
)

func newFeedCmd(a *app) *cobra.Command {
	var filter, search, sortKey string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse the incident feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := a.client.AllPosts(cmd.Context())
			if err != nil {
				// Display surfaces degrade to empty output, they don't fail.
				a.log.Error("feed fetch failed", "error", err)
				fmt.Println("Could not load the feed. Try again.")
				return nil
			}

			shown := feed.Apply(posts, feed.Query{
				Filter: filter,
				Search: search,
				Sort:   feed.SortKey(sortKey),
			})

			if len(shown) == 0 {
				fmt.Println("No posts.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tLOCATION\tSCORE\tTEXT")
			for _, p := range shown {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					p.ID, p.Type, p.Location, p.Score(), truncate(p.Text, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&filter, "filter", feed.FilterAll, "post type filter (all, alert, update, notice)")
	cmd.Flags().StringVar(&search, "search", "", "substring match on text, author, location, tags")
	cmd.Flags().StringVar(&sortKey, "sort", string(feed.SortRecent), "sort order: recent, popular, views")
	return cmd
}

func newPostCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Show, create, edit, and delete incident reports",
	}
	cmd.AddCommand(
		newPostShowCmd(a),
		newPostAddCmd(a),
		newPostDeleteCmd(a),
	)
	return cmd
}

func newPostShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show one post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.client.PostByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := view.Post
			fmt.Printf("%s (%s) @ %s\n", p.User.Name, p.Type, p.Location)
			fmt.Println(p.Text)
			if len(p.Tags) > 0 {
				fmt.Println("Tags:", strings.Join(p.Tags, ", "))
			}
			fmt.Printf("Likes %d  Downvotes %d  Views %d\n",
				p.Likes.Count, p.DownVotes.Count, p.Views)

			if len(p.Comments) > 0 {
				fmt.Println("\nComments:")
				for _, c := range p.Comments {
					fmt.Printf("  [%s] %s: %s\n", c.ID, c.User.Name, c.Text)
				}
			}
			return nil
		},
	}
}

func newPostAddCmd(a *app) *cobra.Command {
	var text, postType, location string
	var tags, imagePaths []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a new incident report",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := forms.AddPost{
				Text:     text,
				Type:     postType,
				Location: location,
				Tags:     tags,
				Images:   len(imagePaths),
			}
			if err := forms.ValidateAddPost(form); err != nil {
				return err
			}

			images, err := readUploads(imagePaths)
			if err != nil {
				return err
			}

			post, err := a.client.AddPost(cmd.Context(), models.AddPostInput{
				Text:     text,
				Type:     postType,
				Location: location,
				Tags:     tags,
				Images:   images,
			})
			if err != nil {
				return err
			}
			fmt.Println("Posted:", post.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "report text (10-500 characters)")
	cmd.Flags().StringVar(&postType, "type", "", "post type: alert, update, notice")
	cmd.Flags().StringVar(&location, "location", "", "area name")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable, max 5)")
	cmd.Flags().StringSliceVar(&imagePaths, "image", nil, "image file (repeatable, max 5)")
	return cmd
}

func newPostDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete your own post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeletePost(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Post deleted")
			return nil
		},
	}
}

func readUploads(paths []string) ([]models.Upload, error) {
	var uploads []models.Upload
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading image %s: %w", p, err)
		}
		uploads = append(uploads, models.Upload{
			Name:    filepath.Base(p),
			Content: content,
		})
	}
	return uploads, nil
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
