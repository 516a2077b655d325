package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/api"
	"github.com/citysafe/citysafe-go/internal/forms"
	"github.com/citysafe/citysafe-go/internal/models"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit user profiles",
	}
	cmd.AddCommand(
		newProfileShowCmd(a),
		newProfileEditCmd(a),
	)
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show a profile, your own without an argument",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   models.Profile
				err error
			)
			if len(args) == 0 {
				if err := a.sess.Bootstrap(cmd.Context(), a.client); err != nil {
					return err
				}
				p, err = a.client.OwnProfile(cmd.Context())
			} else {
				p, err = a.client.UserProfile(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s)\n", p.User.Name, p.User.UserID)
			if p.User.Bio != "" {
				fmt.Println(p.User.Bio)
			}
			fmt.Printf("%d posts\n", len(p.Posts))
			for _, post := range p.Posts {
				fmt.Printf("  [%s] %s\n", post.ID, truncate(post.Text, 60))
			}
			return nil
		},
	}
}

func newProfileEditCmd(a *app) *cobra.Command {
	var name, username, bio, picPath string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit your own profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Bootstrap(cmd.Context(), a.client); err != nil {
				return err
			}
			current := a.sess.User()

			// Unset flags keep their current value; the form always sends
			// the full profile.
			if name == "" {
				name = current.Name
			}
			if username == "" {
				username = current.UserID
			}
			if bio == "" {
				bio = current.Bio
			}

			if err := forms.ValidateEditProfile(forms.EditProfile{Name: name, Username: username}); err != nil {
				return err
			}

			in := api.EditProfileInput{
				ID:       current.ID,
				Name:     name,
				Username: username,
				Bio:      bio,
			}
			if picPath != "" {
				content, err := os.ReadFile(picPath)
				if err != nil {
					return fmt.Errorf("reading profile picture %s: %w", picPath, err)
				}
				in.ProfilePic = &models.Upload{
					Name:    filepath.Base(picPath),
					Content: content,
				}
			}

			updated, err := a.client.EditProfile(cmd.Context(), in)
			if err != nil {
				return err
			}

			creds := models.Credentials{Token: a.sess.Token(), User: updated}
			if err := a.sess.SetCredentials(creds); err != nil {
				return err
			}
			fmt.Printf("Profile updated: %s (%s)\n", updated.Name, updated.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&username, "username", "", "user id (lowercase letters, numbers, underscore)")
	cmd.Flags().StringVar(&bio, "bio", "", "profile bio")
	cmd.Flags().StringVar(&picPath, "picture", "", "profile picture file")
	return cmd
}
