package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citysafe/citysafe-go/internal/forms"
	"github.com/citysafe/citysafe-go/internal/models"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := forms.ValidateLogin(forms.Login{Email: email, Password: password}); err != nil {
				return err
			}
			creds, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.sess.SetCredentials(creds); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", creds.User.Name, creds.User.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, userID, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := forms.Register{
				Name:     name,
				UserID:   userID,
				Email:    email,
				Password: password,
				Confirm:  confirm,
			}
			if err := forms.ValidateRegister(form); err != nil {
				return err
			}
			creds, err := a.client.Register(cmd.Context(), models.RegisterInput{
				Name:     name,
				UserID:   userID,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := a.sess.SetCredentials(creds); err != nil {
				return err
			}
			fmt.Printf("Registered %s (%s)\n", creds.User.Name, creds.User.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&userID, "userid", "", "unique user id (lowercase letters, numbers, underscore)")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (min 6 characters)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Invalidate(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Bootstrap(cmd.Context(), a.client); err != nil {
				return err
			}
			u := a.sess.User()
			fmt.Printf("%s (%s)\n", u.Name, u.UserID)
			if u.Email != "" {
				fmt.Println(u.Email)
			}
			if u.Bio != "" {
				fmt.Println(u.Bio)
			}
			return nil
		},
	}
}
