package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avatarmedicine/dietdiary/internal/adapter/dietapi"
)

func loginCmd() *cobra.Command {
	var (
		userKey  string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ownerID, err := env.client.Login(cmd.Context(), dietapi.Credentials{
				UserKey:  userKey,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := env.store.SetOwnerID(ownerID); err != nil {
				return fmt.Errorf("store session: %w", err)
			}

			fmt.Printf("Logged in as user %s\n", ownerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userKey, "userkey", "", "user key")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.ClearOwnerID(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}
