package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avatarmedicine/dietdiary/internal/adapter/dietapi"
)

func registerCmd() *cobra.Command {
	var (
		userKey  string
		name     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ownerID, err := env.client.Register(cmd.Context(), dietapi.Registration{
				UserKey:  userKey,
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := env.store.SetOwnerID(ownerID); err != nil {
				return fmt.Errorf("store session: %w", err)
			}

			fmt.Printf("Registered and logged in as user %s\n", ownerID)
			fmt.Println("Fill in your profile next: dietdiary profile set ...")
			return nil
		},
	}

	cmd.Flags().StringVar(&userKey, "userkey", "", "user key")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
