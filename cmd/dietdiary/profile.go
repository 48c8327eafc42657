package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or submit the personal-info profile",
	}
	cmd.AddCommand(profileShowCmd(), profileSetCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ownerID, err := env.ownerID()
			if err != nil {
				return err
			}

			rows, err := env.client.Profile(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No profile yet. Submit one with: dietdiary profile set key=value ...")
				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}
}

func profileSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value [key=value ...]",
		Short: "Create or update the profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make(map[string]any, len(args))
			for _, arg := range args {
				k, v, ok := strings.Cut(arg, "=")
				if !ok || k == "" {
					return fmt.Errorf("invalid field %q, want key=value", arg)
				}
				fields[k] = v
			}

			env, err := newAppEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ownerID, err := env.ownerID()
			if err != nil {
				return err
			}

			if err := env.client.SubmitProfile(cmd.Context(), ownerID, fields); err != nil {
				return err
			}
			fmt.Println("Profile saved")
			return nil
		},
	}
}
