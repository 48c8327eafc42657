package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Fetch the generated diet report",
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

			data, err := env.client.GenerateReport(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			return printJSON(data)
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Ask the backend which of your data is still missing",
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

			data, err := env.client.InitialCheck(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			return printJSON(data)
		},
	}
}

func printJSON(raw json.RawMessage) error {
	var pretty any
	if err := json.Unmarshal(raw, &pretty); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pretty)
}
