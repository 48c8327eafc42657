package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/avatarmedicine/dietdiary/internal/domain"
	"github.com/avatarmedicine/dietdiary/internal/service/diary"
)

func statusCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which required meals are still missing for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := parseDay(date)
			if err != nil {
				return err
			}
			if date == "" {
				asOf = time.Now()
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

			svc := env.diary()
			status, err := svc.DailyStatus(cmd.Context(), ownerID, asOf)
			if errors.Is(err, domain.ErrProfileRequired) {
				return errors.New("profile missing; fill it in first: dietdiary profile set ...")
			}
			if err != nil {
				// The backend is unreachable. Completeness cannot be
				// decided, but a mirrored view may still help.
				fmt.Println("Could not fetch today's records:", err)
				cached, cacheErr := svc.CachedStatus(cmd.Context(), ownerID, asOf)
				if cacheErr != nil {
					return errors.New("no local mirror available either; try again later")
				}
				fmt.Printf("Showing locally mirrored data from %s (may be out of date):\n",
					cached.FetchedAt.Local().Format("2006-01-02 15:04"))
				printStatus(cached)
				return nil
			}

			printStatus(status)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to check (YYYY-MM-DD, default today)")
	return cmd
}

func printStatus(status *diary.DayStatus) {
	fmt.Println("Day:", status.Day.Format("2006-01-02"))
	for _, slot := range domain.RequiredSlots() {
		mark := "missing"
		if status.Completion.Recorded[slot] {
			mark = "recorded"
		}
		fmt.Printf("  %-14s %s\n", slot, mark)
	}
	if status.Completion.Complete {
		fmt.Println("All required meals are recorded.")
	} else {
		fmt.Printf("Next to record: %s\n", status.Completion.Missing)
	}
}
