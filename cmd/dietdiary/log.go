package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avatarmedicine/dietdiary/internal/domain"
	"github.com/avatarmedicine/dietdiary/internal/service/diary"
)

func logCmd() *cobra.Command {
	var (
		slotName   string
		date       string
		clock      string
		items      []string
		photoPaths []string
		skip       bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log one meal",
		Example: `  dietdiary log --slot breakfast --item 蛋餅 --item 奶茶 --time 07:30
  dietdiary log --slot dinner --date 2024-03-01 --item 火鍋 --photo hotpot.jpg
  dietdiary log --slot lunch --skip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, ok := domain.ParseSlot(slotName)
			if !ok {
				return fmt.Errorf("unknown slot %q (breakfast, lunch, afternoon-tea, dinner, late-snack)", slotName)
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			photos, err := readPhotos(photoPaths)
			if err != nil {
				return err
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

			refs, err := env.diary().LogMeal(cmd.Context(), diary.LogMealInput{
				OwnerID:   ownerID,
				Slot:      slot,
				Day:       day,
				TimeOfDay: clock,
				Content:   items,
				Photos:    photos,
				Skipped:   skip,
			})
			if err != nil {
				return err
			}

			if skip {
				fmt.Printf("Marked %s on %s as skipped\n", slot, day.Format("2006-01-02"))
			} else {
				fmt.Printf("Logged %s on %s (%d items, %d photos)\n",
					slot, day.Format("2006-01-02"), len(items), len(photos))
			}
			for _, ref := range refs {
				fmt.Println("  uploaded:", ref)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&slotName, "slot", "", "meal slot")
	cmd.Flags().StringVar(&date, "date", "", "day to log (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&clock, "time", "", "time of day (HH:MM)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "content item (repeatable)")
	cmd.Flags().StringArrayVar(&photoPaths, "photo", nil, "photo file (repeatable, max 3)")
	cmd.Flags().BoolVar(&skip, "skip", false, "mark the meal as deliberately skipped")
	cmd.MarkFlagRequired("slot")

	return cmd
}

func readPhotos(paths []string) ([]domain.Photo, error) {
	photos := make([]domain.Photo, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read photo: %w", err)
		}
		photos = append(photos, domain.Photo{Name: filepath.Base(path), Data: data})
	}
	return photos, nil
}
