package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avatarmedicine/dietdiary/internal/service/voicelog"
)

func voiceCmd() *cobra.Command {
	var (
		photoSpecs []string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "voice",
		Short: "Record a spoken meal description and save the extracted meals",
		Long: `Voice runs the configured transcriber command, sends the finalized
transcript through structured extraction, shows the extracted meals, and
saves them one by one under today's date.

Photos attach to extracted items by index: --photo 0=breakfast.jpg`,
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

			pipeline, err := env.voicePipeline()
			if err != nil {
				return err
			}

			fmt.Println("Listening...")
			if err := pipeline.StartRecording(cmd.Context()); err != nil {
				return err
			}
			transcript, _ := pipeline.Transcript()
			fmt.Println("Heard:", transcript)

			drafts, err := pipeline.Analyze(cmd.Context())
			if err != nil {
				return fmt.Errorf("could not understand the transcript: %w", err)
			}
			if len(drafts) == 0 {
				fmt.Println("No meals found in the transcript.")
				pipeline.Cancel()
				return nil
			}

			for i, d := range drafts {
				clock := d.TimeOfDay
				if clock == "" {
					clock = "(no time)"
				}
				fmt.Printf("  [%d] %s %s: %s\n", i, d.SlotLabel, clock, d.Content)
			}

			for _, spec := range photoSpecs {
				idxStr, path, ok := strings.Cut(spec, "=")
				if !ok {
					return fmt.Errorf("invalid photo spec %q, want INDEX=FILE", spec)
				}
				idx, err := strconv.Atoi(idxStr)
				if err != nil {
					return fmt.Errorf("invalid photo index %q", idxStr)
				}
				photos, err := readPhotos([]string{path})
				if err != nil {
					return err
				}
				if err := pipeline.AttachPhoto(idx, photos[0]); err != nil {
					return err
				}
			}

			if !yes {
				fmt.Print("Save these meals? [y/N] ")
				var answer string
				fmt.Fscanln(cmd.InOrStdin(), &answer)
				if !strings.EqualFold(answer, "y") {
					pipeline.Cancel()
					fmt.Println("Discarded.")
					return nil
				}
			}

			report, err := pipeline.Save(cmd.Context(), ownerID)
			if err != nil {
				return err
			}
			printSaveReport(report)
			if !report.AllSaved() {
				return fmt.Errorf("some meals were not saved")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&photoSpecs, "photo", nil, "attach a photo to an item: INDEX=FILE (repeatable)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "save without asking")
	return cmd
}

func printSaveReport(report *voicelog.SaveReport) {
	for i, item := range report.Items {
		switch item.Status {
		case voicelog.StatusSaved:
			fmt.Printf("  [%d] %s: saved\n", i, item.Draft.SlotLabel)
		case voicelog.StatusFailed:
			fmt.Printf("  [%d] %s: failed (%v)\n", i, item.Draft.SlotLabel, item.Err)
		case voicelog.StatusNotAttempted:
			fmt.Printf("  [%d] %s: not attempted\n", i, item.Draft.SlotLabel)
		}
	}
}
