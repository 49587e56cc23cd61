package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")

		a, err := cliApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		stats, err := a.svc.Stats(ctx, phone)
		if err != nil {
			return err
		}
		viewed, err := a.store.ViewedSigns(ctx, phone)
		if err != nil {
			return err
		}

		fmt.Printf("Signs viewed: %d (%d distinct)\n\n", len(viewed), len(lo.Uniq(viewed)))
		if stats.Total == 0 {
			fmt.Println("No quizzes yet.")
			return nil
		}

		fmt.Printf("%-10s  %6s  %8s  %7s  %6s\n", "Type", "Total", "Answered", "Correct", "Rate")
		fmt.Println(strings.Repeat("─", 44))
		types := lo.Keys(stats.ByType)
		slices.Sort(types)
		for _, typ := range types {
			ts := stats.ByType[typ]
			fmt.Printf("%-10s  %6d  %8d  %7d  %6s\n", typ, ts.Total, ts.Answered, ts.Correct, rate(ts.Correct, ts.Answered))
		}
		fmt.Println(strings.Repeat("─", 44))
		fmt.Printf("%-10s  %6d  %8d  %7d  %6s\n", "TOTAL", stats.Total, stats.Answered, stats.Correct, rate(stats.Correct, stats.Answered))
		return nil
	},
}

func rate(correct, answered int) string {
	if answered == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(correct)/float64(answered))
}

func init() {
	statsCmd.Flags().String("phone", "", "User phone number")
	_ = statsCmd.MarkFlagRequired("phone")
}
