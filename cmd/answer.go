package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var answerCmd = &cobra.Command{
	Use:   "answer <quiz-id>",
	Short: "Record the user's answer to a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wrong, _ := cmd.Flags().GetBool("wrong")

		a, err := cliApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.svc.RecordAnswer(cmd.Context(), args[0], !wrong); err != nil {
			return err
		}
		outcome := "correct"
		if wrong {
			outcome = "incorrect"
		}
		fmt.Printf("Recorded quiz %s as %s.\n", args[0], outcome)
		return nil
	},
}

func init() {
	answerCmd.Flags().Bool("wrong", false, "Record the answer as incorrect")
}
