package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadsign/internal/roadsign"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz question for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")
		level, _ := cmd.Flags().GetString("level")
		typeFlag, _ := cmd.Flags().GetString("type")

		typ, err := roadsign.ParseQuizType(typeFlag)
		if err != nil {
			return err
		}

		a, err := cliApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		q, err := a.svc.GenerateQuiz(cmd.Context(), phone, level, typ)
		if err != nil {
			return err
		}

		fmt.Printf("[%s] %s\n\n", q.Difficulty, q.Question)
		for i, opt := range q.Options {
			marker := " "
			if i == q.Answer {
				marker = "*"
			}
			fmt.Printf("%s %d) %s\n", marker, i+1, opt)
		}
		fmt.Printf("\n%s\n\nID: %s\n", q.Explanation, q.ID)
		return nil
	},
}

func init() {
	quizCmd.Flags().String("phone", "", "User phone number")
	quizCmd.Flags().String("type", string(roadsign.QuizGeneral), "Quiz type: general or sign")
	quizCmd.Flags().String("level", "", "Difficulty level 1-5 (default 2)")
	_ = quizCmd.MarkFlagRequired("phone")
}
