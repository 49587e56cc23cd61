package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadsign/internal/catalog"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Pick the next sign for a user and print its card",
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")
		category, _ := cmd.Flags().GetString("category")

		var kind *catalog.Kind
		if category != "" {
			k, err := catalog.ParseKind(category)
			if err != nil {
				return err
			}
			kind = &k
		}

		a, err := cliApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		sign, err := a.svc.SelectSignToLearn(cmd.Context(), phone, kind)
		if err != nil {
			return err
		}
		fmt.Println(catalog.FormatSign(sign))
		fmt.Printf("\nImage: %s\n", sign.Image)
		return nil
	},
}

func init() {
	learnCmd.Flags().String("phone", "", "User phone number")
	learnCmd.Flags().String("category", "", "Restrict to regulatory, warning or information")
	_ = learnCmd.MarkFlagRequired("phone")
}
