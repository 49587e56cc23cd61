package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Switch a user between the free and pro plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")
		pro, _ := cmd.Flags().GetBool("pro")

		a, err := cliApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.svc.SetPlan(cmd.Context(), phone, pro); err != nil {
			return err
		}
		plan := "free"
		if pro {
			plan = "pro"
		}
		fmt.Printf("User %s is now on the %s plan.\n", phone, plan)
		return nil
	},
}

func init() {
	planCmd.Flags().String("phone", "", "User phone number")
	planCmd.Flags().Bool("pro", false, "Enable the pro plan (omit to downgrade)")
	_ = planCmd.MarkFlagRequired("phone")
}
