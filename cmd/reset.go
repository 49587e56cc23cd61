package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a user's viewed signs and quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.ResetUser(cmd.Context(), phone); err != nil {
			return err
		}
		fmt.Printf("Reset data for %s.\n", phone)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("phone", "", "User phone number")
	_ = resetCmd.MarkFlagRequired("phone")
}
