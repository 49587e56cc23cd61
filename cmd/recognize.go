package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadsign/internal/vision"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>",
	Short: "Identify the road sign in a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		img := vision.Image{MediaType: http.DetectContentType(data), Data: data}

		a, err := cliApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		desc, err := a.svc.RecognizeSign(cmd.Context(), img)
		if err != nil {
			return err
		}
		fmt.Println(desc)
		return nil
	},
}
