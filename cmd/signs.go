package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadsign/internal/catalog"
	"github.com/abhisek/roadsign/internal/config"
)

var signsCmd = &cobra.Command{
	Use:   "signs",
	Short: "Browse and validate the sign catalog",
}

var signsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog signs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogFromFlags(cmd)
		if err != nil {
			return err
		}

		signs := cat.Signs()
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			kind, err := catalog.ParseKind(category)
			if err != nil {
				return err
			}
			signs = cat.ByCategory(kind)
		}

		fmt.Printf("%-8s  %-13s  %-14s  %s\n", "ID", "Category", "Subcategory", "Name")
		fmt.Println(strings.Repeat("─", 72))
		for _, s := range signs {
			fmt.Printf("%-8s  %-13s  %-14s  %s\n", s.ID, s.Category.Kind, s.Category.Subcategory, s.Name)
		}
		return nil
	},
}

var signsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a sign card as sent to users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogFromFlags(cmd)
		if err != nil {
			return err
		}
		s, err := cat.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Println(catalog.FormatSign(s))
		if detail, _ := cmd.Flags().GetBool("prompt"); detail {
			fmt.Println()
			fmt.Println(catalog.Detail(s))
		}
		return nil
	},
}

var signsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file, or the embedded catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			cat *catalog.Catalog
			err error
		)
		if len(args) == 1 {
			cat, err = catalog.LoadFile(args[0])
		} else {
			cat, err = catalogFromFlags(cmd)
		}
		if err != nil {
			return err
		}
		version := cat.Version()
		if version == "" {
			version = "unversioned"
		}
		fmt.Printf("Catalog OK: %d signs (%s)\n", cat.Len(), version)
		return nil
	},
}

func catalogFromFlags(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = os.Getenv(config.Prefix + "CATALOG")
	}
	return loadCatalog(path)
}

func init() {
	signsListCmd.Flags().String("category", "", "Only list regulatory, warning or information signs")
	signsShowCmd.Flags().Bool("prompt", false, "Also print the detail block used in quiz prompts")

	signsCmd.AddCommand(signsListCmd)
	signsCmd.AddCommand(signsShowCmd)
	signsCmd.AddCommand(signsValidateCmd)
}
