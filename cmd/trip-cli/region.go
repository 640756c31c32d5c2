package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripscope/internal/modules/region"
)

var regionCmd = &cobra.Command{
	Use:   "region <text>",
	Short: "Extract the region named in text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := joinArgs(args)
		if err != nil {
			return err
		}
		if marker := region.InternationalMarker(text); marker != "" {
			fmt.Printf("international destination (%s)\n", marker)
			return nil
		}
		m, ok := region.Extract(text)
		if !ok {
			fmt.Println("no region found")
			return nil
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return printJSON(m)
		}
		fmt.Printf("%s\t%s\t(%s)\n", m.Level, m.Name, m.Raw)
		return nil
	},
}

func init() {
	regionCmd.Flags().Bool("json", false, "output the match as JSON")
	rootCmd.AddCommand(regionCmd)
}
