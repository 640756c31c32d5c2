package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripscope/internal/app"
	"tripscope/internal/config"
	"tripscope/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan <text>",
	Short: "Plan a trip end to end",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := joinArgs(args)
		if err != nil {
			return err
		}
		city, _ := cmd.Flags().GetString("city")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Local runs are never charged.
		cfg.DB.DSN = ""

		pipeline, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pipeline.Close()

		resp, err := pipeline.Planner.Plan(cmd.Context(), service.Request{Prompt: text, City: city})
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(resp)
		}

		fmt.Printf("# %s\n\n", resp.Title)
		if resp.Error != "" {
			fmt.Printf("(%s)\n\n", resp.Error)
		}
		if resp.Description != "" {
			fmt.Println(resp.Description)
			fmt.Println()
		}
		for _, s := range resp.Suggestions {
			fmt.Printf("  - %s: %s\n", s.Label, s.Prompt)
		}
		for i, p := range resp.POIs {
			fmt.Printf("%2d. %s\t%s\t%.6f,%.6f\n", i+1, p.Name, p.City, p.Lng, p.Lat)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().String("city", "", "explicit city field")
	planCmd.Flags().Bool("json", false, "output the response as JSON")
	rootCmd.AddCommand(planCmd)
}
