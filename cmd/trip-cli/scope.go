package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripscope/internal/modules/scope"
	"tripscope/internal/types"
)

var scopeCmd = &cobra.Command{
	Use:   "scope <text>",
	Short: "Resolve the planning scope for a request",
	Long: `scope runs the scope resolver on text. --history adds earlier user
messages, oldest first, so follow-up questions can be checked.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := joinArgs(args)
		if err != nil {
			return err
		}
		city, _ := cmd.Flags().GetString("city")
		prior, _ := cmd.Flags().GetStringSlice("history")

		history := make([]types.ChatMessage, 0, len(prior))
		for _, msg := range prior {
			history = append(history, types.ChatMessage{Type: types.RoleUser, Content: msg})
		}

		res := scope.NewResolver(nil).Resolve(cmd.Context(), city, text, history)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(res)
		}

		fmt.Printf("state: %s\n", res.State)
		if res.State == scope.StateResolved {
			fmt.Printf("scope: %s (search %s)\n", res.Scope.Name, res.SearchCity)
			return nil
		}
		if res.Message != "" {
			fmt.Println(res.Message)
		}
		for _, s := range res.Suggestions {
			fmt.Printf("  - %s: %s\n", s.Label, s.Reason)
		}
		return nil
	},
}

func init() {
	scopeCmd.Flags().String("city", "", "explicit city field")
	scopeCmd.Flags().StringSlice("history", nil, "earlier user messages, oldest first")
	scopeCmd.Flags().Bool("json", false, "output the resolution as JSON")
	rootCmd.AddCommand(scopeCmd)
}
