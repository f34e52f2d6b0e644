/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/Tedomi2525/My-project/internal/guard"
	"github.com/Tedomi2525/My-project/types"
	"github.com/spf13/cobra"
)

type routeResult struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	Location string `json:"location"`
}

// routeCmd represents the route command
var routeCmd = &cobra.Command{
	Use:   "route <path>",
	Short: "Show where the route guard sends the current user",
	Long: `Evaluates the route guard for a path with the stored session. Usage:

	examctl route /admin/users
`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		path := args[0]
		var identity *types.Identity
		if id, ok := a.store.Identity(); ok {
			identity = &id
		}
		decision := guard.Decide(identity, path)
		return printJSON(cmd.OutOrStdout(), routeResult{
			Path:     path,
			Allowed:  decision.Allow,
			Redirect: decision.Redirect,
			Location: a.router.Resolve(path),
		})
	}),
}

func init() {
	rootCmd.AddCommand(routeCmd)
}
