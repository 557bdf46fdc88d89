// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-edu-admin",
	Short: "GoEduAdmin is the back office of the education platform",
	Long: `GoEduAdmin is the back office service of the education platform.
It manages users, roles, permissions and navigation menus, and serves the
authorization API consumed by the administrative client.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
