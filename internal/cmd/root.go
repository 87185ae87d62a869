package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lthummus/loginthingie/internal/shell"
)

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(checkConfigCmd)
	rootCmd.AddCommand(writeConfigCmd)
}

var rootCmd = &cobra.Command{
	Use:   "loginthingie",
	Short: "loginthingie is a small credential manager for your terminal",
	Run: func(cmd *cobra.Command, args []string) {
		shell.RunShell()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}
