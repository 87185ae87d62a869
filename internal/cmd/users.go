package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/auth"
	"github.com/lthummus/loginthingie/internal/config"
	"github.com/lthummus/loginthingie/internal/loginfailure"
	"github.com/lthummus/loginthingie/internal/store/jsonfile"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "lists every registered user",
	Run: func(cmd *cobra.Command, args []string) {
		err := config.Init()
		var fileNotFoundError viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &fileNotFoundError) {
			log.Error().Err(err).Msg("could not read config")
		}

		system := auth.New(jsonfile.NewFromConfig(), loginfailure.NewInMemoryCounter())
		users := system.Users()

		userTable := table.NewWriter()
		userTable.SetOutputMirror(os.Stdout)
		userTable.AppendHeader(table.Row{"#", "Username", "Created"})
		for i, curr := range users {
			userTable.AppendRow(table.Row{i + 1, curr.Username, curr.CreatedAt})
		}
		userTable.Render()

		fmt.Printf("%d users total\n", len(users))
	},
}
