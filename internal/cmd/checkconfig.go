package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lthummus/loginthingie/internal/config"
	"github.com/lthummus/loginthingie/internal/store"
	"github.com/lthummus/loginthingie/internal/store/jsonfile"
)

var checkConfigCmd = &cobra.Command{
	Use:   "checkconfig",
	Short: "validates the config file and probes the credential store",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := config.Init()
		var fileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &fileNotFoundError) {
			fmt.Println("no config file found; checking the defaults")
		}

		configErrors := config.ValidateConfig()
		for _, curr := range configErrors {
			fmt.Printf("PROBLEM: %s\n", curr)
		}

		configFile := viper.ConfigFileUsed()
		if configFile == "" {
			configFile = "<none>"
		}

		storeFile := viper.GetString(config.KeyStoreFile)
		if storeFile == "" {
			storeFile = config.DefaultStoreFile
		}

		maxAttempts := viper.GetInt(config.KeyMaxFailedAttempts)
		if maxAttempts <= 0 {
			maxAttempts = config.DefaultMaxFailedAttempts
		}

		usernameMin := viper.GetInt(config.KeyUsernameMinLength)
		if usernameMin <= 0 {
			usernameMin = config.DefaultUsernameMinLength
		}
		usernameMax := viper.GetInt(config.KeyUsernameMaxLength)
		if usernameMax <= 0 {
			usernameMax = config.DefaultUsernameMaxLength
		}
		passwordMin := viper.GetInt(config.KeyPasswordMinLength)
		if passwordMin <= 0 {
			passwordMin = config.DefaultPasswordMinLength
		}
		passwordMax := viper.GetInt(config.KeyPasswordMaxLength)
		if passwordMax <= 0 {
			passwordMax = config.DefaultPasswordMaxLength
		}

		settingsTable := table.NewWriter()
		settingsTable.SetOutputMirror(os.Stdout)
		settingsTable.AppendHeader(table.Row{"Key", "Value"})
		settingsTable.AppendRows([]table.Row{
			{"Config file", configFile},
			{"Store file", storeFile},
			{"Auto backup", viper.GetBool(config.KeyStoreAutoBackup)},
			{"Max failed attempts", maxAttempts},
			{"Username length", fmt.Sprintf("%d-%d", usernameMin, usernameMax)},
			{"Password length", fmt.Sprintf("%d-%d", passwordMin, passwordMax)},
		})
		settingsTable.Render()

		fileStore := jsonfile.NewFromConfig()
		if _, err := os.Stat(fileStore.Filename()); errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("credential store %s does not exist yet; it will be created on the first registration\n", fileStore.Filename())
		} else {
			count, err := fileStore.Count()
			switch {
			case errors.Is(err, store.ErrCorruptStore):
				fmt.Printf("credential store %s is unreadable and will be treated as empty\n", fileStore.Filename())
			case err != nil:
				fmt.Printf("could not read credential store %s: %s\n", fileStore.Filename(), err)
			default:
				fmt.Printf("credential store OK (%d users)\n", count)
			}
		}

		if len(configErrors) != 0 {
			return fmt.Errorf("loginthingie: checkconfig: %d problem(s) found", len(configErrors))
		}

		return nil
	},
}
