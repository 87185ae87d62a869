package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lthummus/loginthingie/internal/config"
)

var writeConfigFilePath string

func init() {
	writeConfigCmd.Flags().StringVarP(&writeConfigFilePath, "file", "f", "loginthingie.yaml", "destination for the generated config file")
}

var writeConfigCmd = &cobra.Command{
	Use:   "writeconfig",
	Short: "writes a starter config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := config.WriteDefaultConfig(writeConfigFilePath)
		if err != nil {
			log.Error().Err(err).Str("config_file_path", writeConfigFilePath).Msg("could not write config file")
			return err
		}

		fmt.Printf("wrote starter config to %s\n", writeConfigFilePath)
		return nil
	},
}
