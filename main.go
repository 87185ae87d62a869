package main

import (
	"github.com/rs/zerolog/log"

	"github.com/lthummus/loginthingie/internal/ainit"
	"github.com/lthummus/loginthingie/internal/cmd"
)

func main() {
	log.Debug().Bool("loaded", ainit.Loaded()).Msg("initializing services")
	cmd.Execute()
}
