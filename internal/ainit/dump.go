package ainit

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lthummus/loginthingie/internal/config"
)

func init() {
	var revision string
	if info, ok := debug.ReadBuildInfo(); ok {
		for i := range info.Settings {
			if info.Settings[i].Key == "vcs.revision" {
				revision = info.Settings[i].Value
				break
			}
		}
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if config.IsDebugLoggingEnabled() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Warn().Msg("starting with debug logging enabled")
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Debug().
		Str("arch", runtime.GOARCH).
		Str("os", runtime.GOOS).
		Str("go_version", strings.TrimPrefix(runtime.Version(), "go")).
		Str("git_commit", revision).
		Msg("hello world")
}

func Loaded() bool {
	return true
}
