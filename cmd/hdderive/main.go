// hdderive derives HD wallet addresses by running an external derivation tool.
//
// @title        hd-derive API
// @version      1.0
// @description  Read-only HD wallet address derivation backed by an external derivation tool.
// @BasePath     /
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
