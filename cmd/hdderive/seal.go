package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/AlexZinkM/hd-derive/internal/config"
	"github.com/AlexZinkM/hd-derive/internal/crypto"
	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSealCmd() *cobra.Command {
	var (
		out  string
		coin string
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt an extended master key into a key file for DERIVE_KEY_FILE",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := model.ParseCoin(coin)
			if !ok {
				return fmt.Errorf("unsupported coin %q", coin)
			}
			return sealKey(out, c, config.PromptSecret)
		},
	}

	cmd.Flags().StringVar(&out, "out", "master.key", "key file to write")
	cmd.Flags().StringVar(&coin, "coin", "ETH", "coin the key is meant for")
	return cmd
}

// sealKey prompts for the key and a password (twice) and writes the key file
func sealKey(path string, coin model.Coin, prompt func(string) ([]byte, error)) error {
	key, err := prompt("Enter extended master key or mnemonic: ")
	if err != nil {
		return err
	}
	defer clear(key)
	key = bytes.TrimSpace(key)

	password, err := prompt("Enter key file password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	confirm, err := prompt("Repeat key file password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)

	if !bytes.Equal(password, confirm) {
		return errors.New("passwords do not match")
	}

	if err := crypto.SealKey(path, string(coin), key, password); err != nil {
		return err
	}
	log.Info().Str("file", path).Str("coin", string(coin)).Msg("key file written")
	return nil
}
