package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlexZinkM/hd-derive/internal/crypto"
	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/kelseyhightower/envconfig"
	"github.com/subosito/gotenv"
	"golang.org/x/term"
)

// DefaultEnvFile is loaded before the environment is processed, unless ENV_FILE names another one
const DefaultEnvFile = "keys.env"

// Config contains all configuration parameters for the application.
// Note: Key and Mnemonic are never logged. Use ResolveSecret to obtain them.
type Config struct {
	Port      string        `envconfig:"PORT" default:"8080"`
	ToolPath  string        `envconfig:"DERIVE_TOOL_PATH" default:"./derive"`
	Timeout   time.Duration `envconfig:"DERIVE_TIMEOUT" default:"30s"`
	Coin      string        `envconfig:"DERIVE_COIN" default:"ETH"`
	Cols      []string      `envconfig:"DERIVE_COLS" default:"path,address,privkey,pubkey"`
	NumDerive int           `envconfig:"DERIVE_NUM" default:"5"`
	Key       string        `envconfig:"DERIVE_KEY"`
	Mnemonic  string        `envconfig:"MNEMONIC"`
	KeyFile   string        `envconfig:"DERIVE_KEY_FILE"`
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool          `envconfig:"LOG_PRETTY" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Load reads the env file (if present) and then the environment.
// Variables already set in the environment win over the env file.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := gotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	} else if os.Getenv("ENV_FILE") != "" {
		return nil, fmt.Errorf("env file %s: %w", envFile, err)
	}

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	// keys.env files written for hd-wallet-derive scripts use a lowercase name
	if c.Mnemonic == "" {
		c.Mnemonic = os.Getenv("mnemonic")
	}
	if c.Timeout <= 0 {
		return nil, errors.New("DERIVE_TIMEOUT must be positive")
	}
	if c.NumDerive < 1 {
		return nil, errors.New("DERIVE_NUM must be at least 1")
	}
	return c, nil
}

// Init loads configuration into the global instance.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// promptSecret reads a line from the terminal without echo. Replaced in tests.
var promptSecret = func(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: set DERIVE_KEY or run interactively")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("input cannot be empty")
	}
	return raw, nil
}

// PromptSecret asks for a secret in the terminal (hidden input).
// Caller must zero the returned slice after use.
func PromptSecret(prompt string) ([]byte, error) {
	return promptSecret(prompt)
}

// ResolveSecret returns the master secret from, in order: DERIVE_KEY or MNEMONIC (setting
// both is an error), the encrypted DERIVE_KEY_FILE (password prompted), or a hidden prompt.
// The secret is never logged.
func (c *Config) ResolveSecret() (model.MasterSecret, error) {
	key := strings.TrimSpace(c.Key)
	mnemonic := model.NormalizeMnemonic(c.Mnemonic)
	switch {
	case key != "" && mnemonic != "":
		return model.MasterSecret{}, errors.New("set only one of DERIVE_KEY and MNEMONIC")
	case key != "":
		return model.MasterSecret{Key: key}, nil
	case mnemonic != "":
		return model.MasterSecret{Mnemonic: mnemonic}, nil
	}

	if c.KeyFile != "" {
		password, err := promptSecret("Enter key file password: ")
		if err != nil {
			return model.MasterSecret{}, err
		}
		defer clear(password) // Always clear password from memory

		_, keyData, err := crypto.OpenKey(c.KeyFile, password)
		if err != nil {
			return model.MasterSecret{}, fmt.Errorf("failed to open key file: %w", err)
		}
		defer clear(keyData.ExtendedKey)
		return model.ParseMasterSecret(string(keyData.ExtendedKey)), nil
	}

	raw, err := promptSecret("Enter extended master key or mnemonic: ")
	if err != nil {
		return model.MasterSecret{}, err
	}
	defer clear(raw)
	return model.ParseMasterSecret(string(raw)), nil
}
