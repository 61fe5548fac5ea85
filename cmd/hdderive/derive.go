package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/AlexZinkM/hd-derive/derive"
	"github.com/AlexZinkM/hd-derive/internal/account"
	"github.com/AlexZinkM/hd-derive/internal/config"
	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// deriveOptions are the flags of the derive command
type deriveOptions struct {
	coins       []string
	cols        []string
	num         int
	start       int
	path        string
	output      string
	verify      bool
	showPrivate bool
}

func newDeriveCmd() *cobra.Command {
	opts := &deriveOptions{}

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive addresses for one or more coins",
		Example: `  hdderive derive --coin ETH --num 5
  hdderive derive --coin ETH --coin BTCTEST --cols path,address,privkey --verify --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if len(opts.coins) == 0 {
				opts.coins = []string{cfg.Coin}
			}
			if !cmd.Flags().Changed("cols") {
				opts.cols = cfg.Cols
			}
			if !cmd.Flags().Changed("num") {
				opts.num = cfg.NumDerive
			}

			secret, err := cfg.ResolveSecret()
			if err != nil {
				return err
			}

			adapter := derive.NewAdapter(cfg.ToolPath, cfg.Timeout)
			return runDerive(cmd.Context(), cmd.OutOrStdout(), adapter, secret, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.coins, "coin", nil, "coin symbol, repeatable (default DERIVE_COIN)")
	cmd.Flags().StringSliceVar(&opts.cols, "cols", nil, "columns to request (default DERIVE_COLS)")
	cmd.Flags().IntVarP(&opts.num, "num", "n", 0, "number of addresses to derive (default DERIVE_NUM)")
	cmd.Flags().IntVar(&opts.start, "start", 0, "first address index")
	cmd.Flags().StringVar(&opts.path, "path", "", "custom derivation path, e.g. m/44'/60'/0'/0")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check every private key produces its address")
	cmd.Flags().BoolVar(&opts.showPrivate, "show-private", false, "print private key columns")
	return cmd
}

// runDerive derives all requested coins and writes them to out
func runDerive(ctx context.Context, out io.Writer, d derive.Deriver, secret model.MasterSecret, opts *deriveOptions) error {
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}
	if len(opts.cols) == 0 {
		opts.cols = model.DefaultColumns
	}
	if opts.verify && !contains(opts.cols, model.ColPrivKey) {
		return fmt.Errorf("--verify needs the %s column", model.ColPrivKey)
	}

	base := model.DerivationRequest{
		Cols:       opts.cols,
		Format:     model.FormatJSON,
		NumDerive:  opts.num,
		StartIndex: opts.start,
		Path:       opts.path,
	}
	secret.Apply(&base)
	coins, err := derive.DeriveCoins(ctx, d, base, opts.coins)
	if err != nil {
		return err
	}

	if opts.verify {
		if err := verifyRecords(coins); err != nil {
			return err
		}
	}
	if !opts.showPrivate {
		for _, records := range coins {
			for i := range records {
				records[i].Wipe()
			}
		}
	}

	if opts.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(coins)
	}
	return writeTable(out, coins, opts.cols, opts.showPrivate)
}

// verifyRecords converts every record's private key into an account and checks its address
func verifyRecords(coins map[model.Coin][]model.WalletRecord) error {
	for coin, records := range coins {
		if !account.Supported(coin) {
			log.Warn().Str("coin", string(coin)).Msg("address verification not available for coin")
			continue
		}
		for _, rec := range records {
			acc, err := account.FromRecord(coin, rec)
			if err != nil {
				return fmt.Errorf("%s: %w", coin, err)
			}
			acc.Wipe()
		}
		log.Info().Str("coin", string(coin)).Int("records", len(records)).Msg("addresses verified")
	}
	return nil
}

// writeTable prints one section per coin, sorted by coin symbol
func writeTable(out io.Writer, coins map[model.Coin][]model.WalletRecord, cols []string, showPrivate bool) error {
	symbols := make([]string, 0, len(coins))
	for c := range coins {
		symbols = append(symbols, string(c))
	}
	sort.Strings(symbols)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, sym := range symbols {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s\n", sym)

		shown := make([]string, 0, len(cols))
		for _, c := range cols {
			if !showPrivate && (c == model.ColPrivKey || c == model.ColXprv) {
				continue
			}
			shown = append(shown, c)
		}
		fmt.Fprintln(w, strings.ToUpper(strings.Join(shown, "\t")))

		for _, rec := range coins[model.Coin(sym)] {
			values := make([]string, 0, len(shown))
			for _, c := range shown {
				v, _ := rec.Column(c)
				values = append(values, v)
			}
			fmt.Fprintln(w, strings.Join(values, "\t"))
		}
	}
	return w.Flush()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
