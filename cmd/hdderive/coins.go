package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/AlexZinkM/hd-derive/internal/account"
	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/spf13/cobra"
)

func newCoinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coins",
		Short: "List coins supported by the derivation tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCoins(cmd.OutOrStdout())
		},
	}
}

func writeCoins(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COIN\tDECIMALS\tVERIFY")
	for _, c := range model.SupportedCoins() {
		verify := "no"
		if account.Supported(c) {
			verify = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c, c.Decimals(), verify)
	}
	return w.Flush()
}
