package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/hd-derive/internal/common"
)

// TxIntent describes a transfer a signing collaborator is asked to perform
type TxIntent struct {
	Coin    Coin   `json:"coin"`
	To      string `json:"to"`
	Amount  string `json:"amount"`            // decimal string in whole coins, e.g. "0.05"
	FeeRate string `json:"feeRate,omitempty"` // decimal string, chain specific unit
}

// TransactionReceipt is returned by a signing collaborator after broadcast
type TransactionReceipt struct {
	TxID   string `json:"txId"`
	Coin   Coin   `json:"coin"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Validate validates TxIntent fields.
func (t *TxIntent) Validate() error {
	if !t.Coin.Supported() {
		return fmt.Errorf("unsupported coin %q", string(t.Coin))
	}
	if strings.TrimSpace(t.To) == "" {
		return errors.New("recipient address is required")
	}
	amount, err := common.ToBaseUnits(t.Amount, t.Coin.Decimals())
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	if amount.Sign() <= 0 {
		return errors.New("amount must be positive")
	}
	if t.FeeRate != "" {
		if _, err := common.ToBaseUnits(t.FeeRate, t.Coin.Decimals()); err != nil {
			return fmt.Errorf("invalid fee rate: %w", err)
		}
	}
	return nil
}
