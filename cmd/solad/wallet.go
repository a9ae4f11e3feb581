package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-state-types/big"

	"github.com/cenwadike/solad-sub000/chain/ledger"
)

var balanceCmd = &cli.Command{
	Name:      "balance",
	Usage:     "Print an account's ledger balance",
	ArgsUsage: "[address]",
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		addr, err := parseAddrArg(cctx, 0, "address")
		if err != nil {
			return err
		}
		bal, err := sm.Ledger().BalanceOf(cctx.Context, addr)
		if err != nil {
			return err
		}
		fmt.Println(bal.String())
		return nil
	},
}

var creditCmd = &cli.Command{
	Name:      "credit",
	Usage:     "Mint tokens to an account (dev/test ledgers only)",
	ArgsUsage: "[address] [amount]",
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		addr, err := parseAddrArg(cctx, 0, "address")
		if err != nil {
			return err
		}
		amt, err := big.FromString(cctx.Args().Get(1))
		if err != nil {
			return xerrors.Errorf("parsing amount: %w", err)
		}
		return sm.Ledger().Apply(cctx.Context, func(tx *ledger.Txn) error {
			return tx.Credit(addr, amt)
		})
	},
}
