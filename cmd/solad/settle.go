package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var replaceCmd = &cli.Command{
	Name:  "replace",
	Usage: "Request exit from a shard; appoints a stake-weighted replacement",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "node", Usage: "exiting node owner", Required: true},
		&cli.StringFlag{Name: "payer", Required: true},
		&cli.StringFlag{Name: "hash", Required: true},
		&cli.Uint64Flag{Name: "shard", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		node, err := addrFlag(cctx, "node")
		if err != nil {
			return err
		}
		payer, err := addrFlag(cctx, "payer")
		if err != nil {
			return err
		}
		return sm.RequestReplacement(cctx.Context, node, cctx.String("hash"), payer, cctx.Uint64("shard"))
	},
}

var slashTimeoutCmd = &cli.Command{
	Name:  "slash-timeout",
	Usage: "Slash an expired replacement (callable by anyone; caller earns 10%)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "caller", Required: true},
		&cli.StringFlag{Name: "payer", Required: true},
		&cli.StringFlag{Name: "hash", Required: true},
		&cli.StringFlag{Name: "exiting", Usage: "exiting node owner", Required: true},
		&cli.Uint64Flag{Name: "shard", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		caller, err := addrFlag(cctx, "caller")
		if err != nil {
			return err
		}
		payer, err := addrFlag(cctx, "payer")
		if err != nil {
			return err
		}
		exiting, err := addrFlag(cctx, "exiting")
		if err != nil {
			return err
		}
		return sm.SlashTimeout(cctx.Context, caller, cctx.String("hash"), payer, exiting, cctx.Uint64("shard"))
	},
}

var slashUserCmd = &cli.Command{
	Name:  "slash-user",
	Usage: "Settle an invalidated shard against the payer",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "payer", Required: true},
		&cli.StringFlag{Name: "hash", Required: true},
		&cli.Uint64Flag{Name: "shard", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		payer, err := addrFlag(cctx, "payer")
		if err != nil {
			return err
		}
		return sm.SlashUser(cctx.Context, cctx.String("hash"), payer, cctx.Uint64("shard"))
	},
}

var claimCmd = &cli.Command{
	Name:  "claim",
	Usage: "Claim this epoch's storage reward for a shard",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "node", Required: true},
		&cli.StringFlag{Name: "payer", Required: true},
		&cli.StringFlag{Name: "hash", Required: true},
		&cli.Uint64Flag{Name: "shard", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		node, err := addrFlag(cctx, "node")
		if err != nil {
			return err
		}
		payer, err := addrFlag(cctx, "payer")
		if err != nil {
			return err
		}
		amt, err := sm.ClaimRewards(cctx.Context, node, cctx.String("hash"), payer, cctx.Uint64("shard"))
		if err != nil {
			return err
		}
		fmt.Printf("claimed %s\n", color.GreenString(amt.String()))
		return nil
	},
}
