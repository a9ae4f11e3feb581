package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
)

var nodeCmd = &cli.Command{
	Name:  "node",
	Usage: "Manage storage node registration",
	Subcommands: []*cli.Command{
		nodeRegisterCmd,
		nodeDeregisterCmd,
		nodeListCmd,
		nodeInfoCmd,
	},
}

var nodeRegisterCmd = &cli.Command{
	Name:  "register",
	Usage: "Register a storage node, escrowing its stake",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "owner", Required: true},
		&cli.StringFlag{Name: "stake", Usage: "stake amount in base units", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		owner, err := addrFlag(cctx, "owner")
		if err != nil {
			return err
		}
		stake, err := big.FromString(cctx.String("stake"))
		if err != nil {
			return xerrors.Errorf("parsing --stake: %w", err)
		}
		return sm.RegisterNode(cctx.Context, owner, stake)
	},
}

var nodeDeregisterCmd = &cli.Command{
	Name:  "deregister",
	Usage: "Deregister a node with no outstanding uploads; refunds its stake",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "owner", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		owner, err := addrFlag(cctx, "owner")
		if err != nil {
			return err
		}
		return sm.DeregisterNode(cctx.Context, owner)
	},
}

var nodeListCmd = &cli.Command{
	Name:  "list",
	Usage: "List registered nodes",
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		nodes, err := sm.ListNodes(cctx.Context)
		if err != nil {
			return err
		}
		for _, owner := range nodes {
			nd, err := sm.GetNode(cctx.Context, owner)
			if err != nil {
				return err
			}
			status := color.GreenString("active")
			if !nd.IsActive {
				status = color.YellowString("exiting")
			}
			fmt.Printf("%s\tstake:%s\tuploads:%d\t%s\n", owner, nd.StakeAmount, nd.UploadCount, status)
		}
		return nil
	},
}

var nodeInfoCmd = &cli.Command{
	Name:      "info",
	Usage:     "Show one node's record",
	ArgsUsage: "<owner>",
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		owner, err := parseAddrArg(cctx, 0, "owner")
		if err != nil {
			return err
		}
		nd, err := sm.GetNode(cctx.Context, owner)
		if err != nil {
			return err
		}
		fmt.Printf("owner: %s\n", nd.Owner)
		fmt.Printf("stake: %s\n", nd.StakeAmount)
		fmt.Printf("uploads: %d\n", nd.UploadCount)
		fmt.Printf("active: %v\n", nd.IsActive)
		fmt.Printf("last claimed epoch: %d\n", nd.LastClaimedEpoch)
		return nil
	},
}
