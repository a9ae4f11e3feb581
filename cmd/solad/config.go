package main

import (
	"encoding/json"
	"fmt"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/chain/stmgr"
	"github.com/cenwadike/solad-sub000/chain/types"
)

var initCmd = &cli.Command{
	Name:  "init",
	Usage: "Initialize the storage config (one-time)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "authority", Usage: "config update authority", Required: true},
		&cli.StringFlag{Name: "treasury", Usage: "treasury account", Required: true},
		&cli.StringFlag{Name: "price-per-gb", Value: "100000"},
		&cli.Uint64Flag{Name: "treasury-fee-percent", Value: 10},
		&cli.Uint64Flag{Name: "node-fee-percent", Value: 90},
		&cli.Uint64Flag{Name: "shard-min-mb", Value: 1},
		&cli.Int64Flag{Name: "epochs-total", Value: 100},
		&cli.Uint64Flag{Name: "slash-penalty-percent", Value: 10},
		&cli.Uint64Flag{Name: "min-shard-count", Value: 1},
		&cli.Uint64Flag{Name: "max-shard-count", Value: 10},
		&cli.Uint64Flag{Name: "slots-per-epoch", Value: 100},
		&cli.StringFlag{Name: "min-node-stake", Value: "100000000"},
		&cli.Int64Flag{Name: "replacement-timeout-epochs", Value: 10},
		&cli.StringFlag{Name: "min-upload-fee", Value: "5000"},
		&cli.Uint64Flag{Name: "user-slash-penalty-percent", Value: 20},
		&cli.Uint64Flag{Name: "oversized-threshold-percent", Value: 66},
		&cli.Int64Flag{Name: "reporting-window-epochs", Value: 10},
		&cli.Uint64Flag{Name: "max-user-uploads", Value: 128},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		authority, err := addrFlag(cctx, "authority")
		if err != nil {
			return err
		}
		treasury, err := addrFlag(cctx, "treasury")
		if err != nil {
			return err
		}
		price, err := big.FromString(cctx.String("price-per-gb"))
		if err != nil {
			return xerrors.Errorf("parsing --price-per-gb: %w", err)
		}
		minStake, err := big.FromString(cctx.String("min-node-stake"))
		if err != nil {
			return xerrors.Errorf("parsing --min-node-stake: %w", err)
		}
		minFee, err := big.FromString(cctx.String("min-upload-fee"))
		if err != nil {
			return xerrors.Errorf("parsing --min-upload-fee: %w", err)
		}

		return sm.Initialize(cctx.Context, authority, stmgr.InitParams{
			Treasury:                  treasury,
			PricePerGB:                price,
			TreasuryFeePercent:        cctx.Uint64("treasury-fee-percent"),
			NodeFeePercent:            cctx.Uint64("node-fee-percent"),
			ShardMinMB:                cctx.Uint64("shard-min-mb"),
			EpochsTotal:               abi.ChainEpoch(cctx.Int64("epochs-total")),
			SlashPenaltyPercent:       cctx.Uint64("slash-penalty-percent"),
			MinShardCount:             cctx.Uint64("min-shard-count"),
			MaxShardCount:             cctx.Uint64("max-shard-count"),
			SlotsPerEpoch:             cctx.Uint64("slots-per-epoch"),
			MinNodeStake:              minStake,
			ReplacementTimeoutEpochs:  abi.ChainEpoch(cctx.Int64("replacement-timeout-epochs")),
			MinUploadFee:              minFee,
			UserSlashPenaltyPercent:   cctx.Uint64("user-slash-penalty-percent"),
			OversizedThresholdPercent: cctx.Uint64("oversized-threshold-percent"),
			ReportingWindowEpochs:     abi.ChainEpoch(cctx.Int64("reporting-window-epochs")),
			MaxUserUploads:            cctx.Uint64("max-user-uploads"),
		})
	},
}

var updateConfigCmd = &cli.Command{
	Name:  "update-config",
	Usage: "Update storage config fields (authority only; unset flags are untouched)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "authority", Usage: "caller (must match recorded authority)", Required: true},
		&cli.StringFlag{Name: "price-per-gb"},
		&cli.Uint64Flag{Name: "treasury-fee-percent"},
		&cli.Uint64Flag{Name: "node-fee-percent"},
		&cli.Uint64Flag{Name: "shard-min-mb"},
		&cli.Int64Flag{Name: "epochs-total"},
		&cli.Uint64Flag{Name: "slash-penalty-percent"},
		&cli.Uint64Flag{Name: "min-shard-count"},
		&cli.Uint64Flag{Name: "max-shard-count"},
		&cli.Uint64Flag{Name: "slots-per-epoch"},
		&cli.StringFlag{Name: "min-node-stake"},
		&cli.Int64Flag{Name: "replacement-timeout-epochs"},
		&cli.StringFlag{Name: "min-upload-fee"},
		&cli.Uint64Flag{Name: "user-slash-penalty-percent"},
		&cli.Uint64Flag{Name: "oversized-threshold-percent"},
		&cli.Int64Flag{Name: "reporting-window-epochs"},
		&cli.Uint64Flag{Name: "max-user-uploads"},
	},
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		authority, err := addrFlag(cctx, "authority")
		if err != nil {
			return err
		}

		var upd types.ConfigUpdate
		if cctx.IsSet("price-per-gb") {
			v, err := big.FromString(cctx.String("price-per-gb"))
			if err != nil {
				return xerrors.Errorf("parsing --price-per-gb: %w", err)
			}
			upd.PricePerGB = &v
		}
		if cctx.IsSet("treasury-fee-percent") {
			v := cctx.Uint64("treasury-fee-percent")
			upd.TreasuryFeePercent = &v
		}
		if cctx.IsSet("node-fee-percent") {
			v := cctx.Uint64("node-fee-percent")
			upd.NodeFeePercent = &v
		}
		if cctx.IsSet("shard-min-mb") {
			v := cctx.Uint64("shard-min-mb")
			upd.ShardMinMB = &v
		}
		if cctx.IsSet("epochs-total") {
			v := abi.ChainEpoch(cctx.Int64("epochs-total"))
			upd.EpochsTotal = &v
		}
		if cctx.IsSet("slash-penalty-percent") {
			v := cctx.Uint64("slash-penalty-percent")
			upd.SlashPenaltyPercent = &v
		}
		if cctx.IsSet("min-shard-count") {
			v := cctx.Uint64("min-shard-count")
			upd.MinShardCount = &v
		}
		if cctx.IsSet("max-shard-count") {
			v := cctx.Uint64("max-shard-count")
			upd.MaxShardCount = &v
		}
		if cctx.IsSet("slots-per-epoch") {
			v := cctx.Uint64("slots-per-epoch")
			upd.SlotsPerEpoch = &v
		}
		if cctx.IsSet("min-node-stake") {
			v, err := big.FromString(cctx.String("min-node-stake"))
			if err != nil {
				return xerrors.Errorf("parsing --min-node-stake: %w", err)
			}
			upd.MinNodeStake = &v
		}
		if cctx.IsSet("replacement-timeout-epochs") {
			v := abi.ChainEpoch(cctx.Int64("replacement-timeout-epochs"))
			upd.ReplacementTimeoutEpochs = &v
		}
		if cctx.IsSet("min-upload-fee") {
			v, err := big.FromString(cctx.String("min-upload-fee"))
			if err != nil {
				return xerrors.Errorf("parsing --min-upload-fee: %w", err)
			}
			upd.MinUploadFee = &v
		}
		if cctx.IsSet("user-slash-penalty-percent") {
			v := cctx.Uint64("user-slash-penalty-percent")
			upd.UserSlashPenaltyPercent = &v
		}
		if cctx.IsSet("oversized-threshold-percent") {
			v := cctx.Uint64("oversized-threshold-percent")
			upd.OversizedThresholdPercent = &v
		}
		if cctx.IsSet("reporting-window-epochs") {
			v := abi.ChainEpoch(cctx.Int64("reporting-window-epochs"))
			upd.ReportingWindowEpochs = &v
		}
		if cctx.IsSet("max-user-uploads") {
			v := cctx.Uint64("max-user-uploads")
			upd.MaxUserUploads = &v
		}

		return sm.UpdateConfig(cctx.Context, authority, upd)
	},
}

var configCmd = &cli.Command{
	Name:  "config",
	Usage: "Print the current storage config",
	Action: func(cctx *cli.Context) error {
		sm, closer, err := openStateManager(cctx)
		if err != nil {
			return err
		}
		defer closer()

		cfg, err := sm.GetConfig(cctx.Context)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
