package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/filecoin-project/go-address"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/chain/types"
)

var uploadCmd = &cli.Command{
	Name:  "upload",
	Usage: "Create an upload: escrow the fee and assign shards to nodes",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "payer", Required: true},
		&cli.StringFlag{Name: "hash", Usage: "content hash (unique per payer)", Required: true},
		&cli.StringFlag{Name: "size", Usage: "declared data size (e.g. 10MB)", Required: true},
		&cli.Uint64Flag{Name: "shards", Value: 1},
		&cli.Uint64Flag{Name: "days", Usage: "storage duration in days", Value: 30},
		&cli.StringSliceFlag{Name: "node", Usage: "candidate node (repeatable)", Required: true},
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
		size, err := units.RAMInBytes(cctx.String("size"))
		if err != nil {
			return xerrors.Errorf("parsing --size: %w", err)
		}

		var candidates []address.Address
		for _, s := range cctx.StringSlice("node") {
			a, err := address.NewFromString(s)
			if err != nil {
				return xerrors.Errorf("parsing --node %q: %w", s, err)
			}
			candidates = append(candidates, a)
		}

		up, err := sm.UploadData(cctx.Context, payer, cctx.String("hash"),
			uint64(size), cctx.Uint64("shards"), cctx.Uint64("days"), candidates)
		if err != nil {
			return err
		}

		fmt.Printf("upload %s: %d shards, escrow %s\n", up.DataHash, up.ShardCount, up.NodeEscrow)
		for _, shard := range up.Shards {
			fmt.Printf("  shard %d: %dMB nodes %v\n", shard.ShardID, shard.SizeMB, shard.NodeKeys)
		}
		return nil
	},
}

var submitPoSCmd = &cli.Command{
	Name:  "submit-pos",
	Usage: "Submit a batch of shard submissions (possession proofs or oversized reports)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "node", Usage: "submitting node owner", Required: true},
		&cli.StringFlag{Name: "payer", Usage: "upload payer", Required: true},
		&cli.StringFlag{Name: "file", Usage: "JSON file holding the submission batch", Required: true},
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

		raw, err := os.ReadFile(cctx.String("file"))
		if err != nil {
			return xerrors.Errorf("reading submission file: %w", err)
		}
		var subs []types.ShardSubmission
		if err := json.Unmarshal(raw, &subs); err != nil {
			return xerrors.Errorf("decoding submission file: %w", err)
		}

		return sm.SubmitPoS(cctx.Context, node, payer, subs)
	},
}

var closeCmd = &cli.Command{
	Name:  "close",
	Usage: "Close a settled upload and refund its residual escrow",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "payer", Required: true},
		&cli.StringFlag{Name: "hash", Required: true},
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
		refund, err := sm.CloseUpload(cctx.Context, payer, cctx.String("hash"))
		if err != nil {
			return err
		}
		fmt.Printf("upload closed, refunded %s\n", refund)
		return nil
	},
}
