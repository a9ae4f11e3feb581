package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"
	levelds "github.com/ipfs/go-ds-leveldb"
	logging "github.com/ipfs/go-log/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/build"
	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/stmgr"
	"github.com/cenwadike/solad-sub000/journal"
	"github.com/cenwadike/solad-sub000/journal/fsjournal"
	"github.com/cenwadike/solad-sub000/lib/soladlog"
)

var log = logging.Logger("solad")

func main() {
	soladlog.SetupLogLevels()

	local := []*cli.Command{
		initCmd,
		updateConfigCmd,
		configCmd,
		nodeCmd,
		uploadCmd,
		submitPoSCmd,
		replaceCmd,
		slashTimeoutCmd,
		slashUserCmd,
		claimCmd,
		closeCmd,
		balanceCmd,
		creditCmd,
	}

	app := &cli.App{
		Name:     "solad",
		Usage:    "Operate a solad storage coordination ledger",
		Version:  build.UserVersion(),
		Commands: local,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				EnvVars: []string{"SOLAD_PATH"},
				Value:   "~/.solad",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Before: func(cctx *cli.Context) error {
			return logging.SetLogLevel("solad", cctx.String("log-level"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%+v", err)
		os.Exit(1)
	}
}

var genesisKey = datastore.NewKey("/genesis")

// openStateManager opens the repo's datastore and journal and wires the
// state manager over them. The genesis instant is pinned in the datastore on
// first open so slot numbers stay stable across runs.
func openStateManager(cctx *cli.Context) (*stmgr.StateManager, func(), error) {
	repoPath, err := homedir.Expand(cctx.String("repo"))
	if err != nil {
		return nil, nil, xerrors.Errorf("expanding repo path: %w", err)
	}
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return nil, nil, xerrors.Errorf("creating repo dir: %w", err)
	}

	ds, err := levelds.NewDatastore(filepath.Join(repoPath, "datastore"), nil)
	if err != nil {
		return nil, nil, xerrors.Errorf("opening datastore: %w", err)
	}

	ctx := context.Background()
	var genesis time.Time
	switch raw, err := ds.Get(ctx, genesisKey); err {
	case nil:
		nanos, perr := strconv.ParseInt(string(raw), 10, 64)
		if perr != nil {
			_ = ds.Close()
			return nil, nil, xerrors.Errorf("corrupt genesis record: %w", perr)
		}
		genesis = time.Unix(0, nanos)
	case datastore.ErrNotFound:
		genesis = build.Clock.Now()
		if err := ds.Put(ctx, genesisKey, []byte(strconv.FormatInt(genesis.UnixNano(), 10))); err != nil {
			_ = ds.Close()
			return nil, nil, xerrors.Errorf("pinning genesis: %w", err)
		}
	default:
		_ = ds.Close()
		return nil, nil, xerrors.Errorf("reading genesis: %w", err)
	}

	j, err := fsjournal.OpenFSJournal(repoPath, journal.EnvDisabledEvents())
	if err != nil {
		_ = ds.Close()
		return nil, nil, xerrors.Errorf("opening journal: %w", err)
	}

	sm := stmgr.NewStateManager(ledger.NewLedger(ds, genesis), j)
	closer := func() {
		if err := j.Close(); err != nil {
			log.Warnf("closing journal: %s", err)
		}
		if err := ds.Close(); err != nil {
			log.Warnf("closing datastore: %s", err)
		}
	}
	return sm, closer, nil
}

func addrFlag(cctx *cli.Context, name string) (address.Address, error) {
	a, err := address.NewFromString(cctx.String(name))
	if err != nil {
		return address.Undef, xerrors.Errorf("parsing --%s: %w", name, err)
	}
	return a, nil
}

func parseAddrArg(cctx *cli.Context, i int, what string) (address.Address, error) {
	if cctx.Args().Len() <= i {
		return address.Undef, xerrors.Errorf("missing %s argument", what)
	}
	a, err := address.NewFromString(cctx.Args().Get(i))
	if err != nil {
		return address.Undef, xerrors.Errorf("parsing %s: %w", what, err)
	}
	return a, nil
}
