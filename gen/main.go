package main

import (
	"fmt"
	"os"

	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/cenwadike/solad-sub000/chain/types"
)

func main() {
	err := gen.WriteTupleEncodersToFile("./chain/types/cbor_gen.go", "types",
		types.StorageConfig{},
		types.Node{},
		types.NodeRegistry{},
		types.Upload{},
		types.ShardInfo{},
		types.OversizedReport{},
		types.Escrow{},
		types.Replacement{},
		types.UserUploadKeys{},
	)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
