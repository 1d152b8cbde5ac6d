// Package main: deploys the DataStorage contract from its descriptor file and prints the address to configure as
// CONTRACT_ADDRESS.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	flag "github.com/spf13/pflag"

	"github.com/tarancss/shipledger/lib/block"
	"github.com/tarancss/shipledger/lib/config"
	"github.com/tarancss/shipledger/lib/ledger"
)

func main() {
	confPath := flag.StringP("config", "c", "", "get configuration from json file")
	flag.Parse()

	conf, err := config.ExtractConfiguration(*confPath)
	if err != nil {
		log.Fatal(err)
	}

	if conf.Node == "" {
		log.Fatal(config.ErrNoNode)
	}

	d, err := ledger.LoadDescriptor(conf.Descriptor)
	if err != nil {
		log.Fatal(err)
	}

	parsed, err := d.Parse()
	if err != nil {
		log.Fatal(err)
	}

	code, err := d.Code()
	if err != nil {
		log.Fatal(err)
	}

	bc, err := block.Init(conf.Node)
	if err != nil {
		log.Fatal(err)
	}
	defer bc.Close()

	id, err := ledger.NewIdentity(conf.PrivateKey, conf.Seed)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(conf.ConfirmTimeout))
	defer cancel()

	chainID, err := bc.Client().ChainID(ctx)
	if err != nil {
		log.Fatal(err)
	}

	opts, err := id.TransactOpts(chainID)
	if err != nil {
		log.Fatal(err)
	}

	opts.Context = ctx

	_, tx, _, err := bind.DeployContract(opts, parsed, code, bc.Client())
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Deploying DataStorage from %s in tx %s", id.Address.Hex(), tx.Hash().Hex())

	addr, err := bind.WaitDeployed(ctx, bc.Client(), tx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(addr.Hex())
}
