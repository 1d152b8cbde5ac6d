// Package main: shipledger gateway service.
//
// The gateway serves the RESTful API over the DataStorage contract and runs the DataCreated listener. Configuration
// is read from a JSON file (flag -c), a .env file and OS ENV variables, see package lib/config.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/tarancss/shipledger/gateway"
	"github.com/tarancss/shipledger/lib/block"
	"github.com/tarancss/shipledger/lib/config"
	"github.com/tarancss/shipledger/lib/ledger"
	"github.com/tarancss/shipledger/lib/msg"
	"github.com/tarancss/shipledger/lib/msg/amqp"
	"github.com/tarancss/shipledger/lib/store/db"
	"github.com/tarancss/shipledger/listener"
)

// listenerName identifies the listener cursor in the database.
const listenerName = "DataCreated"

func main() {
	// get command line flags
	confPath := flag.StringP("config", "c", "", "get configuration from json file")
	monitor := flag.BoolP("metrics", "m", false, "monitor the server with Prometheus")
	metricsPort := flag.String("metrics-port", "9100", "port of the Prometheus metrics API")
	resetCursor := flag.Bool("reset-cursor", false, "delete the stored listener cursor and scan again from the "+
		"start block")
	flag.Parse()

	// extract configuration
	conf, err := config.ExtractConfiguration(*confPath)
	if err != nil {
		panic(err)
	}

	if err = conf.Validate(); err != nil {
		panic(err)
	}

	log.Printf("Configuration:%s", conf)

	// connect to the ledger network
	bc, err := block.Init(conf.Node)
	if err != nil {
		panic(err)
	}
	defer bc.Close()

	log.Print("Ledger client loaded")

	// load the contract interface
	parsed, err := contractABI(conf.Descriptor)
	if err != nil {
		panic(err)
	}

	contract, err := ledger.NewContract(conf.Contract, &parsed, bc.Client())
	if err != nil {
		panic(err)
	}

	// load the signing identity
	id, err := ledger.NewIdentity(conf.PrivateKey, conf.Seed)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	chainID, err := bc.Client().ChainID(ctx)
	cancel()

	if err != nil {
		panic(err)
	}

	opts, err := id.TransactOpts(chainID)
	if err != nil {
		panic(err)
	}

	log.Printf("Signing as %s on chain %s", id.Address.Hex(), chainID)

	sub := ledger.NewSubmitter(contract, bc.Client(), opts, time.Duration(conf.ConfirmTimeout))
	sub.Poll = time.Duration(conf.PollInterval)

	defer sub.Close()

	// load Prometheus monitor
	if *monitor {
		go func() {
			log.Println("Serving metrics API")

			h := http.NewServeMux()

			h.Handle("/metrics", promhttp.Handler())

			if err := http.ListenAndServe(":"+*metricsPort, h); err != nil {
				log.Printf("Metrics API: %v", err)
			}
		}()
	}

	// connect to database
	log.Printf("Connecting to database type:%q", conf.DBType)

	store, err := db.New(conf.DBType, conf.DBConn)
	if err != nil {
		panic(err)
	}

	defer func() {
		errClose := db.Close(conf.DBType, store)
		log.Printf("Closing database: %v", errClose)
	}()

	// load message broker
	handlers := []listener.Handler{listener.LogEvent}

	var mb msg.MsgBroker

	switch conf.MbType {
	case "amqp":
		if mb, err = amqp.New(conf.MbConn); err != nil {
			time.Sleep(10 * time.Second) // wait 10s for AMQP to be ready and try to reconnect

			if mb, err = amqp.New(conf.MbConn); err != nil {
				panic(err)
			}
		}

		if err = mb.Setup(); err != nil {
			panic(err)
		}

		defer func() {
			errClose := mb.Close()
			log.Printf("Closing messageBroker: %v", errClose)
		}()

		handlers = append(handlers, listener.Publish(mb))
	case "":
		log.Print("No message broker, events are only logged")
	default:
		log.Printf("Unknown message broker type: %s\n", conf.MbType)
	}

	// start the event listener
	start := conf.StartBlock
	if start == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		start, err = contract.BlockNumber(ctx)

		cancel()

		if err != nil {
			panic(err)
		}
	}

	if *resetCursor {
		if err = store.DeleteCursor(listenerName); err != nil {
			panic(err)
		}

		log.Printf("[%s] Stored cursor deleted", listenerName)
	}

	l, err := listener.New(listenerName, contract, store, start, handlers...)
	if err != nil {
		panic(err)
	}

	l.Poll = time.Duration(conf.PollInterval)

	lctx, lcancel := context.WithCancel(context.Background())
	ldone := make(chan struct{})

	go func() {
		l.Run(lctx)
		close(ldone)
	}()

	// create gateway service
	g := gateway.New(ledger.NewClient(contract, sub), bc, conf.Account(id.Address))
	if composite := 3*time.Duration(conf.ConfirmTimeout) + time.Minute; composite > g.Timeout {
		g.Timeout = composite
	}

	// capture CTRL+C or docker's SIGTERM for gracious exit
	go func() {
		sigchan := make(chan os.Signal, 10)
		signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
		<-sigchan
		log.Println("Program killed !")
		// do last actions and wait for the requests in flight to end
		ctx, cancel := context.WithTimeout(context.Background(), g.Timeout)
		defer cancel()

		l.Stop()
		g.Stop(ctx)
	}()

	// init RESTful API, wait for its return and log response
	log.Printf("Gateway: %s\n", g.Init(conf.RestfulEndpoint, conf.Port, conf.SSLPort, conf.SSLCert, conf.SSLKey))

	lcancel()
	<-ldone
}

// contractABI returns the interface in the descriptor file or, if there is no such file, the built-in one.
func contractABI(path string) (abi.ABI, error) {
	d, err := ledger.LoadDescriptor(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Descriptor %s not found, using built-in ABI", path)

		return abi.JSON(strings.NewReader(ledger.DataStorageABI))
	}

	if err != nil {
		return abi.ABI{}, err
	}

	return d.Parse()
}
