// Package shipledger and its sub-packages implement a REST gateway over the DataStorage contract, a shipment and
// insurance ledger deployed on an Ethereum network.
/*
shipledger provides one service and one tool:

1) a gateway service (package gateway, started with cmd/gateway/main.go) that implements a RESTful API to store
 shipments, update their status, record installment payments and read them back from the contract. It also runs the
 DataCreated event listener (package listener).

2) a deploy tool (cmd/deploy/main.go) that deploys the contract from its compiled descriptor and prints its address.

Architecture

Writes are signed with the configured identity and sent by a single writer (package lib/ledger) so that nonces never
collide. A write is only replied once its transaction is mined; a reverted transaction is replied as an error. BNPL
shipments chain three confirmed writes and, if one of them fails, the reply lists the writes that were committed.

Every failure is classified (package lib/fault) as a validation, network, ledger-rejected or timeout error before it
is replied, within the {"status":..., "data":...} envelope.

The listener scans mined blocks for DataCreated events, logs them and, when a message broker is configured (package
lib/msg), publishes them. The last block handled is saved in a database (package lib/store) so that a restarted
listener replays the events it missed.

A blockchain layer (package lib/block) provides the network level requests: account balance, block number and
block inspection.

The gateway can be monitored via a Prometheus API by setting the flag "-m" at startup.
*/
package shipledger
