// Package amqp implements the message broker interface for AMQP compliant brokers (ie RabbitMQ)
package amqp

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/streadway/amqp"

	"github.com/tarancss/shipledger/lib/msg"
)

// Exchange is the topic exchange the listener publishes ledger events to.
const Exchange = "le"

// Amqp implements a connection to a broker and a channel for reuse.
type Amqp struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

// New instantiates a new amqp broker.
func New(uri string) (*Amqp, error) {
	r := Amqp{}

	var err error

	if r.conn, err = amqp.Dial(uri); err != nil {
		return nil, err
	}

	log.Printf("Connected to message broker")

	return &r, nil
}

// Setup obtains an amqp channel and declares the message broker exchange:
//
// - le ("ledger events"): the listener publishes DataCreated events to this exchange
func (r *Amqp) Setup() error {
	// obtain a one-use channel
	channel, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer channel.Close()

	return channel.ExchangeDeclare(Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
}

// Close terminates gracefully the connection to the AMQP message broker
func (r *Amqp) Close() error {
	r.mu.Lock()
	if r.ch != nil {
		if err := r.ch.Close(); err != nil {
			log.Printf("Error closing amqp.Channel:%v", err)
		}

		r.ch = nil
	}
	r.mu.Unlock()

	return r.conn.Close()
}

// RoutingKey returns the key a shipment event is published with.
func RoutingKey(e msg.ShipmentEvent) string {
	return "shipment.created." + e.TransactionHash
}

// SendEvent publishes a shipment event to the "le" exchange
func (r *Amqp) SendEvent(e msg.ShipmentEvent) (err error) {
	// marshal to JSON
	var jsonDoc []byte
	if jsonDoc, err = json.Marshal(e); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// obtain channel if not present
	if r.ch == nil {
		if r.ch, err = r.conn.Channel(); err != nil {
			return
		}
	}
	// build body
	m := amqp.Publishing{
		Headers:     amqp.Table{"x-event-name": "DataCreated." + e.TransactionHash},
		Body:        jsonDoc,
		ContentType: "application/json",
	}
	// publish
	if err = r.ch.Publish(Exchange, RoutingKey(e), false, false, m); err != nil {
		log.Printf("[amqp] Error sending event to message broker %v", err)
		// the channel is unusable after an error
		r.ch = nil
	}

	return
}
