// Package msg defines the interface for different message brokers.
package msg

// ShipmentEvent is the message published for every DataCreated event handled by the listener. Amounts are decimal
// strings.
type ShipmentEvent struct {
	TransactionHash     string `json:"transactionHash"`
	Username            string `json:"username"`
	ShipmentServiceCode string `json:"shipmentServiceCode"`
	CarrierName         string `json:"carrierName"`
	CreatedAt           string `json:"createdAt"`
	Status              string `json:"status"`
	SelectedRate        string `json:"selectedRate"`
	NoOfInstallments    string `json:"noOfInstallments"`
	NetPayable          string `json:"netPayable"`
	PaidAmount          string `json:"paidAmount"`
	InsuranceAmount     string `json:"insuranceAmount"`
	Block               uint64 `json:"block"`
	TxHash              string `json:"txHash"`
}

type MsgBroker interface {
	Setup() error
	Close() error

	// methods for the event listener
	SendEvent(e ShipmentEvent) error
}
