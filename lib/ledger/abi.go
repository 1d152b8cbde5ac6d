package ledger

// Contract method and event names.
const (
	MethodCreateData          = "createData"
	MethodSetInstallmentData  = "setInstallmentData"
	MethodUpdateInstalment    = "updateInstalment"
	MethodUpdateStatus        = "updateStatus"
	MethodGetAllData          = "getAllData"
	MethodGetDataByHash       = "getDataByTransactionHash"
	MethodGetInstalmentByHash = "getInstalmentDataByTransactionHash"
	MethodUserShipment        = "userShipment"
	EventDataCreated          = "DataCreated"
)

const (
	shipmentTupleComponentsJSON = `[
	{"name":"transactionHash","type":"bytes32"},
	{"name":"userId","type":"string"},
	{"name":"email","type":"string"},
	{"name":"shipmentServiceCode","type":"string"},
	{"name":"carrierName","type":"string"},
	{"name":"createdAt","type":"string"},
	{"name":"status","type":"string"},
	{"name":"selectedRate","type":"uint256"},
	{"name":"noOfInstallments","type":"uint256"},
	{"name":"netPayable","type":"uint256"},
	{"name":"insuranceAmount","type":"uint256"},
	{"name":"paymentMethod","type":"string"}]`
	instalmentTupleComponentsJSON = `[
	{"name":"transactionHash","type":"bytes32"},
	{"name":"instalmentDeadLine","type":"string"},
	{"name":"payableAmount","type":"uint256"},
	{"name":"paidAmounts","type":"uint256[]"},
	{"name":"paidDates","type":"string[]"}]`
)

// DataStorageABI is the interface of the DataStorage contract. It is used when no descriptor file is available.
const DataStorageABI = `[
{"type":"event","name":"DataCreated","anonymous":false,"inputs":[
	{"name":"transactionHash","type":"bytes32","indexed":true},
	{"name":"username","type":"string","indexed":false},
	{"name":"shipmentServiceCode","type":"string","indexed":false},
	{"name":"carrierName","type":"string","indexed":false},
	{"name":"createdAt","type":"string","indexed":false},
	{"name":"status","type":"string","indexed":false},
	{"name":"selectedRate","type":"uint256","indexed":false},
	{"name":"noOfInstallments","type":"uint256","indexed":false},
	{"name":"netPayable","type":"uint256","indexed":false},
	{"name":"paidAmount","type":"uint256","indexed":false},
	{"name":"insuranceAmount","type":"uint256","indexed":false}]},
{"type":"function","name":"createData","stateMutability":"nonpayable","inputs":[
	{"name":"userId","type":"string"},
	{"name":"email","type":"string"},
	{"name":"shipmentServiceCode","type":"string"},
	{"name":"carrierName","type":"string"},
	{"name":"createdAt","type":"string"},
	{"name":"status","type":"string"},
	{"name":"selectedRate","type":"uint256"},
	{"name":"noOfInstallments","type":"uint256"},
	{"name":"netPayable","type":"uint256"},
	{"name":"insuranceAmount","type":"uint256"},
	{"name":"paymentMethod","type":"string"}],"outputs":[]},
{"type":"function","name":"setInstallmentData","stateMutability":"nonpayable","inputs":[
	{"name":"transactionHash","type":"bytes32"},
	{"name":"instalmentDeadLine","type":"string"},
	{"name":"payableAmount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"updateInstalment","stateMutability":"nonpayable","inputs":[
	{"name":"transactionHash","type":"bytes32"},
	{"name":"paidAmount","type":"uint256"},
	{"name":"paidDate","type":"string"}],"outputs":[]},
{"type":"function","name":"updateStatus","stateMutability":"nonpayable","inputs":[
	{"name":"transactionHash","type":"bytes32"},
	{"name":"status","type":"string"}],"outputs":[]},
{"type":"function","name":"getAllData","stateMutability":"view","inputs":[],"outputs":[
	{"name":"","type":"tuple[]","components":` + shipmentTupleComponentsJSON + `}]},
{"type":"function","name":"getDataByTransactionHash","stateMutability":"view","inputs":[
	{"name":"transactionHash","type":"bytes32"}],"outputs":[
	{"name":"","type":"tuple","components":` + shipmentTupleComponentsJSON + `}]},
{"type":"function","name":"getInstalmentDataByTransactionHash","stateMutability":"view","inputs":[
	{"name":"transactionHash","type":"bytes32"}],"outputs":[
	{"name":"","type":"tuple","components":` + instalmentTupleComponentsJSON + `}]},
{"type":"function","name":"userShipment","stateMutability":"view","inputs":[
	{"name":"","type":"uint256"}],"outputs":[
	{"name":"transactionHash","type":"bytes32"},
	{"name":"userId","type":"string"},
	{"name":"email","type":"string"},
	{"name":"shipmentServiceCode","type":"string"},
	{"name":"carrierName","type":"string"},
	{"name":"createdAt","type":"string"},
	{"name":"status","type":"string"},
	{"name":"selectedRate","type":"uint256"},
	{"name":"noOfInstallments","type":"uint256"},
	{"name":"netPayable","type":"uint256"},
	{"name":"insuranceAmount","type":"uint256"},
	{"name":"paymentMethod","type":"string"}]}
]`
