package gateway

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tarancss/shipledger/lib/fault"
	"github.com/tarancss/shipledger/lib/ledger"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response defines the data structure returned to the client making the http request.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// ErrorData is the data of an error response. Completed and Outcome are only set when a composite write failed
// after some of its steps were committed.
type ErrorData struct {
	fault.Body
	Completed []string        `json:"completed,omitempty"`
	Outcome   *ledger.Outcome `json:"outcome,omitempty"`
}

// stepError is the failure of a step of a composite write.
type stepError struct {
	err       *fault.Error
	completed []string
	outcome   *ledger.Outcome
}

func (e *stepError) Error() string { return e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

// reply writes the envelope for data or err, and logs the request.
func reply(rw http.ResponseWriter, r *http.Request, data interface{}, err error) {
	res := Response{Status: StatusSuccess, Data: data}
	status := http.StatusOK

	if err != nil {
		fe := fault.Classify("", err)
		ed := ErrorData{Body: fault.ToBody(fe)}

		var se *stepError
		if errors.As(err, &se) {
			ed.Completed = se.completed
			ed.Outcome = se.outcome
		}

		res = Response{Status: StatusError, Data: ed}
		status = fault.HTTPStatus(fe)
	}

	log.Printf("httpreq %s from %v %s %s status:%d err:%v", reqID(r), r.RemoteAddr, r.Method, r.RequestURI, status,
		err)

	rw.Header().Set("Content-Type", "application/json;charset=utf8")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(&res)
}
