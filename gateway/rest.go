package gateway

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Router returns the handler of the RESTful API.
func (g *Gateway) Router() http.Handler {
	// API definition
	r := mux.NewRouter()
	r.HandleFunc("/", g.homeHandler).Methods("GET")
	r.HandleFunc("/assign-shipment-in-blockchain", g.createHandler).Methods("POST")
	r.HandleFunc("/update-shipment-status/{transactionHash}", g.statusHandler).Methods("PATCH")
	r.HandleFunc("/update-shipment-instalment/{transactionHash}", g.instalmentHandler).Methods("PATCH")
	r.HandleFunc("/all-shipment-blockchain", g.allHandler).Methods("GET")
	r.HandleFunc("/get-detail/{transaction_hash}", g.detailHandler).Methods("GET")
	r.HandleFunc("/inspecting-block", g.blockHandler).Methods("GET")
	r.HandleFunc("/get-shipment-by-id/{id}", g.byIDHandler).Methods("GET")
	r.Use(requestID, observability)

	// CORS open to any origin, no credentials
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(cors(r))
}

// Init sets up and starts the http server to service the RESTful API. If sslPort, sslCert and sslKey are informed,
// it also starts an https (TLS) server on the same endpoint. It blocks until Stop is called.
func (g *Gateway) Init(endpoint, port, sslPort, sslCert, sslKey string) string {
	h := g.Router()

	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()

		return "gateway stopped before start"
	}

	// start http server
	if port != "" {
		s := g.server(h, endpoint+":"+port)
		g.s = s

		g.wg.Add(1)

		go g.serve(s.ListenAndServe)

		log.Printf("Listening to API http requests on %s:%s", endpoint, port)
	}
	// start https server
	if sslPort != "" && sslCert != "" && sslKey != "" {
		ss := g.server(h, endpoint+":"+sslPort)
		g.ss = ss

		g.wg.Add(1)

		go g.serve(func() error { return ss.ListenAndServeTLS(sslCert, sslKey) })

		log.Printf("Listening to API https requests on %s:%s", endpoint, sslPort)
	}
	g.mu.Unlock()

	// wait for servers to be shutdown
	<-g.sc
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return fmt.Sprintf("shutdown servers:%v", g.errs)
}

func (g *Gateway) server(h http.Handler, addr string) *http.Server {
	return &http.Server{
		Handler:      h,
		Addr:         addr,
		WriteTimeout: g.Timeout,
		ReadTimeout:  g.Timeout,
	}
}

// serve runs a server until it is shut down, recording its error.
func (g *Gateway) serve(listen func() error) {
	defer g.wg.Done()

	err := listen()

	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}
