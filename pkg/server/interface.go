/*
Package server exposes an approximate search dictionary over msgpack IPC and HTTP.

# IPC

The IPC server reads a stream of msgpack maps from stdin and writes one
msgpack map per request to stdout. A status frame is written first:

	{"status": "ready"}

Every request carries an ID and an action, "approx" when omitted:

	{"id": "req_001", "w": "tset", "d": 1}

The server responds with the matches ranked by distance, then frequency,
then word, with the search time in microseconds:

	{"id": "req_001", "m": [{"w": "test", "f": 10, "d": 1}], "c": 1, "t": 38}

Several queries can be sent at once and run concurrently against the shared
dictionary:

	{"id": "req_002", "a": "batch", "q": [{"w": "tset", "d": 1}, {"w": "txet", "d": 2}]}
	{"id": "req_002", "r": [{"m": [...], "c": 1}, {"m": [...], "c": 3}], "t": 91}

"info" describes the loaded dictionary and "health" answers {"status": "ok"}.
A failed request is answered with an error frame carrying an HTTP-like code:

	{"id": "req_003", "e": "query of 300 bytes, limit 256: ...", "c": 422}

# HTTP

NewHTTPHandler serves the same searches as JSON:

	GET /approx/{dist}/{word}   the ranked matches, as written by approx.WriteJSON
	GET /health                 {"status": "ok"}
	GET /info                   dictionary description
*/
package server

import "github.com/bastiangx/approxdict/pkg/approx"

// Actions understood by the IPC server
const (
	ActionApprox = "approx"
	ActionBatch  = "batch"
	ActionInfo   = "info"
	ActionHealth = "health"
)

// Request - IPC request envelope
type Request struct {
	ID       string         `msgpack:"id"`
	Action   string         `msgpack:"a,omitempty"`
	Word     string         `msgpack:"w,omitempty"`
	Distance uint32         `msgpack:"d,omitempty"`
	Queries  []approx.Query `msgpack:"q,omitempty"`
}

// ApproxResponse - matches for one query
type ApproxResponse struct {
	ID        string          `msgpack:"id,omitempty"`
	Matches   []approx.Result `msgpack:"m"`
	Count     int             `msgpack:"c"`
	TimeTaken int64           `msgpack:"t,omitempty"`
}

// BatchResponse - matches for every query of a batch, in request order
type BatchResponse struct {
	ID        string           `msgpack:"id"`
	Results   []ApproxResponse `msgpack:"r"`
	TimeTaken int64            `msgpack:"t"`
}

// StatusResponse - ready and health frames
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty" json:"id,omitempty"`
	Status string `msgpack:"status" json:"status"`
}

// InfoResponse - description of the loaded dictionary
type InfoResponse struct {
	ID string `msgpack:"id,omitempty" json:"-"`
	DictInfo
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id" json:"id,omitempty"`
	Error string `msgpack:"e" json:"error"`
	Code  int    `msgpack:"c" json:"code"`
}
