/*
Package server implements msgpack IPC for gazetteer lookups.

The server reads structured messages from stdin and writes responses to
stdout using binary msgpack encoding. Each message carries an ID so clients
can match responses to requests; responses include timing info.

Lookup requests resolve a variant through the bijective lookup:

	{"id": "req_001", "cmd": "lookup", "q": "Quercus robur"}

The server responds with the identifiers of the resolved entry:

	{"id": "req_001", "e": "Quercus robur", "u": ["https://..."], "c": 1, "t": 12}

Other commands: "variants" lists the generated variants of an entry,
"suggest" scans the vocabulary for a prefix, "health" reports status.
*/
package server

// Request is the single incoming message shape.
type Request struct {
	ID      string `msgpack:"id"`
	Command string `msgpack:"cmd"`
	Query   string `msgpack:"q"`
	Limit   int    `msgpack:"l,omitempty"`
}

// LookupResponse answers a "lookup" request.
type LookupResponse struct {
	ID          string   `msgpack:"id"`
	Entry       string   `msgpack:"e,omitempty"`
	Identifiers []string `msgpack:"u,omitempty"`
	Count       int      `msgpack:"c"`
	TimeTaken   int64    `msgpack:"t"`
}

// VariantsResponse answers a "variants" request.
type VariantsResponse struct {
	ID        string   `msgpack:"id"`
	Variants  []string `msgpack:"v,omitempty"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// SuggestItem is one prefix-scan hit.
type SuggestItem struct {
	Variant string `msgpack:"v"`
	Entry   string `msgpack:"e"`
}

// SuggestResponse answers a "suggest" request.
type SuggestResponse struct {
	ID          string        `msgpack:"id"`
	Suggestions []SuggestItem `msgpack:"s,omitempty"`
	Count       int           `msgpack:"c"`
	TimeTaken   int64         `msgpack:"t"`
}

// StatusResponse reports server status.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
