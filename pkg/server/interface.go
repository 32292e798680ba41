/*
Package server implements msgpack IPC for the word dictionary.

The server reads a stream of msgpack-encoded requests from stdin and writes
one msgpack-encoded response per request to stdout. Requests are handled one
at a time, in order, against the same completer the interactive session uses,
so edits made over IPC go through the same store-then-tree ordering.

# IPC

Every request carries an ID echoed in its response and an action. An empty
action with a prefix is treated as a completion request:

	{"id": "req_001", "p": "ca", "l": 10}

The server responds with the matching words in tree order, ranked by position:

	{"id": "req_001", "s": [{"w": "cat", "r": 1}, {"w": "car", "r": 2}], "c": 2, "t": 14}

Word actions take the word in "w":

	{"id": "w1", "action": "add", "w": "fish"}
	{"id": "w2", "action": "remove", "w": "cat"}
	{"id": "w3", "action": "exists", "w": "dog"}

and answer with a status of added, exists, removed, not_found, present or absent.

	{"id": "s1", "action": "stats"}

returns the dictionary counters. Failures come back as a CompletionError with
an HTTP-like code.
*/
package server

// Request is any client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"` // "complete", "add", "remove", "exists", "stats"
	Prefix string `msgpack:"p,omitempty"`
	Word   string `msgpack:"w,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// WordResponse answers add, remove and exists.
type WordResponse struct {
	ID     string `msgpack:"id"`
	Word   string `msgpack:"w"`
	Status string `msgpack:"status"`
}

// StatsResponse carries dictionary counters.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
