package server

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/bastiangx/wordtree/pkg/store"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word completions and edits
type Server struct {
	completer    suggest.ICompleter
	maxLimit     int
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer returns a server reading requests from r and writing responses to w.
// maxLimit caps the number of suggestions per completion.
func NewServer(completer suggest.ICompleter, maxLimit int, r io.Reader, w io.Writer) *Server {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &Server{
		completer: completer,
		maxLimit:  maxLimit,
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
	}
}

// Start signals readiness and then serves requests until the input closes.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requestCount++
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", "complete":
		return s.handleComplete(req)
	case "add":
		return s.handleWord(req, s.completer.Add)
	case "remove":
		return s.handleWord(req, s.completer.Remove)
	case "exists":
		status := "absent"
		if s.completer.Exists(req.Word) {
			status = "present"
		}
		return s.send(WordResponse{ID: req.ID, Word: req.Word, Status: status})
	case "stats":
		return s.send(StatsResponse{ID: req.ID, Stats: s.completer.Stats()})
	default:
		return s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleComplete(req Request) error {
	if req.Prefix == "" {
		log.Debug("Prefix is empty in request")
		return s.sendError(req.ID, "Missing 'p' parameter", 400)
	}

	limit := req.Limit
	if limit < 1 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	start := time.Now()
	words := s.completer.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	suggestions := make([]CompletionSuggestion, len(words))
	for i, w := range words {
		suggestions[i] = CompletionSuggestion{Word: w, Rank: uint16(min(i+1, math.MaxUint16))}
	}
	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleWord(req Request, op func(string) (suggest.Outcome, error)) error {
	outcome, err := op(req.Word)
	if err != nil {
		code := 500
		if errors.Is(err, suggest.ErrInvalidWord) {
			code = 400
		} else if errors.Is(err, store.ErrStoreReplace) {
			code = 507
		}
		return s.sendError(req.ID, err.Error(), code)
	}
	return s.send(WordResponse{ID: req.ID, Word: req.Word, Status: outcome.String()})
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	log.Debug("Request failed", "id", id, "code", code, "error", message)
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
