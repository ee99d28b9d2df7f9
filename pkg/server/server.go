package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lexigraph/gazetteer/pkg/config"
	"github.com/lexigraph/gazetteer/pkg/gazetteer"
)

// Server handles the IPC for gazetteer lookups.
type Server struct {
	model   *gazetteer.Model
	cfg     *config.Config
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a lookup server over stdin/stdout.
func NewServer(model *gazetteer.Model, cfg *config.Config) *Server {
	return &Server{
		model:   model,
		cfg:     cfg,
		decoder: msgpack.NewDecoder(os.Stdin),
		encoder: msgpack.NewEncoder(os.Stdout),
	}
}

// NewServerWithIO creates a server over the given streams, used by tests.
func NewServerWithIO(model *gazetteer.Model, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		model:   model,
		cfg:     cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request.
func (s *Server) handleRequest(request Request) {
	switch request.Command {
	case "lookup":
		s.handleLookup(request)
	case "variants":
		s.handleVariants(request)
	case "suggest":
		s.handleSuggest(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

// handleLookup resolves a variant to its entry and identifier set.
func (s *Server) handleLookup(request Request) {
	if request.Query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		return
	}

	start := time.Now()
	response := LookupResponse{ID: request.ID}
	if e, ok := s.model.EntryForVariant(request.Query); ok {
		response.Entry = e
		response.Identifiers = s.model.IdentifiersForVariant(request.Query).Sorted()
		response.Count = len(response.Identifiers)
	}
	response.TimeTaken = time.Since(start).Microseconds()
	s.send(response)
}

// handleVariants lists the generated variants of an entry.
func (s *Server) handleVariants(request Request) {
	if request.Query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		return
	}

	start := time.Now()
	var variants []string
	for v := range s.model.VariantsForEntry(request.Query) {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	s.send(VariantsResponse{
		ID:        request.ID,
		Variants:  variants,
		Count:     len(variants),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

// handleSuggest scans the vocabulary for variants with the given prefix.
func (s *Server) handleSuggest(request Request) {
	prefix := request.Query
	if prefix == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		return
	}
	if len(prefix) < s.cfg.Server.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", s.cfg.Server.MinPrefix), 400)
		return
	}
	if len(prefix) > s.cfg.Server.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		return
	}

	limit := request.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	hits := s.model.SuggestPrefix(prefix, limit)
	items := make([]SuggestItem, len(hits))
	for i, hit := range hits {
		items[i] = SuggestItem{Variant: hit.Variant, Entry: hit.Entry}
	}

	s.send(SuggestResponse{
		ID:          request.ID,
		Suggestions: items,
		Count:       len(items),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

// send encodes one response message.
func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
