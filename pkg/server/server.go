package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/approxdict/internal/logger"
	"github.com/bastiangx/approxdict/pkg/approx"
	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

// Server handles msgpack IPC for approximate searches
type Server struct {
	searcher approx.ISearcher
	info     DictInfo
	dec      *msgpack.Decoder
	out      *bufio.Writer
	enc      *msgpack.Encoder
	logger   *log.Logger
	requests int
}

// NewServer creates a server reading requests from in and writing responses
// to out, normally the process stdin and stdout
func NewServer(searcher approx.ISearcher, info DictInfo, in io.Reader, out io.Writer) *Server {
	w := bufio.NewWriter(out)
	return &Server{
		searcher: searcher,
		info:     info,
		dec:      msgpack.NewDecoder(bufio.NewReader(in)),
		out:      w,
		enc:      msgpack.NewEncoder(w),
		logger:   logger.New("ipc"),
	}
}

// Start writes the ready frame and serves requests until the input ends.
// A clean EOF returns nil.
func (s *Server) Start() error {
	s.logger.Debug("Starting IPC server", "digest", s.info.Digest, "words", s.info.Words)

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed", "requests", s.requests)
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid request", http.StatusBadRequest); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the action. Only write errors are returned.
func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", ActionApprox:
		return s.handleApprox(req)
	case ActionBatch:
		return s.handleBatch(req)
	case ActionInfo:
		return s.send(InfoResponse{ID: req.ID, DictInfo: s.info})
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), http.StatusBadRequest)
	}
}

func (s *Server) handleApprox(req Request) error {
	if req.Word == "" {
		s.logger.Debug("Word is empty in request", "id", req.ID)
		return s.sendError(req.ID, "missing 'w' parameter", http.StatusBadRequest)
	}

	start := time.Now()
	results, err := s.searcher.Search(req.Word, req.Distance)
	if err != nil {
		return s.sendError(req.ID, err.Error(), statusCode(err))
	}
	elapsed := time.Since(start)
	s.logger.Debugf("Took [ %v ] for %q within %d", elapsed, req.Word, req.Distance)

	return s.send(ApproxResponse{
		ID:        req.ID,
		Matches:   results,
		Count:     len(results),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleBatch(req Request) error {
	for i, q := range req.Queries {
		if q.Word == "" {
			return s.sendError(req.ID, fmt.Sprintf("query %d: missing word", i), http.StatusBadRequest)
		}
	}

	start := time.Now()
	batch, err := s.searcher.SearchBatch(context.Background(), req.Queries)
	if err != nil {
		return s.sendError(req.ID, err.Error(), statusCode(err))
	}

	resp := BatchResponse{
		ID:        req.ID,
		Results:   make([]ApproxResponse, len(batch)),
		TimeTaken: time.Since(start).Microseconds(),
	}
	for i, results := range batch {
		resp.Results[i] = ApproxResponse{Matches: results, Count: len(results)}
	}
	return s.send(resp)
}

// send encodes one response and flushes it to the client.
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// statusCode maps search errors onto HTTP status codes, shared by both transports.
func statusCode(err error) int {
	switch {
	case errors.Is(err, approxerrors.ErrQueryTooLong), errors.Is(err, approxerrors.ErrDistanceTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, approxerrors.ErrMappingClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
