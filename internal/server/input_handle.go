package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/XJIeI5/calcengine/internal/calcerr"
	"github.com/XJIeI5/calcengine/internal/parser"
	"github.com/XJIeI5/calcengine/internal/session"
)

type inputRequest struct {
	Tokens []string `json:"tokens"`
	Expr   string   `json:"expr"`
}

// readTokens decodes the request body. Explicit tokens win over expr, which is
// tokenized the way the console does it.
func readTokens(r *http.Request) ([]string, error) {
	var in inputRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&in); err != nil {
		return nil, err
	}
	if len(in.Tokens) > 0 {
		return in.Tokens, nil
	}
	return parser.Tokenize(in.Expr)
}

func (s *server) handleInput(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}
	tokens, err := readTokens(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := s.sessions.Input(r.Context(), id, tokens)
	if err != nil {
		s.writeInputError(w, err, res.Current)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handlePostfix(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}
	tokens, err := readTokens(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	postfix, err := s.sessions.Postfix(r.Context(), id, tokens)
	if err != nil {
		s.writeInputError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Postfix []string `json:"postfix"`
	}{Postfix: postfix})
}

func (s *server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}
	cur, err := s.sessions.Current(r.Context(), id)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Result{Current: cur})
}

func (s *server) handleClear(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Clear(r.Context(), id); err != nil {
		s.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Result{Current: "0"})
}

func (s *server) writeInputError(w http.ResponseWriter, err error, current string) {
	switch {
	case calcerr.IsCalculatorError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   err.Error(),
			Kind:    calcerr.KindOf(err),
			Current: current,
		})
	case errors.Is(err, session.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.writeSessionError(w, err)
	}
}

// writeBadRequest reports a body that could not be decoded or tokenized.
func writeBadRequest(w http.ResponseWriter, err error) {
	var kind string
	if calcerr.IsCalculatorError(err) {
		kind = calcerr.KindOf(err)
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: kind})
}
