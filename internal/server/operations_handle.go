package server

import (
	"net/http"

	op "github.com/XJIeI5/calcengine/internal/operation"
)

type operationInfo struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Instructions   string   `json:"instructions"`
	ArgumentLabels []string `json:"argument_labels"`
	AllowsDecimal  bool     `json:"allows_decimal"`
	AllowsNegative bool     `json:"allows_negative"`
}

type operatorInfo struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Precedence      int    `json:"precedence"`
	LeftAssociative bool   `json:"left_associative"`
}

func (s *server) handleOperations(w http.ResponseWriter, r *http.Request) {
	registry := s.sessions.Registry()

	var resp struct {
		Operators  []operatorInfo  `json:"operators"`
		Operations []operationInfo `json:"operations"`
	}
	for _, o := range op.Operands {
		if _, ok := o.(op.BinaryOperand); !ok {
			continue
		}
		prec, _ := op.Precedence(o.Symbol())
		left, _ := op.LeftAssociative(o.Symbol())
		resp.Operators = append(resp.Operators, operatorInfo{
			Symbol:          o.Symbol(),
			Name:            o.Name(),
			Precedence:      prec,
			LeftAssociative: left,
		})
	}
	for _, code := range registry.Codes() {
		o, _ := registry.Lookup(code)
		resp.Operations = append(resp.Operations, operationInfo{
			Code:           code,
			Name:           o.Name(),
			Description:    o.Description(),
			Instructions:   o.Instructions(),
			ArgumentLabels: o.ArgumentLabels(),
			AllowsDecimal:  o.AllowsDecimal(),
			AllowsNegative: o.AllowsNegative(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
