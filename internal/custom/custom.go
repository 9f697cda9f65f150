// Package custom implements the fixed-arity operations that sit outside the
// primitive operator set, and the registry that maps command codes to them.
//
// The set of operations is closed: an Operation can only be one of the
// variants declared in this package.
package custom

import (
	"sort"
	"strings"
)

// Operation is a named custom operation. Execute validates its own inputs and
// returns the result as decimal text.
type Operation interface {
	Name() string
	Description() string
	Instructions() string
	ArgumentLabels() []string
	AllowsDecimal() bool
	AllowsNegative() bool
	Execute(inputs []string) (string, error)
	variant()
}

// info carries the descriptive metadata every variant exposes.
type info struct {
	name           string
	description    string
	instructions   string
	argumentLabels []string
	allowsDecimal  bool
	allowsNegative bool
}

func (i info) Name() string         { return i.name }
func (i info) Description() string  { return i.description }
func (i info) Instructions() string { return i.instructions }
func (i info) AllowsDecimal() bool  { return i.allowsDecimal }
func (i info) AllowsNegative() bool { return i.allowsNegative }
func (i info) variant()             {}

func (i info) ArgumentLabels() []string {
	return append([]string(nil), i.argumentLabels...)
}

// Registry maps case-insensitive command codes to operations.
type Registry struct {
	ops map[string]Operation
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// DefaultRegistry returns the C, F, M and P operations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("C", NewClear())
	r.Register("F", NewFactorial())
	r.Register("M", NewMetricConverter())
	r.Register("P", NewPythagoreanSolve())
	return r
}

// Register binds code to operation, replacing any previous binding.
func (r *Registry) Register(code string, operation Operation) {
	r.ops[strings.ToUpper(code)] = operation
}

// Lookup finds the operation for code.
func (r *Registry) Lookup(code string) (Operation, bool) {
	o, ok := r.ops[strings.ToUpper(code)]
	return o, ok
}

// Codes returns the registered command codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.ops))
	for code := range r.ops {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
