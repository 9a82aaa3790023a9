// Package validate checks cube edge lengths before they travel anywhere.
// All three hops (host endpoint, bridge, MCP tool) validate with the same
// rules so a bad value is rejected at the earliest hop it reaches and no
// downstream call is made.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrEdgeMissing is returned when the edge parameter is absent.
	ErrEdgeMissing = errors.New("missing required parameter: edge")
	// ErrEdgeNotNumeric is returned when the edge parameter cannot be parsed as a number.
	ErrEdgeNotNumeric = errors.New("edge must be a number")
	// ErrEdgeNotPositive is returned when the edge is zero, negative, or not finite.
	ErrEdgeNotPositive = errors.New("edge must be a positive finite number")
)

// Edge validates an edge length in millimetres. A valid edge is finite
// and strictly positive. Units are implicit; no conversion is performed.
func Edge(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrEdgeNotPositive
	}
	if v <= 0 {
		return fmt.Errorf("%w: got %g", ErrEdgeNotPositive, v)
	}
	return nil
}

// ParseEdge parses a query-string edge value and validates it.
func ParseEdge(s string) (float64, error) {
	if s == "" {
		return 0, ErrEdgeMissing
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrEdgeNotNumeric, s)
	}
	if err := Edge(v); err != nil {
		return 0, err
	}
	return v, nil
}
