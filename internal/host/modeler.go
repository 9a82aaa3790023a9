// Package host models the command endpoint that runs embedded in the CAD
// application. The application's live document is reached through the
// Modeler capability interface; the HTTP front in endpoint.go is the only
// way in. Ports, routes, and response bodies match the LiveCube add-in so
// existing bridge deployments work against either.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoDocument is the failure a Modeler returns when the host has no
// active document to mutate.
var ErrNoDocument = errors.New("no active document")

// Modeler creates geometry in the host application's active document.
//
// The real embedding runs on the host's single-threaded scripting event
// loop, which serialises calls on its own. No additional concurrency
// guard is provided here; overlapping requests queue or fail according
// to the host's threading, a known gap in the original design.
type Modeler interface {
	// CreateCuboid adds a cuboid with the given edge length (mm) to the
	// active document and returns a confirmation message.
	CreateCuboid(ctx context.Context, edgeMM float64) (string, error)
}

// SimModeler is a stand-in Modeler for development and tests. It creates
// nothing; it logs the request and returns the confirmation the real
// add-in would produce.
type SimModeler struct{}

// CreateCuboid implements Modeler.
func (SimModeler) CreateCuboid(_ context.Context, edgeMM float64) (string, error) {
	slog.Info("simulated cuboid created", "edge_mm", edgeMM)
	return fmt.Sprintf("%gmm edge cube created", edgeMM), nil
}
