package depgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is matched by CycleError through errors.Is.
var ErrCycle = errors.New("not an acyclic graph")

// CycleError is returned by Sort when a pass places no node while nodes
// remain.
type CycleError struct {
	// Remaining lists the nodes that could not be placed, in graph order.
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("not an acyclic graph: cycle among %s", strings.Join(e.Remaining, ", "))
}

// Is reports whether target is ErrCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}
