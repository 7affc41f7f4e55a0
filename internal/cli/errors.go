package cli

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned by requireSelection when no project is selected.
// Handlers turn it into guidance instead of passing it to the loop.
var ErrNoSelection = errors.New("no project selected")

// ValidationError reports input that could not be read as the requested type.
type ValidationError struct {
	Input string
	Kind  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is not a valid %s", e.Input, e.Kind)
}
