package annotator

import (
	"errors"
	"fmt"
)

var (
	// ErrArgumentNotFound matches every *ArgumentNotFoundError.
	ErrArgumentNotFound = errors.New("argument not found")

	// ErrParserUnavailable is returned for argument directives in strict
	// mode when no structured parser is configured.
	ErrParserUnavailable = errors.New("structured docstring parser unavailable")
)

// ArgumentNotFoundError reports an argument directive naming an argument
// the documentation does not list.
type ArgumentNotFoundError struct {
	Name string
}

func (e *ArgumentNotFoundError) Error() string {
	return fmt.Sprintf("Please specify an existing argument, you specified %s.", e.Name)
}

func (e *ArgumentNotFoundError) Is(target error) bool {
	return target == ErrArgumentNotFound
}
