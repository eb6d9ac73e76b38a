package resolve

import "fmt"

// ErrorKind classifies resolution failures.
type ErrorKind string

const (
	// KindTeamNotFound means the name matched nothing in the registry or
	// the site search.
	KindTeamNotFound ErrorKind = "TEAM_NOT_FOUND"
	// KindInvalidURL means a user-supplied URL is not a squad page on the
	// expected site.
	KindInvalidURL ErrorKind = "INVALID_URL"
)

// ResolutionError describes a failure to map user input to a squad page.
type ResolutionError struct {
	Kind  ErrorKind
	Input string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.Input)
}

// Is matches resolution errors by kind.
func (e *ResolutionError) Is(target error) bool {
	t, ok := target.(*ResolutionError)
	return ok && e.Kind == t.Kind
}
