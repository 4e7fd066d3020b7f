package definition

import "fmt"

// Error describes a problem with a definition file.
type Error struct {
	// Source is the file the definition was read from, if any.
	Source string

	// Path locates the offending element, e.g. "rules[2].condition".
	Path string

	// Message describes what is wrong.
	Message string

	// Suggestion optionally tells the user how to fix it.
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Suggestion)
	}
	return msg
}

func errAt(source, path, format string, args ...any) *Error {
	return &Error{
		Source:  source,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}
