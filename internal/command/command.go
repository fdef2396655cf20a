// Package command defines the immutable commands produced by the parser and
// their execution against a model.
package command

import (
	"fmt"

	"github.com/fitbook/fitbook/internal/model"
)

// Result is what a command reports back to the presentation layer.
type Result struct {
	Message string `json:"message"`

	// ShowHelp asks the presentation layer to display help.
	ShowHelp bool `json:"show_help,omitempty"`

	// Exit asks the presentation layer to stop. The core never exits the process.
	Exit bool `json:"exit,omitempty"`

	// SuggestedInput is text the presentation layer may place in its input box.
	SuggestedInput string `json:"suggested_input,omitempty"`
}

// Command is executed against the model it is given. A command that returns
// an error leaves the client list unchanged.
type Command interface {
	Execute(m *model.Model) (Result, error)
}

func resultf(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}
