package command

import (
	"github.com/fitbook/fitbook/internal/model"
)

// MessageClearPrompt is returned by an unconfirmed clear.
const MessageClearPrompt = "This will delete every client. Run \"clear /confirm\" to proceed."

// Clear deletes every client when Confirmed is set.
type Clear struct {
	Confirmed bool
}

func (c Clear) Execute(m *model.Model) (Result, error) {
	if !c.Confirmed {
		return Result{Message: MessageClearPrompt}, nil
	}
	m.Clear()
	return Result{Message: "Client book has been cleared!"}, nil
}

// Help asks the presentation layer to show help.
type Help struct{}

func (Help) Execute(*model.Model) (Result, error) {
	return Result{Message: "Opened help window.", ShowHelp: true}, nil
}

// Exit asks the presentation layer to stop.
type Exit struct{}

func (Exit) Execute(*model.Model) (Result, error) {
	return Result{Message: "Exiting fitbook as requested ...", Exit: true}, nil
}
