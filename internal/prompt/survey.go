// Package prompt asks the operator to pick from a list on the terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInterrupted is returned when the operator aborts the prompt with Ctrl-C.
var ErrInterrupted = errors.New("prompt interrupted")

// DefaultPageSize is how many options are shown at once.
const DefaultPageSize = 15

// Survey is a filterable terminal select prompt.
type Survey struct {
	PageSize int
	opts     []survey.AskOpt
}

// NewSurvey creates a prompt. opts are passed to every survey.AskOne call,
// e.g. survey.WithStdio to redirect the terminal.
func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{PageSize: DefaultPageSize, opts: opts}
}

// Choose shows options and returns the one the operator selects. Typing
// filters the list. defaultOption is preselected when it is one of options.
func (s *Survey) Choose(ctx context.Context, message string, options []string, defaultOption string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("Choose: no options to choose from")
	}

	var answer string
	if err := survey.AskOne(newSelect(message, options, defaultOption, s.PageSize), &answer, s.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrInterrupted
		}
		return "", fmt.Errorf("Choose: %w", err)
	}
	return answer, nil
}

func newSelect(message string, options []string, defaultOption string, pageSize int) *survey.Select {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	sel := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: pageSize,
	}
	// survey rejects a default that is not among the options.
	for _, o := range options {
		if o == defaultOption && defaultOption != "" {
			sel.Default = defaultOption
			break
		}
	}
	return sel
}
