// Package prompt asks the user for missing values. Commands depend on the
// Prompter interface so they can run unattended with NonInteractive.
package prompt

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
)

// ErrNoPrompt is returned when a value is needed but prompting is disabled.
var ErrNoPrompt = errors.New("interactive prompt not available")

// Prompter asks the user for input.
type Prompter interface {
	// Input asks for a line of text. validate may be nil.
	Input(message, def string, validate func(string) error) (string, error)
	// Confirm asks a yes/no question.
	Confirm(message string, def bool) (bool, error)
}

// Survey prompts on the terminal.
type Survey struct{}

func (Survey) Input(message, def string, validate func(string) error) (string, error) {
	var result string
	p := &survey.Input{
		Message: message,
		Default: def,
	}

	opts := []survey.AskOpt{}
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}

	if err := survey.AskOne(p, &result, opts...); err != nil {
		return "", err
	}
	return result, nil
}

func (Survey) Confirm(message string, def bool) (bool, error) {
	var result bool
	p := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(p, &result); err != nil {
		return false, err
	}
	return result, nil
}

// NonInteractive refuses every prompt.
type NonInteractive struct{}

func (NonInteractive) Input(string, string, func(string) error) (string, error) {
	return "", ErrNoPrompt
}

func (NonInteractive) Confirm(string, bool) (bool, error) {
	return false, ErrNoPrompt
}

// Scripted answers prompts from fixed values, in order. It is meant for
// tests; running out of answers returns ErrNoPrompt.
type Scripted struct {
	Inputs   []string
	Confirms []bool
}

func (s *Scripted) Input(_ string, _ string, validate func(string) error) (string, error) {
	if len(s.Inputs) == 0 {
		return "", ErrNoPrompt
	}
	v := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (s *Scripted) Confirm(string, bool) (bool, error) {
	if len(s.Confirms) == 0 {
		return false, ErrNoPrompt
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

// New returns Survey when stdin is a terminal and prompts are allowed,
// NonInteractive otherwise.
func New(disabled bool) Prompter {
	if disabled || !term.IsTerminal(int(os.Stdin.Fd())) {
		return NonInteractive{}
	}
	return Survey{}
}
