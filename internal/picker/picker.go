// Package picker lets the user choose which catalog models to probe from an
// interactive checklist.
package picker

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
)

// AskFunc matches survey.AskOne so tests can answer without a terminal.
type AskFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Pick shows ids as a multi-select and returns the chosen ones in the
// order they appear in ids.
func Pick(ids []string, ask AskFunc) ([]string, error) {
	if len(ids) == 0 {
		return nil, errors.New("no models to pick from")
	}
	if ask == nil {
		ask = survey.AskOne
	}

	var chosen []string
	prompt := &survey.MultiSelect{
		Message:  "Models to probe:",
		Options:  ids,
		PageSize: 15,
	}
	if err := ask(prompt, &chosen, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, err
	}

	picked := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		picked[c] = true
	}
	out := make([]string, 0, len(chosen))
	for _, id := range ids {
		if picked[id] {
			out = append(out, id)
		}
	}
	return out, nil
}
