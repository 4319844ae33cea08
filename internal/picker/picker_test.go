package picker

import (
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(chosen ...string) AskFunc {
	return func(p survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		ms, ok := p.(*survey.MultiSelect)
		if !ok {
			return errors.New("expected a multi-select")
		}
		if len(ms.Options) == 0 {
			return errors.New("no options")
		}
		*(response.(*[]string)) = chosen
		return nil
	}
}

func TestPickKeepsCatalogOrder(t *testing.T) {
	ids := []string{"gemini-2.5-pro", "claude-4-opus", "deepseek-r1"}
	got, err := Pick(ids, answer("deepseek-r1", "gemini-2.5-pro"))
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-2.5-pro", "deepseek-r1"}, got)
}

func TestPickPropagatesError(t *testing.T) {
	_, err := Pick([]string{"a"}, func(survey.Prompt, interface{}, ...survey.AskOpt) error {
		return errors.New("interrupt")
	})
	assert.EqualError(t, err, "interrupt")
}

func TestPickEmpty(t *testing.T) {
	_, err := Pick(nil, answer())
	assert.Error(t, err)
}
