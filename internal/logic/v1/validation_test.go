package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
)

func TestValidate(t *testing.T) {
	var nilIdea *domain.NewIdeaRequest

	tests := []struct {
		name   string
		model  any
		fields []string
	}{
		{name: "nil", model: nil, fields: []string{"model"}},
		{name: "typed nil", model: nilIdea, fields: []string{"model"}},
		{name: "valid session", model: &domain.NewSessionRequest{Name: "x"}},
		{name: "session without name", model: &domain.NewSessionRequest{}, fields: []string{"name"}},
		{name: "valid idea", model: &domain.NewIdeaRequest{SessionID: 1, Name: "n", Description: "d"}},
		{name: "empty idea", model: &domain.NewIdeaRequest{}, fields: []string{"name", "description"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.model)

			assert.Equal(t, len(tt.fields) == 0, errs.Valid())
			got := make([]string, 0, len(errs))
			for _, e := range errs {
				got = append(got, e.Field)
				assert.NotEmpty(t, e.Message)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ok", OutcomeOK.String())
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "outcome(42)", Outcome(42).String())
}
