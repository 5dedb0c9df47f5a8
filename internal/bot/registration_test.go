package bot

import (
	"errors"
	"fmt"
	"testing"

	"totobot/internal/database"
	"totobot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateFieldStep(t *testing.T) {
	tests := []struct {
		err  error
		step string
		ok   bool
	}{
		{database.ErrDuplicatePhone, models.StepRegPhone, true},
		{database.ErrDuplicateLogin, models.StepRegLogin, true},
		{database.ErrDuplicateEmail, models.StepRegEmail, true},
		{fmt.Errorf("register: %w", database.ErrDuplicateLogin), models.StepRegLogin, true},
		{database.ErrNotFound, "", false},
		{errors.New("db closed"), "", false},
		{nil, "", false},
	}

	for _, tt := range tests {
		step, ok := duplicateFieldStep(tt.err)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.step, step)
	}
}

func TestStepPrompt(t *testing.T) {
	// На шаг с занятым полем возвращаемся с внятной подсказкой
	assert.NotEmpty(t, stepPrompt(models.StepRegPhone))
	assert.NotEmpty(t, stepPrompt(models.StepRegLogin))
	assert.NotEmpty(t, stepPrompt(models.StepRegEmail))
	assert.Empty(t, stepPrompt(models.StepRegFullName))
}
