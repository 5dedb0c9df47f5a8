package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"89991234567", "+79991234567"},
		{"79991234567", "+79991234567"},
		{"+79991234567", "+79991234567"},
		{"+7 (999) 123-45-67", "+79991234567"},
		{"9991234567", "+79991234567"},
		{"123", "123"},
		{"abc", "abc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatPhone(tt.input), tt.input)
	}
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+79991234567"))
	assert.True(t, ValidatePhone("+7 (999) 123-45-67"))
	assert.False(t, ValidatePhone("89991234567"))
	assert.False(t, ValidatePhone("+7999123456"))
	assert.False(t, ValidatePhone("+799912345678"))
	assert.False(t, ValidatePhone(""))
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin("ivan_petrov"))
	assert.True(t, ValidateLogin("abc"))
	assert.True(t, ValidateLogin("User123"))
	assert.False(t, ValidateLogin("ab"))
	assert.False(t, ValidateLogin("very_long_login_over_limit"))
	assert.False(t, ValidateLogin("иван"))
	assert.False(t, ValidateLogin("ivan petrov"))
	assert.False(t, ValidateLogin("ivan-petrov"))
}

func TestValidateFullName(t *testing.T) {
	assert.True(t, ValidateFullName("Иван Петров"))
	assert.True(t, ValidateFullName("Анна-Мария"))
	assert.True(t, ValidateFullName("John Smith"))
	assert.True(t, ValidateFullName("Ян"))
	assert.False(t, ValidateFullName("И"))
	assert.False(t, ValidateFullName("Иван123"))
	assert.False(t, ValidateFullName(""))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("secret1"))
	assert.True(t, ValidatePassword("123456"))
	assert.False(t, ValidatePassword("12345"))
	assert.False(t, ValidatePassword(""))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("a.b@mail.ru"))
	assert.False(t, ValidateEmail("user@example"))
	assert.False(t, ValidateEmail("user example.com"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestValidateScore(t *testing.T) {
	assert.True(t, ValidateScore("2-1", 20))
	assert.True(t, ValidateScore("0-0", 20))
	assert.True(t, ValidateScore("20-20", 20))
	assert.False(t, ValidateScore("21-0", 20))
	assert.False(t, ValidateScore("2:1", 20))
	assert.False(t, ValidateScore("2-", 20))
	assert.False(t, ValidateScore("-1-2", 20))
	assert.False(t, ValidateScore("a-b", 20))
}
