package bot

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	phonePattern    = regexp.MustCompile(`^\+7\d{10}$`)
	scorePattern    = regexp.MustCompile(`^\d+-\d+$`)
	loginPattern    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	fullNamePattern = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s\-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// FormatPhone приводит номер к виду +7XXXXXXXXXX: 8XXXXXXXXXX и
// 10-значные номера без кода страны считаются российскими.
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 11 && d[0] == '8':
		return "+7" + d[1:]
	case len(d) == 11 && d[0] == '7':
		return "+" + d
	case len(d) == 10:
		return "+7" + d
	default:
		return phone
	}
}

// ValidatePhone принимает только формат +7XXXXXXXXXX.
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phonePattern.MatchString(cleaned)
}

// ValidateLogin: латиница, цифры, подчеркивание, 3-20 символов.
func ValidateLogin(login string) bool {
	if len(login) < 3 || len(login) > 20 {
		return false
	}
	return loginPattern.MatchString(login)
}

// ValidateFullName: буквы (включая кириллицу), пробелы и дефисы,
// 2-100 символов.
func ValidateFullName(fullName string) bool {
	if len([]rune(fullName)) < 2 || len([]rune(fullName)) > 100 {
		return false
	}
	return fullNamePattern.MatchString(fullName)
}

// ValidatePassword: минимум 6 символов.
func ValidatePassword(password string) bool {
	return len(password) >= 6
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateScore принимает счет X-Y, обе части в диапазоне [0, max].
func ValidateScore(score string, max int) bool {
	if !scorePattern.MatchString(score) {
		return false
	}
	parts := strings.SplitN(score, "-", 2)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > max {
			return false
		}
	}
	return true
}
