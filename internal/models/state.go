package models

// UserState — состояние многошагового диалога (регистрация, вход,
// ввод ставки, админские формы). Хранится в Redis как JSON и никогда
// не попадает в основную базу до завершения формы.
type UserState struct {
	UserID int64                  `json:"user_id"`
	Step   string                 `json:"step"`
	Data   map[string]interface{} `json:"data"`
}

func (s *UserState) GetString(key string) string {
	if s == nil || s.Data == nil {
		return ""
	}
	if str, ok := s.Data[key].(string); ok {
		return str
	}
	return ""
}

func (s *UserState) GetInt64(key string) int64 {
	if s == nil || s.Data == nil {
		return 0
	}
	switch v := s.Data[key].(type) {
	case int64:
		return v
	case float64:
		// JSON числа приходят как float64
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

func (s *UserState) Set(key string, value interface{}) {
	if s.Data == nil {
		s.Data = make(map[string]interface{})
	}
	s.Data[key] = value
}
