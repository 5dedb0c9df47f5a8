package models

const (
	// Статусы матчей
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

const (
	// Шаги регистрации
	StepRegPhone    = "reg_phone"
	StepRegLogin    = "reg_login"
	StepRegPassword = "reg_password"
	StepRegEmail    = "reg_email"
	StepRegFullName = "reg_full_name"

	// Шаги входа
	StepLoginIdentifier = "login_identifier"
	StepLoginPassword   = "login_password"

	// Шаги ставки
	StepBetScore = "bet_score"

	// Шаги администратора
	StepAdminTournamentName        = "admin_tournament_name"
	StepAdminTournamentDescription = "admin_tournament_description"
	StepAdminTournamentRules       = "admin_tournament_rules"
	StepAdminMatchDate             = "admin_match_date"
	StepAdminMatchTime             = "admin_match_time"
	StepAdminMatchTeam1            = "admin_match_team1"
	StepAdminMatchTeam2            = "admin_match_team2"
	StepAdminMatchResult           = "admin_match_result"
	StepAdminFindUser              = "admin_find_user"
)

const (
	// DateLayout формат даты матча (дд.мм.гггг)
	DateLayout = "02.01.2006"

	// TimeLayout формат времени матча (чч:мм)
	TimeLayout = "15:04"

	// DefaultTimezone каноничный часовой пояс для проверки истечения матчей
	DefaultTimezone = "Europe/Moscow"

	// MaxScoreValue верхняя граница для каждой части счета "X-Y"
	MaxScoreValue = 20
)

const (
	// DefaultRedisTTL время жизни состояния пользователя в Redis
	DefaultRedisTTL = 24 * 60 * 60 // 24 часа в секундах

	// DefaultWatcherInterval интервал проверки истекших матчей
	DefaultWatcherInterval = 5 * 60 // 5 минут в секундах

	// WorkerQueueSize размер очереди воркера
	WorkerQueueSize = 1000

	// DefaultPaginationSize размер пагинации по умолчанию
	DefaultPaginationSize = 8

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах
)
