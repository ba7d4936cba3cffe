package internal

import (
	"fmt"
	"liftotron/errors"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

const DefaultTimezone = "Europe/Berlin"

type Config struct {
	BotToken           string        `env:"BOT_TOKEN,required=true" validate:"required"`
	ChatID             string        `env:"CHAT_ID,required=true" validate:"required"`
	AllowedChatIDs     string        `env:"ALLOWED_CHAT_IDS,required=true" validate:"required"`
	AllowedUserIDs     string        `env:"ALLOWED_USER_IDS"`
	Timezone           string        `env:"TIMEZONE,default=Europe/Berlin"`
	LogLevel           string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH,default=data/attendance" validate:"required"`
	MetricsAddr        string        `env:"METRICS_ADDR"`
	JobTimeout         time.Duration `env:"JOB_TIMEOUT,default=30s" validate:"gt=0"`
	HeartbeatInterval  time.Duration `env:"HEARTBEAT_INTERVAL,default=5m" validate:"gt=0"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=2s" validate:"gt=0"`
	SendRatePerSecond  float64       `env:"SEND_RATE_PER_SECOND,default=1" validate:"gt=0"`
	SendBurst          int           `env:"SEND_BURST,default=5" validate:"gte=1"`
	SyncAdministrators bool          `env:"SYNC_ADMINISTRATORS,default=false"`
	GreetingSchedule   string        `env:"GREETING_SCHEDULE,default=0 5 * * *"`
	ResetSchedule      string        `env:"RESET_SCHEDULE,default=0 0 * * *"`
	CheckSchedule      string        `env:"CHECK_SCHEDULE,default=0 9 * * *"`
	PoemSchedule       string        `env:"POEM_SCHEDULE,default=0 22 * * *"`
	WeeklySchedule     string        `env:"WEEKLY_SCHEDULE,default=0 12 * * 0"`
}

// Settings holds the parsed, ready-to-use form of Config.
type Settings struct {
	Config
	GroupChatID   int64
	AllowedChats  map[int64]struct{}
	AllowedUsers  map[int64]struct{} // nil means every user of an allowed chat
	StaticUserIDs []int64
	Location      *time.Location
}

// LoadConfig decodes and validates the configuration from an environment set.
// Every failure wraps errors.ErrConfig.
func LoadConfig(es env.EnvSet) (Settings, error) {
	var config Config
	if err := env.Unmarshal(es, &config); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", errors.ErrConfig, err)
	}
	trim(&config)
	if err := validator.New().Struct(config); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", errors.ErrConfig, err)
	}
	return config.parse()
}

func trim(c *Config) {
	c.BotToken = strings.TrimSpace(c.BotToken)
	c.ChatID = strings.TrimSpace(c.ChatID)
	c.AllowedChatIDs = strings.TrimSpace(c.AllowedChatIDs)
	c.AllowedUserIDs = strings.TrimSpace(c.AllowedUserIDs)
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
}

func (c Config) parse() (Settings, error) {
	chatID, err := parseInt(c.ChatID, "CHAT_ID")
	if err != nil {
		return Settings{}, err
	}
	allowedChats, err := ParseIDSet(c.AllowedChatIDs, "ALLOWED_CHAT_IDS")
	if err != nil {
		return Settings{}, err
	}
	if len(allowedChats) == 0 {
		return Settings{}, fmt.Errorf("%w: ALLOWED_CHAT_IDS must include at least one chat id", errors.ErrConfig)
	}

	var allowedUsers map[int64]struct{}
	var staticIDs []int64
	if c.AllowedUserIDs != "" {
		allowedUsers, err = ParseIDSet(c.AllowedUserIDs, "ALLOWED_USER_IDS")
		if err != nil {
			return Settings{}, err
		}
		for id := range allowedUsers {
			staticIDs = append(staticIDs, id)
		}
	}

	if err = c.validateSchedules(); err != nil {
		return Settings{}, err
	}

	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: TIMEZONE is invalid: %q", errors.ErrConfig, c.Timezone)
	}

	return Settings{
		Config:        c,
		GroupChatID:   chatID,
		AllowedChats:  allowedChats,
		AllowedUsers:  allowedUsers,
		StaticUserIDs: staticIDs,
		Location:      location,
	}, nil
}

// validateSchedules parses every non-empty cron spec, an empty one disables its job.
func (c Config) validateSchedules() error {
	schedules := []struct{ field, spec string }{
		{"GREETING_SCHEDULE", c.GreetingSchedule},
		{"RESET_SCHEDULE", c.ResetSchedule},
		{"CHECK_SCHEDULE", c.CheckSchedule},
		{"POEM_SCHEDULE", c.PoemSchedule},
		{"WEEKLY_SCHEDULE", c.WeeklySchedule},
	}
	for _, schedule := range schedules {
		if schedule.spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(schedule.spec); err != nil {
			return fmt.Errorf("%w: %s is invalid: %v", errors.ErrConfig, schedule.field, err)
		}
	}
	return nil
}

// ParseIDSet parses a comma separated list of integers, skipping blank items.
func ParseIDSet(value, field string) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{})
	for _, raw := range strings.Split(value, ",") {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		id, err := parseInt(item, field)
		if err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

func parseInt(value, field string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got: %q", errors.ErrConfig, field, value)
	}
	return id, nil
}
