package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	NotifyAlways  = "always"
	NotifyOnError = "error"
	NotifyNever   = "never"
)

type Config struct {
	ZipURL          string        `envconfig:"ZIP_URL"`
	DumpFile        string        `envconfig:"DUMP_FILE"`
	WorkDir         string        `envconfig:"WORK_DIR" default:"."`
	RetentionDays   int           `envconfig:"RETENTION_DAYS" default:"7"`
	RotateOnFailure bool          `envconfig:"ROTATE_ON_FAILURE" default:"true"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	DryRun          bool          `envconfig:"DRY_RUN" default:"false"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"./logfile.log"`

	SMBHost     string        `envconfig:"SMB_HOST"`
	SMBPort     int           `envconfig:"SMB_PORT" default:"445"`
	SMBHostname string        `envconfig:"SMB_HOSTNAME"`
	SMBUser     string        `envconfig:"SMB_USER"`
	SMBPassword string        `envconfig:"SMB_PASSWORD"`
	SMBShare    string        `envconfig:"SMB_SHARE"`
	SMBPath     string        `envconfig:"SMB_PATH"`
	SMBTimeout  time.Duration `envconfig:"SMB_TIMEOUT" default:"10s"`

	NotifyMode        string   `envconfig:"NOTIFY_MODE" default:"always"`
	SendEmail         bool     `envconfig:"SEND_EMAIL" default:"true"`
	EmailHost         string   `envconfig:"EMAIL_HOST"`
	EmailPort         int      `envconfig:"EMAIL_PORT" default:"465"`
	EmailFrom         string   `envconfig:"EMAIL_FROM"`
	EmailPassword     string   `envconfig:"EMAIL_PASSWORD"`
	EmailTo           []string `envconfig:"EMAIL_TO"`
	EmailTitle        string   `envconfig:"EMAIL_TITLE" default:"Отчет системы архивации"`
	IncludeLog        bool     `envconfig:"INCLUDE_LOG" default:"true"`
	MattermostWebhook string   `envconfig:"MATTERMOST_WEBHOOK"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфигурацию из окружения: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.ZipURL != "" && !strings.Contains(c.ZipURL, ".zip") {
		c.ZipURL += ".zip"
	}
	if c.DumpFile != "" && !strings.Contains(c.DumpFile, ".sql") {
		c.DumpFile += ".sql"
	}
	if c.SMBPath != "" && !strings.HasSuffix(c.SMBPath, "/") {
		c.SMBPath += "/"
	}
}

// Validate возвращает список ошибок по пустым обязательным полям и список
// предупреждений по полям, замененным значениями по умолчанию.
func (c *Config) Validate() ([]error, []string) {
	var errs []error
	var warns []string

	type field struct {
		value string
		name  string
	}

	required := []field{
		{c.ZipURL, "ZIP_URL"},
		{c.DumpFile, "DUMP_FILE"},
	}
	if !c.DryRun {
		required = append(required,
			field{c.SMBHost, "SMB_HOST"},
			field{c.SMBUser, "SMB_USER"},
			field{c.SMBPassword, "SMB_PASSWORD"},
			field{c.SMBShare, "SMB_SHARE"},
			field{c.SMBPath, "SMB_PATH"},
		)
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("поле %s не может быть пустым", f.name))
		}
	}

	if c.RetentionDays < 0 {
		warns = append(warns, "RETENTION_DAYS не может быть отрицательным, применено значение по умолчанию 7")
		c.RetentionDays = 7
	}

	switch c.NotifyMode {
	case NotifyAlways, NotifyOnError, NotifyNever:
	default:
		warns = append(warns, fmt.Sprintf("значение NOTIFY_MODE %q не поддерживается, применено значение по умолчанию %q", c.NotifyMode, NotifyAlways))
		c.NotifyMode = NotifyAlways
	}

	return errs, warns
}
