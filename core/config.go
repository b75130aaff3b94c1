package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all application settings.
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string
		AppName  string
		WorkDir  string

		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Risk     RiskConfig
	}

	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	// RiskConfig carries the tunable risk-scoring settings. NewConfig always
	// fills in the documented defaults; the settings screen only overrides
	// individual values.
	RiskConfig struct {
		AttendanceWindowDays int
		Attendance           CutoffConfig // percentage; lower is worse
		Academic             CutoffConfig // percentage; lower is worse
		Financial            CutoffConfig // days overdue; higher is worse
	}

	CutoffConfig struct {
		Medium   float64
		High     float64
		Critical float64
	}
)

func (c ServerConfig) Address() string   { return net.JoinHostPort(c.Host, c.Port) }
func (c DatabaseConfig) Address() string { return net.JoinHostPort(c.Host, c.Port) }

// NewConfig loads the application Config from defaults, an optional
// config/.env.<env> file and `<ENV>_`-prefixed environment variables.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "EduWatch")
	conf.SetDefault("build", "develop")
	conf.SetDefault("defaultFromEmail", "alerts@localhost")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("server.host", "0.0.0.0")
	conf.SetDefault("server.port", "8000")
	conf.SetDefault("server.debugHost", "0.0.0.0:4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.name", "eduwatch")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.disableTLS", true)
	conf.SetDefault("risk.attendanceWindowDays", 30)
	conf.SetDefault("risk.attendance.medium", 80.0)
	conf.SetDefault("risk.attendance.high", 70.0)
	conf.SetDefault("risk.attendance.critical", 60.0)
	conf.SetDefault("risk.academic.medium", 70.0)
	conf.SetDefault("risk.academic.high", 60.0)
	conf.SetDefault("risk.academic.critical", 50.0)
	conf.SetDefault("risk.financial.medium", 30.0)
	conf.SetDefault("risk.financial.high", 60.0)
	conf.SetDefault("risk.financial.critical", 90.0)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:           conf.GetBool("debug"),
		TestMode:        env == "TEST",
		Env:             env,
		Build:           conf.GetString("build"),
		AppName:         conf.GetString("appName"),
		WorkDir:         wd,
		FrontendBaseURL: conf.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		SendgridApiKey: conf.GetString("sendgridApiKey"),
		RollbarToken:   conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Port:            conf.GetString("server.port"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetString("database.port"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
		Risk: RiskConfig{
			AttendanceWindowDays: conf.GetInt("risk.attendanceWindowDays"),
			Attendance: CutoffConfig{
				Medium:   conf.GetFloat64("risk.attendance.medium"),
				High:     conf.GetFloat64("risk.attendance.high"),
				Critical: conf.GetFloat64("risk.attendance.critical"),
			},
			Academic: CutoffConfig{
				Medium:   conf.GetFloat64("risk.academic.medium"),
				High:     conf.GetFloat64("risk.academic.high"),
				Critical: conf.GetFloat64("risk.academic.critical"),
			},
			Financial: CutoffConfig{
				Medium:   conf.GetFloat64("risk.financial.medium"),
				High:     conf.GetFloat64("risk.financial.high"),
				Critical: conf.GetFloat64("risk.financial.critical"),
			},
		},
	}
}
