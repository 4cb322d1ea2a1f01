package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Render           Render           `mapstructure:",squash"`
	GoogleAds        GoogleAds        `mapstructure:",squash"`
	Meta             Meta             `mapstructure:",squash"`
	TokenLifecycle   TokenLifecycle   `mapstructure:",squash"`
	BudgetPolicy     BudgetPolicy     `mapstructure:",squash"`
	BudgetReviewSync BudgetReviewSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	AutoMigrate bool `mapstructure:"database_auto_migrate"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type GoogleAds struct {
	TokenURL          string        `mapstructure:"google_ads_token_url"`
	BaseURL           string        `mapstructure:"google_ads_base_url"`
	Version           string        `mapstructure:"google_ads_version"`
	URL               string        `mapstructure:"-"`
	RequestsPerSecond float64       `mapstructure:"google_ads_requests_per_second"`
	Burst             int           `mapstructure:"google_ads_burst"`
	RequestTimeout    time.Duration `mapstructure:"google_ads_request_timeout"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	Version        string        `mapstructure:"meta_version"`
	URL            string        `mapstructure:"-"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
}

// TokenLifecycle define a política de renovação dos tokens de acesso
type TokenLifecycle struct {
	RefreshThreshold time.Duration `mapstructure:"token_refresh_threshold"`
	MaxAttempts      int           `mapstructure:"token_refresh_max_attempts"`
	RetryDelay       time.Duration `mapstructure:"token_refresh_retry_delay"`
	RefreshTimeout   time.Duration `mapstructure:"token_refresh_timeout"`
	CheckInterval    time.Duration `mapstructure:"token_check_interval"`
}

// BudgetPolicy define os limites usados pela calculadora de orçamento
type BudgetPolicy struct {
	AdjustmentThreshold float64 `mapstructure:"budget_adjustment_threshold"`
}

type BudgetReviewSync struct {
	CronSchedule        string        `mapstructure:"budget_review_sync_cron"`
	Enabled             bool          `mapstructure:"budget_review_sync_enabled"`
	MaxConcurrentJobs   int           `mapstructure:"budget_review_sync_max_concurrent_jobs"`
	RequestDelaySeconds int           `mapstructure:"budget_review_sync_request_delay_seconds"`
	UnitTimeout         time.Duration `mapstructure:"budget_review_sync_unit_timeout"`
	Platforms           []string      `mapstructure:"budget_review_sync_platforms"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budget_review?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("GOOGLE_ADS_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_REQUESTS_PER_SECOND", 5) // API com cota por token de desenvolvedor
	viper.SetDefault("GOOGLE_ADS_BURST", 2)
	viper.SetDefault("GOOGLE_ADS_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")

	// Renova o token quando faltam menos de 15 minutos para expirar
	viper.SetDefault("TOKEN_REFRESH_THRESHOLD", "15m")
	viper.SetDefault("TOKEN_REFRESH_MAX_ATTEMPTS", 3)
	viper.SetDefault("TOKEN_REFRESH_RETRY_DELAY", "5s")
	viper.SetDefault("TOKEN_REFRESH_TIMEOUT", "2m")
	// Intervalo mínimo entre gravações de last_checked
	viper.SetDefault("TOKEN_CHECK_INTERVAL", "1m")

	// Diferença mínima (em moeda) para recomendar ajuste de orçamento
	viper.SetDefault("BUDGET_ADJUSTMENT_THRESHOLD", 5.0)

	viper.SetDefault("BUDGET_REVIEW_SYNC_CRON", "0 7 * * *")        // Todos os dias às 7h da manhã
	viper.SetDefault("BUDGET_REVIEW_SYNC_ENABLED", false)           // Habilitar revisão diária de orçamentos
	viper.SetDefault("BUDGET_REVIEW_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 revisões concorrentes
	viper.SetDefault("BUDGET_REVIEW_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre revisões de um worker
	viper.SetDefault("BUDGET_REVIEW_SYNC_UNIT_TIMEOUT", "2m")       // tempo máximo de uma revisão
	viper.SetDefault("BUDGET_REVIEW_SYNC_PLATFORMS", "google,meta") // plataformas revisadas pelo lote

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize deriva os campos calculados e valida as políticas
func (c *Config) finalize() error {
	c.GoogleAds.URL = fmt.Sprintf("%s/%s", c.GoogleAds.BaseURL, c.GoogleAds.Version)
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	if c.TokenLifecycle.MaxAttempts < 1 {
		return fmt.Errorf("config: TOKEN_REFRESH_MAX_ATTEMPTS deve ser maior que zero")
	}
	if c.TokenLifecycle.RefreshThreshold < 0 || c.TokenLifecycle.RetryDelay < 0 ||
		c.TokenLifecycle.RefreshTimeout < 0 || c.TokenLifecycle.CheckInterval < 0 {
		return fmt.Errorf("config: durações da política de token não podem ser negativas")
	}
	if c.BudgetPolicy.AdjustmentThreshold < 0 {
		return fmt.Errorf("config: BUDGET_ADJUSTMENT_THRESHOLD não pode ser negativo")
	}
	if c.BudgetReviewSync.MaxConcurrentJobs < 1 {
		c.BudgetReviewSync.MaxConcurrentJobs = 1
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
