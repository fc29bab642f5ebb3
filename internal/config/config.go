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
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Data           Data           `mapstructure:",squash"`
	LLM            LLM            `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	MetricsRebuild MetricsRebuild `mapstructure:",squash"`
	Telemetry      Telemetry      `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
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
	Migrate  bool   `mapstructure:"database_migrate"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

// Data aponta para os diretórios de CSV usados pelos comandos de lote
type Data struct {
	RawDir       string `mapstructure:"raw_data_dir"`
	ProcessedDir string `mapstructure:"processed_data_dir"`
}

type LLM struct {
	Provider    string        `mapstructure:"llm_provider"`
	Timeout     time.Duration `mapstructure:"llm_timeout"`
	Temperature float64       `mapstructure:"llm_temperature"`
	MaxTokens   int           `mapstructure:"llm_max_tokens"`

	OllamaURL   string `mapstructure:"ollama_base_url"`
	OllamaModel string `mapstructure:"ollama_model"`

	OpenRouterURL      string `mapstructure:"openrouter_base_url"`
	OpenRouterAPIKey   string `mapstructure:"openrouter_api_key"`
	OpenRouterModel    string `mapstructure:"openrouter_model"`
	OpenRouterAppURL   string `mapstructure:"openrouter_app_url"`
	OpenRouterAppTitle string `mapstructure:"openrouter_app_title"`
}

// Model retorna o modelo configurado para o provedor ativo
func (l LLM) Model() string {
	if l.Provider == "openrouter" {
		return l.OpenRouterModel
	}
	return l.OllamaModel
}

type Redis struct {
	Addr         string        `mapstructure:"redis_addr"`
	Password     string        `mapstructure:"redis_password"`
	DB           int           `mapstructure:"redis_db"`
	CacheEnabled bool          `mapstructure:"narrative_cache_enabled"`
	CacheTTL     time.Duration `mapstructure:"narrative_cache_ttl"`
}

type MetricsRebuild struct {
	CronSchedule      string `mapstructure:"metrics_rebuild_cron"`
	MaxConcurrentJobs int    `mapstructure:"metrics_rebuild_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"metrics_rebuild_enabled"`
	RunOnStart        bool   `mapstructure:"metrics_rebuild_run_on_start"`
}

type Telemetry struct {
	Enabled   bool   `mapstructure:"telemetry_enabled"`
	Namespace string `mapstructure:"telemetry_namespace"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/saas_metrics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MIGRATE", true)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("RAW_DATA_DIR", "data/raw")
	viper.SetDefault("PROCESSED_DATA_DIR", "data/processed")

	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("LLM_TIMEOUT", "60s")
	viper.SetDefault("LLM_TEMPERATURE", 0.2)
	viper.SetDefault("LLM_MAX_TOKENS", 400)
	viper.SetDefault("OLLAMA_BASE_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3.1")
	viper.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	viper.SetDefault("OPENROUTER_API_KEY", "")
	viper.SetDefault("OPENROUTER_MODEL", "meta-llama/llama-3.1-8b-instruct")
	viper.SetDefault("OPENROUTER_APP_URL", "")
	viper.SetDefault("OPENROUTER_APP_TITLE", "SaaS Metrics")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("NARRATIVE_CACHE_ENABLED", false)
	viper.SetDefault("NARRATIVE_CACHE_TTL", "24h")

	// Recalcula as métricas derivadas todos os dias às 2h da manhã
	viper.SetDefault("METRICS_REBUILD_CRON", "0 2 * * *")
	viper.SetDefault("METRICS_REBUILD_MAX_CONCURRENT_JOBS", 4)
	viper.SetDefault("METRICS_REBUILD_ENABLED", false)
	viper.SetDefault("METRICS_REBUILD_RUN_ON_START", false)

	viper.SetDefault("TELEMETRY_ENABLED", true)
	viper.SetDefault("TELEMETRY_NAMESPACE", "saas_metrics")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Leitura opcional, o godotenv já exportou as variáveis
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
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
		logrus.Debug("Tentando carregar .env de: ", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
