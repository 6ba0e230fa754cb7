package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	Institution InstitutionConfig
	Theme       ThemeConfig
	Ledger      LedgerConfig
	Petitions   PetitionConfig
	DB          DBConfig
	Payment     PaymentConfig
	Chat        ChatConfig
	Features    FeatureConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona para fechas de certificados y radicados
}

// Location zona horaria configurada; America/Bogota si no se puede cargar.
func (c AppConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.FixedZone("COT", -5*60*60)
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// InstitutionConfig datos que aparecen en certificados y en la marca.
type InstitutionConfig struct {
	Name      string
	Motto     string
	NIT       string // base de 9 dígitos o NIT completo
	City      string
	Treasurer string
	VerifyURL string // destino del QR; vacío = sin QR
}

// ThemeConfig colores y logo de la institución.
type ThemeConfig struct {
	Primary    string
	Accent     string
	Background string
	LogoPath   string // logo para el PDF (opcional)
	LogoURL    string // logo para el frontend (opcional)
}

// LedgerConfig fuente de cartera.
type LedgerConfig struct {
	Driver   string // excel | postgres
	XLSXPath string
	Sheet    string
}

// PetitionConfig destino de las PQRS.
type PetitionConfig struct {
	Driver   string // excel | postgres
	XLSXPath string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	ForceIPv4   bool // Docker suele no tener IPv6 y Supabase puede resolver solo AAAA
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// PaymentConfig pasarela de pago simulada.
type PaymentConfig struct {
	GatewayURL string
	RefPrefix  string
}

// ChatConfig asistente virtual.
type ChatConfig struct {
	Provider       string // openai | anthropic | gemini
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	AnthropicKey   string
	AnthropicModel string
	GeminiKey      string
	GeminiModel    string
	GeminiBaseURL  string
	SystemPrompt   string // vacío = prompt por defecto
	TimeoutSeconds int
	MaxHistory     int
	SessionStore   string // memory | redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTLMin  int
	SessionSecret  string
	SessionIssuer  string
}

// Timeout tiempo máximo de una llamada al proveedor.
func (c ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionTTL inactividad máxima de una sesión.
func (c ChatConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

// FeatureConfig módulos habilitados. Reemplaza las variantes de la aplicación.
type FeatureConfig struct {
	Cartera      bool
	Certificados bool
	PQRS         bool
	Chat         bool
}

// Map nombre del módulo → habilitado.
func (f FeatureConfig) Map() map[string]bool {
	return map[string]bool{
		FeatureCartera:      f.Cartera,
		FeatureCertificados: f.Certificados,
		FeaturePQRS:         f.PQRS,
		FeatureChat:         f.Chat,
	}
}

// Nombres de módulo.
const (
	FeatureCartera      = "cartera"
	FeatureCertificados = "certificados"
	FeaturePQRS         = "pqrs"
	FeatureChat         = "chat"
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "colegio-cartera"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Bogota"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Institution: InstitutionConfig{
			Name:      getString(v, "INSTITUTION_NAME", "Colegio Abogados Col"),
			Motto:     getString(v, "INSTITUTION_MOTTO", "Formando líderes con valores"),
			NIT:       getString(v, "INSTITUTION_NIT", "900123456"),
			City:      getString(v, "INSTITUTION_CITY", "Bogotá D.C."),
			Treasurer: getString(v, "TREASURER_NAME", "Lic. Carolina Suárez"),
			VerifyURL: getString(v, "VERIFY_URL", ""),
		},
		Theme: ThemeConfig{
			Primary:    getString(v, "THEME_PRIMARY", "#1B168C"),
			Accent:     getString(v, "THEME_ACCENT", "#F43B63"),
			Background: getString(v, "THEME_BACKGROUND", "#FFFFFF"),
			LogoPath:   getString(v, "LOGO_PATH", ""),
			LogoURL:    getString(v, "LOGO_URL", ""),
		},
		Ledger: LedgerConfig{
			Driver:   strings.ToLower(getString(v, "LEDGER_DRIVER", "excel")),
			XLSXPath: getString(v, "LEDGER_XLSX_PATH", "base_cartera_colegio.xlsx"),
			Sheet:    getString(v, "LEDGER_SHEET", "CARTERA_ESTUDIANTES"),
		},
		Petitions: PetitionConfig{
			Driver:   strings.ToLower(getString(v, "PETITION_DRIVER", "excel")),
			XLSXPath: getString(v, "PETITION_XLSX_PATH", "logs_pqrs.xlsx"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "colegio"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 5),
			ForceIPv4:   getBool(v, "DB_FORCE_IPV4", true),
		},
		Payment: PaymentConfig{
			GatewayURL: getString(v, "PAYMENT_GATEWAY_URL", "https://pse-demo.abogadoscol.edu.co/pay.html"),
			RefPrefix:  getString(v, "PAYMENT_REF_PREFIX", "COL"),
		},
		Chat: ChatConfig{
			Provider:       strings.ToLower(getString(v, "CHAT_PROVIDER", "openai")),
			OpenAIKey:      getString(v, "OPENAI_API_KEY", ""),
			OpenAIModel:    getString(v, "OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:  getString(v, "OPENAI_BASE_URL", ""),
			AnthropicKey:   getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel: getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			GeminiKey:      getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:    getString(v, "GEMINI_MODEL", "gemini-2.0-flash"),
			GeminiBaseURL:  getString(v, "GEMINI_BASE_URL", ""),
			SystemPrompt:   getString(v, "CHAT_SYSTEM_PROMPT", ""),
			TimeoutSeconds: getInt(v, "CHAT_TIMEOUT_SECONDS", 30),
			MaxHistory:     getInt(v, "CHAT_MAX_HISTORY", 40),
			SessionStore:   strings.ToLower(getString(v, "CHAT_SESSION_STORE", "memory")),
			RedisAddr:      getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword:  getString(v, "REDIS_PASSWORD", ""),
			RedisDB:        getInt(v, "REDIS_DB", 0),
			SessionTTLMin:  getInt(v, "CHAT_SESSION_TTL_MINUTES", 120),
			SessionSecret:  getString(v, "CHAT_SESSION_SECRET", ""),
			SessionIssuer:  getString(v, "CHAT_SESSION_ISSUER", "colegio-cartera"),
		},
		Features: FeatureConfig{
			Cartera:      getBool(v, "FEATURE_CARTERA", true),
			Certificados: getBool(v, "FEATURE_CERTIFICADOS", true),
			PQRS:         getBool(v, "FEATURE_PQRS", true),
			Chat:         getBool(v, "FEATURE_CHAT", true),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Driver {
	case "excel", "postgres":
	default:
		return fmt.Errorf("config: LEDGER_DRIVER inválido %q (excel|postgres)", c.Ledger.Driver)
	}
	switch c.Petitions.Driver {
	case "excel", "postgres":
	default:
		return fmt.Errorf("config: PETITION_DRIVER inválido %q (excel|postgres)", c.Petitions.Driver)
	}
	switch c.Chat.Provider {
	case "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("config: CHAT_PROVIDER inválido %q (openai|anthropic|gemini)", c.Chat.Provider)
	}
	switch c.Chat.SessionStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: CHAT_SESSION_STORE inválido %q (memory|redis)", c.Chat.SessionStore)
	}
	if c.Chat.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: CHAT_TIMEOUT_SECONDS debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		switch val := v.Get(key).(type) {
		case bool:
			return val
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(val))
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
