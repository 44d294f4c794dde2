package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port        int
		APIURL      string // Публичный адрес сервиса, используется в ссылках активации
		APIPrefix   string
		Development bool
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
		Migrate  bool
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // в часах
	}
	Security struct {
		BcryptCost int
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Telegram struct {
		Token    string
		AdminIDs []int64
	}
	Admin struct {
		Username string
		Email    string
		Password string
	}
	Log struct {
		Level string
	}
	PhoneRegion string
}

var defaults = map[string]any{
	"SERVER_PORT":    8080,
	"API_URL":        "http://localhost:8080",
	"API_PREFIX":     "/api/v1",
	"APP_ENV":        "production",
	"DB_HOST":        "localhost",
	"DB_PORT":        5432,
	"DB_USER":        "postgres",
	"DB_PASSWORD":    "postgres",
	"DB_NAME":        "fastcard",
	"DB_SSLMODE":     "disable",
	"DB_MIGRATE":     true,
	"SECRET_KEY":     "",
	"JWT_EXPIRES_IN": 48,
	"BCRYPT_COST":    10,
	"SMTP_HOST":      "smtp.gmail.com",
	"SMTP_PORT":      465,
	"SMTP_USER":      "",
	"SMTP_PASSWORD":  "",
	"SMTP_FROM":      "",
	"TELEGRAM_TOKEN": "",
	"ADMIN_ID":       "",
	"ADMIN_USERNAME": "",
	"ADMIN_EMAIL":    "",
	"ADMIN_PASSWORD": "",
	"PHONE_REGION":   "RU",
	"LOG_LEVEL":      "info",
}

// NewConfig создает новый экземпляр конфигурации.
// Значения берутся из окружения, затем из файла .env, затем из значений по умолчанию.
func NewConfig() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	return FromViper(NewViper())
}

// NewViper создает viper со значениями по умолчанию и чтением из окружения
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// FromViper собирает конфигурацию из готового экземпляра viper
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	port, err := intValue(v, "SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = port
	cfg.Server.APIURL = strings.TrimRight(v.GetString("API_URL"), "/")
	cfg.Server.APIPrefix = "/" + strings.Trim(v.GetString("API_PREFIX"), "/")
	cfg.Server.Development = v.GetString("APP_ENV") == "development"

	// Настройки базы данных
	cfg.DB.Host = v.GetString("DB_HOST")
	dbPort, err := intValue(v, "DB_PORT")
	if err != nil {
		return nil, err
	}
	cfg.DB.Port = dbPort
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")
	cfg.DB.SSLMode = v.GetString("DB_SSLMODE")
	cfg.DB.Migrate = v.GetBool("DB_MIGRATE")

	// Настройки JWT
	cfg.JWT.SecretKey = v.GetString("SECRET_KEY")
	if cfg.JWT.SecretKey == "" {
		if !cfg.Server.Development {
			return nil, errors.New("SECRET_KEY не задан")
		}
		cfg.JWT.SecretKey = "development-secret-key"
	}
	expiresIn, err := intValue(v, "JWT_EXPIRES_IN")
	if err != nil {
		return nil, err
	}
	if expiresIn <= 0 {
		return nil, fmt.Errorf("неверное время жизни JWT: %d", expiresIn)
	}
	cfg.JWT.ExpiresIn = expiresIn

	cost, err := intValue(v, "BCRYPT_COST")
	if err != nil {
		return nil, err
	}
	cfg.Security.BcryptCost = cost

	// Настройки SMTP
	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	smtpPort, err := intValue(v, "SMTP_PORT")
	if err != nil {
		return nil, err
	}
	cfg.SMTP.Port = smtpPort
	cfg.SMTP.Username = v.GetString("SMTP_USER")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	// Настройки Telegram
	cfg.Telegram.Token = v.GetString("TELEGRAM_TOKEN")
	adminIDs, err := parseChatIDs(v.GetString("ADMIN_ID"))
	if err != nil {
		return nil, err
	}
	cfg.Telegram.AdminIDs = adminIDs

	cfg.Admin.Username = v.GetString("ADMIN_USERNAME")
	cfg.Admin.Email = v.GetString("ADMIN_EMAIL")
	cfg.Admin.Password = v.GetString("ADMIN_PASSWORD")

	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.PhoneRegion = strings.ToUpper(v.GetString("PHONE_REGION"))

	return cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}

// MigrationURL возвращает адрес базы данных для golang-migrate
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}

// ActivationURL собирает ссылку активации для письма
func (c *Config) ActivationURL(link string) string {
	return c.Server.APIURL + c.Server.APIPrefix + "/user/activate/" + link
}

// CardURL собирает публичную ссылку на визитку
func (c *Config) CardURL(id uint) string {
	return c.Server.APIURL + c.Server.APIPrefix + "/business-cards/" + strconv.FormatUint(uint64(id), 10)
}

// HasAdminSeed сообщает, задан ли администратор для начального заполнения
func (c *Config) HasAdminSeed() bool {
	return c.Admin.Username != "" && c.Admin.Email != "" && c.Admin.Password != ""
}

func intValue(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("неверный формат %s: %w", key, err)
	}
	return value, nil
}

// parseChatIDs разбирает список идентификаторов чатов администраторов, например "123,456"
func parseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("неверный формат ADMIN_ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
