package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config неизменяемая конфигурация процесса, читается один раз при старте
// и передаётся в конструкторы явно.
type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string

	// AdminIDs пользователи, которым доступны отчёты и смена статусов
	AdminIDs map[int64]struct{}

	// TimezoneOffsetHours фиксированное смещение, в котором бот
	// проставляет дату смены и created_at
	TimezoneOffsetHours int

	// ReportChatID чат для периодического отчёта, 0 — отчёт выключен
	ReportChatID        int64
	ReportIntervalHours int

	// SheetsSpreadsheetID таблица-зеркало, пустая строка — зеркало выключено
	SheetsSpreadsheetID   string
	SheetsCredentialsFile string

	MigrationsPath string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:         os.Getenv("BOT_TOKEN"),
		DBDSN:                 os.Getenv("DB_DSN"),
		Environment:           os.Getenv("ENV"),
		AdminIDs:              parseAdminIDs(os.Getenv("ADMIN_IDS")),
		SheetsSpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		SheetsCredentialsFile: os.Getenv("SHEETS_CREDENTIALS_FILE"),
		MigrationsPath:        os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.SheetsCredentialsFile == "" {
		cfg.SheetsCredentialsFile = "credentials.json"
	}

	cfg.TimezoneOffsetHours = intEnv("TZ_OFFSET_HOURS", 5)
	cfg.ReportIntervalHours = intEnv("REPORT_INTERVAL_HOURS", 24)
	cfg.ReportChatID = int64Env("REPORT_CHAT_ID", 0)

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	if len(cfg.AdminIDs) == 0 {
		log.Println("⚠️  ADMIN_IDS is empty or invalid, report commands will be unavailable")
	}

	return cfg, nil
}

// IsAdmin проверяет принадлежность пользователя к списку администраторов
func (c *Config) IsAdmin(userID int64) bool {
	_, ok := c.AdminIDs[userID]
	return ok
}

// Location фиксированный часовой пояс группы
func (c *Config) Location() *time.Location {
	name := fmt.Sprintf("UTC%+d", c.TimezoneOffsetHours)
	return time.FixedZone(name, c.TimezoneOffsetHours*3600)
}

// parseAdminIDs разбирает строку вида "123,456,789" в множество.
// Любая нечисловая запись обнуляет весь список: лучше недоступные отчёты,
// чем случайный администратор.
func parseAdminIDs(raw string) map[int64]struct{} {
	ids := make(map[int64]struct{})
	if strings.TrimSpace(raw) == "" {
		return ids
	}

	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			log.Printf("⚠️  Failed to parse ADMIN_IDS entry %q, ignoring the whole list", part)
			return make(map[int64]struct{})
		}
		ids[id] = struct{}{}
	}

	return ids
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return v
}

func int64Env(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return v
}
