package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Room describes one configured consultation room.
type Room struct {
	ID    string
	Label string
}

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	DatabaseURL        string
	CORSAllowedOrigins []string

	// Scheduling
	Rooms            []Room
	OpeningTime      time.Duration // offset from midnight, e.g. 8h
	ClosingTime      time.Duration // offset from midnight, e.g. 18h
	BookableWeekdays []time.Weekday
	MinSlotDuration  time.Duration
	ArchivePath      string // CSV fallback archive for appointments

	// HTTP
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		Rooms:              parseRooms(getEnv("CLINIC_ROOMS", "A:Consulta A,B:Consulta B")),
		OpeningTime:        getEnvAsClock("CLINIC_OPENING_TIME", 8*time.Hour),
		ClosingTime:        getEnvAsClock("CLINIC_CLOSING_TIME", 18*time.Hour),
		BookableWeekdays:   parseWeekdays(getEnv("CLINIC_BOOKABLE_DAYS", "mon,tue,wed,thu,fri")),
		MinSlotDuration:    getEnvAsDuration("CLINIC_MIN_SLOT", 30*time.Minute),
		ArchivePath:        getEnv("APPOINTMENTS_ARCHIVE_PATH", "appointments.csv"),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 40),
	}
}

// parseRooms parses "A:Consulta A,B:Consulta B" into the room set, preserving
// the configured order. Entries without a label reuse the id.
func parseRooms(raw string) []Room {
	var rooms []Room
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, label, found := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = id
		}
		if id == "" {
			continue
		}
		rooms = append(rooms, Room{ID: id, Label: label})
	}
	return rooms
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func parseWeekdays(raw string) []time.Weekday {
	var days []time.Weekday
	seen := map[time.Weekday]bool{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if len(entry) > 3 {
			entry = entry[:3]
		}
		day, ok := weekdayNames[entry]
		if !ok || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return days
}

// parseClock converts "HH:MM" into an offset from midnight.
func parseClock(raw string) (time.Duration, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return 0, fmt.Errorf("config: malformed clock value %q", raw)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("config: malformed clock hours %q", raw)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("config: malformed clock minutes %q", raw)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsClock(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := parseClock(valueStr); err == nil {
		return value
	}
	return defaultValue
}
