package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// engine knobs
	Threshold    float64  // name similarity threshold
	RecentDays   int      // lookup recent-transaction window
	NamePrefixes []string // organizational prefixes to strip (default list when empty)
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	threshold, err := strconv.ParseFloat(getenv("SIMILARITY_THRESHOLD", "0.7"), 64)
	if err != nil || threshold <= 0 || threshold > 1 {
		threshold = 0.7
	}
	recent, _ := strconv.Atoi(getenv("RECENT_DAYS", "90"))

	var prefixes []string
	for _, p := range strings.Split(getenv("NAME_PREFIXES", ""), ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}

	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  mb,
		LogFile:      getenv("LOG_FILE", "logs/custrisk-service.log"),
		Threshold:    threshold,
		RecentDays:   recent,
		NamePrefixes: prefixes,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
