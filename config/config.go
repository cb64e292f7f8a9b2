package config

import (
	"errors"
	"net/url"
	"os"
)

// ErrMissingTable means the launch URL carries no table parameter. The kiosk
// cannot do anything without knowing which table it is serving.
var ErrMissingTable = errors.New("no table id in launch URL, scan the QR code again")

type Config struct {
	// LaunchURL is the QR-code URL the kiosk was opened with. The table id
	// travels in its "table" query parameter.
	LaunchURL   string
	APIBaseURL  string
	WSBaseURL   string
	StateDBPath string
}

func Load() Config {
	return Config{
		LaunchURL:   getenv("LAUNCH_URL", ""),
		APIBaseURL:  getenv("API_BASE_URL", "http://localhost:3000"),
		WSBaseURL:   getenv("WS_BASE_URL", "ws://localhost:3000"),
		StateDBPath: getenv("STATE_DB_PATH", "rockbandpay-kiosk.db"),
	}
}

// TableID extracts the table identifier from the launch URL.
func (c Config) TableID() (string, error) {
	if c.LaunchURL == "" {
		return "", ErrMissingTable
	}
	u, err := url.Parse(c.LaunchURL)
	if err != nil {
		return "", ErrMissingTable
	}
	tableID := u.Query().Get("table")
	if tableID == "" {
		return "", ErrMissingTable
	}
	return tableID, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
