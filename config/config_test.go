package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableIDFromLaunchURL(t *testing.T) {
	cfg := Config{LaunchURL: "https://menu.rockbandpay.com/?table=T1"}
	tableID, err := cfg.TableID()
	require.NoError(t, err)
	assert.Equal(t, "T1", tableID)
}

func TestTableIDMissingParam(t *testing.T) {
	cfg := Config{LaunchURL: "https://menu.rockbandpay.com/"}
	_, err := cfg.TableID()
	assert.ErrorIs(t, err, ErrMissingTable)
}

func TestTableIDEmptyURL(t *testing.T) {
	_, err := Config{}.TableID()
	assert.ErrorIs(t, err, ErrMissingTable)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("WS_BASE_URL", "")
	t.Setenv("STATE_DB_PATH", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, "ws://localhost:3000", cfg.WSBaseURL)
	assert.Equal(t, "rockbandpay-kiosk.db", cfg.StateDBPath)
}
