package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/attendance.db", cfg.DBPath)
	assert.Equal(t, "21:00", cfg.DigestTime)
	assert.Equal(t, "https://graph.facebook.com/v20.0", cfg.GraphAPIURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DIGEST_TIME", "08:30")
	t.Setenv("VERIFY_TOKEN", "hunter2")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "08:30", cfg.DigestTime)
	assert.Equal(t, "hunter2", cfg.VerifyToken)
}

func TestLoad_BadPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
}

func TestDayChoices_FixedSet(t *testing.T) {
	cfg := Load()

	choices := cfg.DayChoices()
	assert.Len(t, choices, 3)
	assert.Equal(t, "sat", choices[0].ID)
	assert.Equal(t, "Saturday", choices[0].Label)
	assert.Equal(t, "mon", choices[1].ID)
	assert.Equal(t, "wed", choices[2].ID)
}
