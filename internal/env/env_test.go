package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Run("should return fallback when unset", func(t *testing.T) {
		assert.Equal(t, "fallback", GetString("NEWSROOM_TEST_UNSET", "fallback"))
	})

	t.Run("should read value from environment", func(t *testing.T) {
		t.Setenv("NEWSROOM_TEST_ADDR", ":9090")
		assert.Equal(t, ":9090", GetString("NEWSROOM_TEST_ADDR", ":8080"))
	})
}

func TestGetInt(t *testing.T) {
	t.Run("should parse number", func(t *testing.T) {
		t.Setenv("NEWSROOM_TEST_CONNS", "12")
		assert.Equal(t, 12, GetInt("NEWSROOM_TEST_CONNS", 30))
	})

	t.Run("should fall back on garbage", func(t *testing.T) {
		t.Setenv("NEWSROOM_TEST_CONNS_BAD", "twelve")
		assert.Equal(t, 30, GetInt("NEWSROOM_TEST_CONNS_BAD", 30))
	})
}

func TestGetDuration(t *testing.T) {
	t.Run("should parse duration", func(t *testing.T) {
		t.Setenv("NEWSROOM_TEST_EXP", "2h")
		assert.Equal(t, 2*time.Hour, GetDuration("NEWSROOM_TEST_EXP", time.Minute))
	})

	t.Run("should fall back when unset", func(t *testing.T) {
		assert.Equal(t, time.Minute, GetDuration("NEWSROOM_TEST_EXP_UNSET", time.Minute))
	})
}
