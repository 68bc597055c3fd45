package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	c := Config{Host: "db", User: "marc", Password: "secret", Name: "dmarc"}
	assert.Equal(t, "host=db port=5432 user=marc password=secret dbname=dmarc sslmode=disable", c.ConnString())

	c.Port = "6543"
	assert.Contains(t, c.ConnString(), "port=6543")

	c.URL = "postgres://marc@localhost/dmarc"
	assert.Equal(t, c.URL, c.ConnString())
}

func TestConfigured(t *testing.T) {
	assert.False(t, Config{}.Configured())
	assert.True(t, Config{Host: "db"}.Configured())
	assert.True(t, Config{URL: "postgres://x"}.Configured())
}

func TestFillFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "envhost")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "envuser")
	t.Setenv("POSTGRES_PASSWORD", "envpass")
	t.Setenv("POSTGRES_DB", "envdb")

	c := Config{User: "configured"}
	c.FillFromEnv()

	assert.Equal(t, "envhost", c.Host)
	assert.Equal(t, "5433", c.Port)
	assert.Equal(t, "configured", c.User)
	assert.Equal(t, "envpass", c.Password)
	assert.Equal(t, "envdb", c.Name)
}
