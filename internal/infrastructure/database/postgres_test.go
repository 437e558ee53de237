package database

import (
	"testing"

	"go-clinic-dashboard/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: "5432", User: "clinic", Password: "pw", Name: "dashboard"}

	assert.Equal(t,
		"host=db user=clinic password=pw dbname=dashboard port=5432 sslmode=disable TimeZone=Europe/Berlin",
		DSN(cfg, "Europe/Berlin"))

	cfg.SSLMode = "require"
	assert.Contains(t, DSN(cfg, ""), "sslmode=require TimeZone=UTC")
}

func TestURL(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: "5432", User: "clinic", Password: "p@ss", Name: "dashboard"}
	assert.Equal(t, "postgres://clinic:p%40ss@db:5432/dashboard?sslmode=disable", URL(cfg))
}
