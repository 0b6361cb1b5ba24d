// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

const defaultSQLitePath = "outfits.db"

// DriverName normalizes the configured driver; an empty value means postgres.
func (d *DatabaseConfig) DriverName() string {
	driver := strings.ToLower(strings.TrimSpace(d.Driver))
	if driver == "" {
		return "postgres"
	}
	return driver
}

// DSN returns the connection string for the configured driver.
func (d *DatabaseConfig) DSN() string {
	if d.DriverName() == "sqlite" {
		if d.Path == "" {
			return defaultSQLitePath
		}
		return d.Path
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, sslMode,
	)
}
