// Package iotesting provides shared helpers for integration tests.
package iotesting

import (
	"os"

	"github.com/canerbagci/bgcatlas/internal/ioconfig"
	"github.com/canerbagci/bgcatlas/pkg/config"
)

// TestDatabaseName is the database used by all integration tests, so
// they never touch a production database.
const TestDatabaseName = "bgcatlas_test"

// GetTestConfig loads configuration the same way the CLI does and
// forces the database name to TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()
	if home, err := os.UserHomeDir(); err == nil {
		if res, err := ioconfig.Load(home, ".env"); err == nil {
			cfg = res
		}
	}
	cfg.Database.Database = TestDatabaseName
	return cfg
}

// GetTestDatabaseConfig returns only the database part of GetTestConfig.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
