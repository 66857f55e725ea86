// Package config provides configuration management for the pricing modeller.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, body limit and stream timeouts
//   - Database: submission store connection (mysql, postgres, sqlite)
//   - Storage: S3/MinIO export of submitted models
//   - Redis: draft persistence
//   - Session: idle eviction of live editing sessions
//   - Log: Logging level and format
//
// Nested keys map to upper-case environment variables, so session.idle_ttl_seconds
// is read from SESSION_IDLE_TTL_SECONDS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
