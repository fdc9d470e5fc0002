// Package config provides configuration management for the inventory service.
//
// It uses Viper for environment variables and godotenv for an optional .env
// file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: listen address, Swagger and metrics toggles
//   - Database: driver (sqlite or mysql) and connection details
//   - Storage: S3/MinIO credentials, bucket and reports prefix
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
