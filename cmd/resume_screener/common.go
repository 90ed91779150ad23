package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/extraction"
	"github.com/jonathan/resume-screener/internal/logging"
	"github.com/jonathan/resume-screener/internal/schemas"
)

// loadConfig loads the effective configuration from --config and the environment
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return log, nil
}

// openStore connects to PostgreSQL when a database URL is configured and otherwise
// opens the local SQLite store. The schema is applied either way.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (db.Store, error) {
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		log.Info("using PostgreSQL store")
		return database, nil
	}

	local, err := db.OpenLocal(ctx, cfg.StorePath)
	if err != nil {
		return nil, err
	}
	log.WithField("path", cfg.StorePath).Info("using local SQLite store")
	return local, nil
}

// readDocument reads a file and extracts its text
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, err := extraction.ExtractText(path, data)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	return text, nil
}

// splitList splits a comma-separated flag value, dropping blank entries
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err = os.Stdout.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeOutput writes v as JSON and checks it against schemaFile. Output bound for
// stdout is checked before printing; a file is checked as written.
func writeOutput(schemaFile, path string, v any) error {
	if path == "" {
		if err := validateOutput(schemaFile, v); err != nil {
			return err
		}
		return writeJSON("", v)
	}
	if err := writeJSON(path, v); err != nil {
		return err
	}
	return validateFile(schemaFile, path)
}

// validateOutput checks v against a schema when the schema file can be found.
// Schema mismatches are errors; a schema that cannot be loaded only warns.
func validateOutput(schemaFile string, v any) error {
	schemaPath := schemas.ResolveSchemaPath(schemaFile)
	if schemaPath == "" {
		return nil
	}
	return schemaResult(schemas.ValidateValue(schemaPath, v))
}

// validateFile checks a written JSON file against a schema when the schema file can be found
func validateFile(schemaFile, path string) error {
	schemaPath := schemas.ResolveSchemaPath(schemaFile)
	if schemaPath == "" {
		return nil
	}
	return schemaResult(schemas.ValidateJSON(schemaPath, path))
}

func schemaResult(err error) error {
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("output does not validate against schema: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	return nil
}
