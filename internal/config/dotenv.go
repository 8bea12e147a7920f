package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenvIfPresent reads a .env file at path so that ${VAR} references in
// the YAML config resolve during local development. Variables already set in
// the environment win. A missing file is not an error.
func LoadDotenvIfPresent(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking dotenv file: %w", err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading dotenv file: %w", err)
	}
	return nil
}
