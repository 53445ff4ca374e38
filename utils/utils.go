package utils

import (
	"os"
)

func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

func CreateDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}

	return nil
}

// StrPtr returns nil for an empty string, a pointer to s otherwise
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrVal returns the value s points to, or "" when s is nil
func StrVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
