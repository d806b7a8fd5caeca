package server

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 30

func validateName(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", errors.New("name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", fmt.Errorf("name must be %d characters or fewer", maxNameLength)
	}
	return trimmed, nil
}

func validateCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != roomCodeLength {
		return "", errors.New("invalid room code")
	}
	for _, r := range normalized {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", errors.New("invalid room code")
		}
	}
	return normalized, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
