package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseID parses a positive path identifier.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("неверный формат ID %q", value)
	}
	return id, nil
}

// ParseOptionalID returns nil for an empty value.
func ParseOptionalID(value string) (*int64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	id, err := ParseID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат даты %q, ожидается YYYY-MM-DD", value)
	}
	return d, nil
}

// ParseInstant accepts RFC 3339 timestamps with an explicit offset.
func ParseInstant(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат времени %q, ожидается RFC 3339", value)
	}
	return t, nil
}

// ParsePage reads limit/offset, falling back to defaults on malformed input.
func ParsePage(limitStr, offsetStr string, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func ParseBool(value string, defaultValue bool) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
