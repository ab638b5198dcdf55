package pagination

import (
	"encoding/base64"
	"fmt"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a base64 cursor token from a creation timestamp and the
// row id used as tie-breaker. Listings order by (created_at DESC, id DESC), so
// the pair identifies the last row of a page unambiguously.
func EncodeToken(createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor token back into the creation timestamp and id.
func DecodeToken(token string) (time.Time, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	tokenStr := string(decoded)
	sep := -1
	for i := 0; i < len(tokenStr); i++ {
		if tokenStr[i] == '|' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (missing separator)")
	}
	createdAt, err := time.Parse(timeFormat, tokenStr[:sep])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (timestamp parse): %w", err)
	}
	return createdAt, tokenStr[sep+1:], nil
}
