package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit is the page size used when a caller does not ask for one.
const DefaultLimit = 20

// EncodeToken creates an opaque keyset cursor from the sort date and creation time
// of the last row of a page. Ledgers sort by transaction date, postings by posting date.
func EncodeToken(sortDate time.Time, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", sortDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	sortDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (sort date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return sortDate, createdAt, nil
}

// NormalizeLimit clamps a requested page size to [1, max], falling back to DefaultLimit.
func NormalizeLimit(limit, max int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > max {
		return max
	}
	return limit
}
