package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard date/time values
	transactionDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(transactionDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, transactionDate, decodedDate, "Sort date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")

	// Zero time values
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroDate)
	assert.Equal(t, zeroTime, decodedZeroTime)

	// Current time values
	now := time.Now().UTC()
	decodedNowDate, decodedNowTime, err := DecodeToken(EncodeToken(now, now))
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNowDate), "Current date should match after decode")
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2024-03-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|2024-03-15T14:30:45.123456789Z"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "sort date parse")

	badCreatedAt := base64.URLEncoding.EncodeToString([]byte("2024-03-15T00:00:00Z|later"))
	_, _, err = DecodeToken(badCreatedAt)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0, 100))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5, 100))
	assert.Equal(t, 10, NormalizeLimit(10, 100))
	assert.Equal(t, 100, NormalizeLimit(500, 100))
}
