package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syscompta/ledger/internal/utils/pagination"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeToken(date, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreatedAt, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(date))
	assert.True(t, gotCreatedAt.Equal(createdAt))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2024-03-15T00:00:00Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_UnparsableTimes(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|tomorrow"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}
