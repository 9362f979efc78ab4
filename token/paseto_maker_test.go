package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testKey = "YELLOW SUBMARINE, BLACK WIZARDRY"

func TestPasetoMaker(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	username := "judy"

	token, payload, err := maker.CreateToken(username, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, payload)

	got, err := maker.VerifyToken(token)
	require.NoError(t, err)

	require.Equal(t, payload.ID, got.ID)
	require.Equal(t, username, got.Username)
	require.WithinDuration(t, payload.IssuedAt, got.IssuedAt, time.Second)
	require.WithinDuration(t, payload.ExpiredAt, got.ExpiredAt, time.Second)
}

func TestExpiredPasetoToken(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	token, _, err := maker.CreateToken("judy", -time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestInvalidKeySize(t *testing.T) {
	_, err := NewPasetoMaker("too short")
	require.Error(t, err)
}

func TestTamperedToken(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	token, _, err := maker.CreateToken("judy", time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(token + "x")
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}
