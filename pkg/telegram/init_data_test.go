package telegram

import (
	"PantryPal-Backend/domain"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "110201543:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"

// signInitData produces the query string a real host would hand to the
// web view, signed with the bot token.
func signInitData(botToken string, values url.Values) string {
	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func validInitData(authDate time.Time) url.Values {
	return url.Values{
		"auth_date": {fmt.Sprintf("%d", authDate.Unix())},
		"query_id":  {"AAF9tpYRAAAAAH22lhGbzvLO"},
		"user":      {`{"id":295470589,"username":"pantry_fan","photo_url":"https://t.me/i/userpic/320/pantry_fan.jpg"}`},
	}
}

func TestVerifyAcceptsSignedInitData(t *testing.T) {
	verifier := NewVerifier(testBotToken, time.Hour)
	authDate := time.Now().Add(-time.Minute)

	initData, err := verifier.Verify(signInitData(testBotToken, validInitData(authDate)))

	require.NoError(t, err)
	assert.Equal(t, int64(295470589), initData.UserID)
	assert.Equal(t, "pantry_fan", initData.Username)
	assert.Equal(t, "https://t.me/i/userpic/320/pantry_fan.jpg", initData.PhotoURL)
	assert.Equal(t, authDate.Unix(), initData.AuthDate.Unix())
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	verifier := NewVerifier(testBotToken, time.Hour)

	signed := signInitData(testBotToken, validInitData(time.Now()))
	tampered := strings.Replace(signed, "295470589", "295470590", 1)

	_, err := verifier.Verify(tampered)
	assert.ErrorIs(t, err, domain.ErrInitDataInvalid)
}

func TestVerifyRejectsWrongBotToken(t *testing.T) {
	verifier := NewVerifier(testBotToken, time.Hour)

	_, err := verifier.Verify(signInitData("some-other-token", validInitData(time.Now())))
	assert.ErrorIs(t, err, domain.ErrInitDataInvalid)
}

func TestVerifyRejectsMissingHash(t *testing.T) {
	verifier := NewVerifier(testBotToken, time.Hour)

	_, err := verifier.Verify(validInitData(time.Now()).Encode())
	assert.ErrorIs(t, err, domain.ErrInitDataInvalid)
}

func TestVerifyRejectsStaleInitData(t *testing.T) {
	verifier := NewVerifier(testBotToken, time.Hour)

	_, err := verifier.Verify(signInitData(testBotToken, validInitData(time.Now().Add(-2*time.Hour))))
	assert.ErrorIs(t, err, domain.ErrInitDataExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	verifier := NewVerifier(testBotToken, time.Hour)

	_, err := verifier.Verify("not%zzan-init-data-string")
	assert.ErrorIs(t, err, domain.ErrInitDataInvalid)
}
