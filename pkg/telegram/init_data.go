package telegram

import (
	"PantryPal-Backend/domain"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

type (
	// InitData is the identity payload the mini-app host hands to the web
	// view. Only the fields the backend needs are decoded.
	InitData struct {
		UserID   int64
		Username string
		PhotoURL string
		AuthDate time.Time
	}

	Verifier interface {
		Verify(initData string) (InitData, error)
	}

	verifier struct {
		botToken string
		maxAge   time.Duration
	}
)

func NewVerifier(botToken string, maxAge time.Duration) Verifier {
	return &verifier{botToken: botToken, maxAge: maxAge}
}

// Verify checks the HMAC signature Telegram attaches to the web-app init
// data: the secret key is HMAC-SHA256("WebAppData", botToken) and the
// signed payload is the remaining key=value pairs sorted and joined with
// newlines.
func (v *verifier) Verify(initData string) (InitData, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return InitData{}, domain.ErrInitDataInvalid
	}

	providedHash := values.Get("hash")
	if providedHash == "" {
		return InitData{}, domain.ErrInitDataInvalid
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(v.botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	expectedHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedHash), []byte(providedHash)) {
		return InitData{}, domain.ErrInitDataInvalid
	}

	authDateUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return InitData{}, domain.ErrInitDataInvalid
	}
	authDate := time.Unix(authDateUnix, 0)
	if v.maxAge > 0 && time.Since(authDate) > v.maxAge {
		return InitData{}, domain.ErrInitDataExpired
	}

	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		PhotoURL string `json:"photo_url"`
	}
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return InitData{}, domain.ErrInitDataInvalid
	}

	return InitData{
		UserID:   user.ID,
		Username: user.Username,
		PhotoURL: user.PhotoURL,
		AuthDate: authDate,
	}, nil
}
