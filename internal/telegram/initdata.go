package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// WebAppUser is the embedded user identity from a mini-app launch payload.
type WebAppUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

var ErrInvalidInitData = errors.New("invalid init data signature")

// ValidateInitData verifies a Telegram WebApp launch payload against the
// bot's token. The scheme is fixed by Telegram and must stay bit-exact:
// secret = HMAC-SHA256(key="WebAppData", msg=bot_token), then
// HMAC-SHA256(secret, sorted "key=value" pairs joined by "\n", hash field
// excluded) must equal the supplied hash. Comparison is constant-time.
// On success it returns the parsed payload fields.
func ValidateInitData(initData, botToken string) (url.Values, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, ErrInvalidInitData
	}

	suppliedHash := values.Get("hash")
	if suppliedHash == "" {
		return nil, ErrInvalidInitData
	}
	values.Del("hash")

	var pairs []string
	for k, v := range values {
		pairs = append(pairs, k+"="+strings.Join(v, ""))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	calculated := mac.Sum(nil)

	provided, err := hex.DecodeString(suppliedHash)
	if err != nil {
		return nil, ErrInvalidInitData
	}

	if !hmac.Equal(calculated, provided) {
		return nil, ErrInvalidInitData
	}

	return values, nil
}

// ParseUser extracts the user object from validated payload fields.
func ParseUser(values url.Values) (*WebAppUser, error) {
	raw := values.Get("user")
	if raw == "" {
		return nil, errors.New("user field missing from init data")
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, errors.New("user id missing from init data")
	}
	return &user, nil
}
