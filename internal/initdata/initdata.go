// Package initdata reads, signs and verifies the launch payload the host
// hands to the mini app. The payload is a query string whose hash field is
// an HMAC-SHA256 over the remaining fields, keyed with a secret derived from
// the bot token.
package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

// DefaultMaxAge is how long a payload is accepted after its auth_date.
const DefaultMaxAge = 60 * time.Minute

var (
	ErrMalformed   = errors.New("malformed init data")
	ErrMissingHash = errors.New("init data has no hash")
	ErrBadHash     = errors.New("init data hash mismatch")
	ErrExpired     = errors.New("init data expired")
)

type Data struct {
	User       domain.User
	AuthDate   time.Time
	StartParam string
	QueryID    string
	Hash       string
	Raw        string
}

func Parse(raw string) (Data, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromValues(raw, values)
}

func fromValues(raw string, values url.Values) (Data, error) {
	d := Data{
		Raw:        raw,
		StartParam: values.Get("start_param"),
		QueryID:    values.Get("query_id"),
		Hash:       values.Get("hash"),
	}

	if u := values.Get("user"); u != "" {
		if err := json.Unmarshal([]byte(u), &d.User); err != nil {
			return Data{}, fmt.Errorf("%w: user: %v", ErrMalformed, err)
		}
	}

	if a := values.Get("auth_date"); a != "" {
		secs, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return Data{}, fmt.Errorf("%w: auth_date: %v", ErrMalformed, err)
		}
		d.AuthDate = time.Unix(secs, 0)
	}
	return d, nil
}

// Validate parses raw and checks its hash against botToken. A payload whose
// auth_date is more than maxAge before now is rejected with ErrExpired.
func Validate(raw, botToken string, maxAge time.Duration, now time.Time) (Data, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	got, err := hex.DecodeString(values.Get("hash"))
	if err != nil || len(got) == 0 {
		return Data{}, ErrMissingHash
	}
	if !hmac.Equal(got, sum(values, botToken)) {
		return Data{}, ErrBadHash
	}

	d, err := fromValues(raw, values)
	if err != nil {
		return Data{}, err
	}
	if now.Sub(d.AuthDate) > maxAge {
		return Data{}, ErrExpired
	}
	return d, nil
}

// Sign sets the hash field of values for botToken and returns the encoded
// payload.
func Sign(values url.Values, botToken string) string {
	values.Del("hash")
	values.Set("hash", hex.EncodeToString(sum(values, botToken)))
	return values.Encode()
}

// New mints a signed payload for user. Used by development tooling that runs
// outside the host.
func New(user domain.User, startParam string, authDate time.Time, botToken string) (string, error) {
	u, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to encode user: %w", err)
	}

	values := url.Values{}
	values.Set("user", string(u))
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	if startParam != "" {
		values.Set("start_param", startParam)
	}
	return Sign(values, botToken), nil
}

// WithStartParam returns raw with start_param replaced. The result is no
// longer signed unless botToken is set.
func WithStartParam(raw, startParam, botToken string) (string, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	values.Set("start_param", startParam)
	if botToken == "" {
		return values.Encode(), nil
	}
	return Sign(values, botToken), nil
}

func sum(values url.Values, botToken string) []byte {
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString(values)))
	return mac.Sum(nil)
}

// checkString joins the sorted key=value pairs except hash with newlines.
func checkString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + values.Get(k)
	}
	return strings.Join(pairs, "\n")
}
