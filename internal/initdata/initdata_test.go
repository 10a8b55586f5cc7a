package initdata_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/initdata"
)

const token = "123456:test-token"

func TestNewValidate_RoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	user := domain.User{ID: 42, FirstName: "Ann", LastName: "Lee"}

	raw, err := initdata.New(user, "poll-1", now.Add(-time.Minute), token)
	require.NoError(t, err)

	d, err := initdata.Validate(raw, token, initdata.DefaultMaxAge, now)
	require.NoError(t, err)
	assert.Equal(t, user, d.User)
	assert.Equal(t, "poll-1", d.StartParam)
	assert.Equal(t, now.Add(-time.Minute).Unix(), d.AuthDate.Unix())
}

func TestValidate_Rejects(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	raw, err := initdata.New(domain.User{ID: 1, FirstName: "A"}, "", now, token)
	require.NoError(t, err)

	_, err = initdata.Validate(raw, "other-token", initdata.DefaultMaxAge, now)
	assert.ErrorIs(t, err, initdata.ErrBadHash)

	_, err = initdata.Validate(raw, token, initdata.DefaultMaxAge, now.Add(61*time.Minute))
	assert.ErrorIs(t, err, initdata.ErrExpired)

	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	values.Set("auth_date", "1")
	_, err = initdata.Validate(values.Encode(), token, initdata.DefaultMaxAge, now)
	assert.ErrorIs(t, err, initdata.ErrBadHash)

	values.Del("hash")
	_, err = initdata.Validate(values.Encode(), token, initdata.DefaultMaxAge, now)
	assert.ErrorIs(t, err, initdata.ErrMissingHash)
}

func TestWithStartParam(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	raw, err := initdata.New(domain.User{ID: 7, FirstName: "B"}, "", now, token)
	require.NoError(t, err)

	signed, err := initdata.WithStartParam(raw, "abc", token)
	require.NoError(t, err)
	d, err := initdata.Validate(signed, token, initdata.DefaultMaxAge, now)
	require.NoError(t, err)
	assert.Equal(t, "abc", d.StartParam)

	unsigned, err := initdata.WithStartParam(raw, "abc", "")
	require.NoError(t, err)
	_, err = initdata.Validate(unsigned, token, initdata.DefaultMaxAge, now)
	assert.ErrorIs(t, err, initdata.ErrBadHash)
}

func TestParse(t *testing.T) {
	d, err := initdata.Parse(`user=%7B%22id%22%3A5%2C%22first_name%22%3A%22Cid%22%7D&auth_date=10&start_param=x&hash=00`)
	require.NoError(t, err)
	assert.Equal(t, int64(5), d.User.ID)
	assert.Equal(t, "Cid", d.User.DisplayName())
	assert.Equal(t, "x", d.StartParam)

	_, err = initdata.Parse("user=%7Bbroken")
	assert.ErrorIs(t, err, initdata.ErrMalformed)
}
