package flash

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"catalogadmin.dev/app/internal/shared/hmacsig"
	"catalogadmin.dev/app/pkg/view"
)

var ErrInvalid = errors.New("invalid flash cookie")

// flash lives across one redirect
const maxAge = 2 * time.Minute

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool

	now func() time.Time
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure, now: time.Now}
}

type envelope struct {
	view.Flash
	IssuedAt int64 `json:"iat"`
}

// value format: base64(json).base64(hmac)
func (c *Codec) Encode(f view.Flash) (string, error) {
	b, err := json.Marshal(envelope{Flash: f, IssuedAt: c.clock().Unix()})
	if err != nil {
		return "", err
	}
	return hmacsig.Seal(c.Secret, base64.RawURLEncoding.EncodeToString(b)), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, ok := hmacsig.Open(c.Secret, v)
	if !ok {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(env.Message) == "" {
		return nil, ErrInvalid
	}
	if c.clock().Sub(time.Unix(env.IssuedAt, 0)) > maxAge {
		return nil, ErrInvalid
	}
	f := env.Flash
	return &f, nil
}

func (c *Codec) CookieMaxAge() int {
	return int(maxAge.Seconds())
}

func (c *Codec) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
