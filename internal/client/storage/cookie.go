package client_storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// MaxCookieSize is the per-cookie limit browsers enforce.
const MaxCookieSize = 4096

var ErrCookieTooLarge = errors.New("cookie exceeds size limit")

// CookieKV stores values the way document.cookie does: URL-escaped and
// bounded in size. The escaped cookie lines live in the backing store.
type CookieKV struct {
	backing KV
}

func NewCookieKV(backing KV) *CookieKV {
	return &CookieKV{backing: backing}
}

func (c *CookieKV) Get(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := c.backing.Get(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}

	cookies, err := http.ParseCookie(raw)
	if err != nil {
		return "", false, fmt.Errorf("parse cookie %s: %w", key, err)
	}
	for _, ck := range cookies {
		if ck.Name != key {
			continue
		}
		v, err := url.QueryUnescape(ck.Value)
		if err != nil {
			return "", false, fmt.Errorf("unescape cookie %s: %w", key, err)
		}
		return v, true, nil
	}
	return "", false, nil
}

func (c *CookieKV) Set(ctx context.Context, key, value string) error {
	ck := &http.Cookie{Name: key, Value: url.QueryEscape(value)}
	if err := ck.Valid(); err != nil {
		return fmt.Errorf("cookie %s: %w", key, err)
	}

	line := ck.String()
	if len(line) > MaxCookieSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrCookieTooLarge, key, len(line))
	}
	return c.backing.Set(ctx, key, line)
}

func (c *CookieKV) Delete(ctx context.Context, key string) error {
	return c.backing.Delete(ctx, key)
}
