package clubhouse

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/user"
	"github.com/parfive/fantasy-golf/internal/platform/cache"
)

// Verifier is anything that can turn a bearer token into a principal.
type Verifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

// CachedVerifier memoizes successful introspections for a short TTL so a
// burst of requests from one session hits the account service once.
// Failures are never cached.
type CachedVerifier struct {
	inner Verifier
	store *cache.Store
}

func NewCachedVerifier(inner Verifier, ttl time.Duration) *CachedVerifier {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &CachedVerifier{
		inner: inner,
		store: cache.NewStore(ttl),
	}
}

func (v *CachedVerifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	// Tokens are secrets; the cache key is a digest, never the token itself.
	digest := sha256.Sum256([]byte(token))
	key := "principal:" + hex.EncodeToString(digest[:])

	value, err := v.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		principal, err := v.inner.VerifyAccessToken(ctx, token)
		if err != nil {
			return nil, err
		}
		return principal, nil
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, ok := value.(user.Principal)
	if !ok {
		return v.inner.VerifyAccessToken(ctx, token)
	}
	return principal, nil
}
