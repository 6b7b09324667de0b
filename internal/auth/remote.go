package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const cachePrefix = "auth:token:"

// RemoteVerifier спрашивает внешний сервис идентификации и кэширует ответы в Redis.
// Сервис отвечает {"response":{"user_id":N}} или {"error":...}.
type RemoteVerifier struct {
	endpoint string
	client   *http.Client
	cache    *redis.Client
	ttl      time.Duration
	logger   *log.Logger
}

// NewRemoteVerifier создаёт верификатор. cache может быть nil, тогда кэша нет.
func NewRemoteVerifier(endpoint string, cache *redis.Client, ttl time.Duration, logger *log.Logger) *RemoteVerifier {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &RemoteVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

type introspection struct {
	Response *struct {
		UserID int64 `json:"user_id"`
	} `json:"response"`
	Error json.RawMessage `json:"error"`
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return cachePrefix + hex.EncodeToString(sum[:])
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, &AuthError{Reason: "missing token"}
	}

	key := cacheKey(token)
	if userID, ok := v.cached(ctx, key); ok {
		return userID, nil
	}

	userID, err := v.introspect(ctx, token)
	if err != nil {
		return 0, err
	}

	if v.cache != nil && v.ttl > 0 {
		if err := v.cache.Set(ctx, key, userID, v.ttl).Err(); err != nil {
			v.logger.WithError(err).Warn("failed to cache token")
		}
	}
	return userID, nil
}

func (v *RemoteVerifier) cached(ctx context.Context, key string) (int64, bool) {
	if v.cache == nil {
		return 0, false
	}

	val, err := v.cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		v.logger.WithError(err).Warn("token cache unavailable")
		return 0, false
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func (v *RemoteVerifier) introspect(ctx context.Context, token string) (int64, error) {
	u, err := url.Parse(v.endpoint)
	if err != nil {
		return 0, errors.Wrap(err, "invalid auth url")
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build auth request")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "auth service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return 0, errors.Errorf("auth service returned %d", resp.StatusCode)
	}

	var body introspection
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, &AuthError{Reason: "malformed auth response", Err: err}
	}
	if len(body.Error) > 0 && string(body.Error) != "null" {
		return 0, &AuthError{Reason: "token rejected"}
	}
	if body.Response == nil || body.Response.UserID <= 0 {
		return 0, &AuthError{Reason: "token rejected"}
	}
	return body.Response.UserID, nil
}
