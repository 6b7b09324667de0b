package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DevelopEnv, cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, NotifyLocal, cfg.NotifyBackend)
	assert.Equal(t, 64, cfg.HubBuffer)
	assert.Equal(t, 15*time.Second, cfg.SSEHeartbeat)
	assert.Equal(t, "preserve", cfg.SkipMode)
	assert.Equal(t, "share", cfg.SwapMode)
	assert.Equal(t, time.Duration(0), cfg.PruneAfter)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("AUTH_MODE", "remote")
	t.Setenv("AUTH_URL", "http://auth.local/check")
	t.Setenv("QUEUE_SKIP_MODE", "requeue")
	t.Setenv("QUEUE_SWAP_MODE", "exchange")
	t.Setenv("NOTIFY_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PRUNE_AFTER", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, AuthRemote, cfg.AuthMode)
	assert.Equal(t, "requeue", cfg.SkipMode)
	assert.Equal(t, "exchange", cfg.SwapMode)
	assert.Equal(t, NotifyRedis, cfg.NotifyBackend)
	assert.Equal(t, 2*time.Hour, cfg.PruneAfter)
}

func TestValidate_Rejects(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTPPort: 8080, DBDriver: DriverSQLite, DBPath: "q.db",
			NotifyBackend: NotifyLocal, HubBuffer: 1,
			SkipMode: "preserve", SwapMode: "share",
			AuthMode: AuthJWT, JWTAccessSecret: "s",
		}
	}

	cases := map[string]func(c *Config){
		"port":       func(c *Config) { c.HTTPPort = 0 },
		"driver":     func(c *Config) { c.DBDriver = "mysql" },
		"redis addr": func(c *Config) { c.NotifyBackend = NotifyRedis },
		"hub buffer": func(c *Config) { c.HubBuffer = 0 },
		"skip mode":  func(c *Config) { c.SkipMode = "back" },
		"swap mode":  func(c *Config) { c.SwapMode = "trade" },
		"jwt secret": func(c *Config) { c.JWTAccessSecret = "" },
		"remote url": func(c *Config) { c.AuthMode = AuthRemote },
		"prune":      func(c *Config) { c.PruneAfter = -time.Second },
	}

	base := valid()
	require.NoError(t, base.Validate())

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	c := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "queue"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=queue sslmode=disable", c.PostgresDSN())
}
