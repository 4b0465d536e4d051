package ledger

import (
	"context"
	"fmt"
)

// Backend は台帳の保存先の種類を表す。
type Backend string

const (
	// BackendMemory はプロセス内メモリ。
	BackendMemory Backend = "memory"
	// BackendSQLite はSQLite。
	BackendSQLite Backend = "sqlite"
	// BackendRedis はRedis。
	BackendRedis Backend = "redis"
)

// Config は台帳の生成に必要な設定。
type Config struct {
	// Backend は使用する保存先。空の場合はメモリ。
	Backend Backend
	// SQLiteDSN はSQLiteの接続文字列。
	SQLiteDSN string
	// Redis はRedisの接続設定。
	Redis RedisConfig
}

// RedisConfig はRedis台帳の接続設定。
type RedisConfig struct {
	// URL はRedisの接続URL（例: redis://localhost:6379/0）。
	URL string
	// PoolSize はコネクションプールの最大数。
	PoolSize int
	// MinIdleConns は保持するアイドル接続の最小数。
	MinIdleConns int
	// KeyPrefix は全キーに付与する接頭辞。
	KeyPrefix string
}

// DefaultConfig はメモリ台帳を使う既定の設定を返す。
func DefaultConfig() Config {
	return Config{
		Backend:   BackendMemory,
		SQLiteDSN: ":memory:",
		Redis:     DefaultRedisConfig(),
	}
}

// DefaultRedisConfig はRedis接続の既定値を返す。
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    "hiscore",
	}
}

// Open は設定に従って台帳を生成する。
func Open(ctx context.Context, cfg Config) (Ledger, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		l, err := NewSQLite(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		return l, nil
	case BackendRedis:
		l, err := NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("未対応の台帳バックエンドです: %q", cfg.Backend)
	}
}
