package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis はRedisに保持する台帳。
// エントリはレベルごとのリストに追記順で格納し、取得時にプロセス内で並べ替える。
type Redis struct {
	client *redis.Client
	cfg    RedisConfig
}

var _ Ledger = (*Redis)(nil)

// NewRedis はRedis台帳を生成し、接続を確認する。
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("Redis URLの解析に失敗: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redisへの接続に失敗: %w", err)
	}

	return NewRedisWithClient(client, cfg), nil
}

// NewRedisWithClient は既存のクライアントからRedis台帳を生成する（テスト用）。
func NewRedisWithClient(client *redis.Client, cfg RedisConfig) *Redis {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultRedisConfig().KeyPrefix
	}
	return &Redis{client: client, cfg: cfg}
}

// Append はレベルのリスト末尾への追加と件数の加算を1トランザクションで行う。
func (r *Redis) Append(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("エントリのシリアライズに失敗: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, levelKey(r.cfg.KeyPrefix, e.Level), data)
	pipe.Incr(ctx, countKey(r.cfg.KeyPrefix))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("スコアの追記に失敗: %w", err)
	}
	return nil
}

// Query は指定レベルのエントリを1ページ分返す。
func (r *Redis) Query(ctx context.Context, level string, page, pageSize int) ([]Entry, error) {
	if _, ok := offset(page, pageSize); !ok {
		return []Entry{}, nil
	}

	raw, err := r.client.LRange(ctx, levelKey(r.cfg.KeyPrefix, level), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("スコアの取得に失敗: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("エントリのデシリアライズに失敗: %w", err)
		}
		entries = append(entries, e)
	}

	rank(entries)
	return paginate(entries, page, pageSize), nil
}

// Count は台帳全体のエントリ数を返す。
func (r *Redis) Count(ctx context.Context) (int, error) {
	n, err := r.client.Get(ctx, countKey(r.cfg.KeyPrefix)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("件数の取得に失敗: %w", err)
	}
	return n, nil
}

// Close はRedis接続を閉じる。
func (r *Redis) Close() error {
	return r.client.Close()
}
