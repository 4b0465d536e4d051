package leaderboard

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/hiscore/internal/leaderboard/ledger"
)

// defaultSecret は開発用のトークン署名シークレット。本番では JWT_SECRET で上書きすること。
const defaultSecret = "dev-secret-key"

// Config はサービスの実行時設定。起動時に一度だけ組み立て、NewServerに渡す。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string
	// Secret はトークンの署名・検証に使う秘密鍵。
	Secret string
	// Credentials はログインで照合する資格情報。
	Credentials []Credential
	// PageSize はスコア取得時の1ページあたりの件数。
	PageSize int
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
	// Ledger はスコア台帳の保存先設定。
	Ledger ledger.Config
}

// DefaultConfig は開発用の既定設定を返す。
func DefaultConfig() Config {
	return Config{
		Port:           "8080",
		Secret:         defaultSecret,
		Credentials:    DefaultCredentials(),
		PageSize:       ledger.DefaultPageSize,
		AllowedOrigins: []string{"http://localhost:3000"},
		Ledger:         ledger.DefaultConfig(),
	}
}

// LoadConfig は環境変数から設定を読み込む。未設定の項目は既定値を使う。
//
//	PORT             リッスンポート
//	JWT_SECRET       トークン署名用シークレット
//	CREDENTIALS      "identity:secret" のカンマ区切り
//	PAGE_SIZE        1ページあたりの件数
//	ALLOWED_ORIGINS  CORS許可オリジンのカンマ区切り（"*" で全許可）
//	LEDGER_BACKEND   memory | sqlite | redis
//	SQLITE_DSN       SQLiteの接続文字列
//	REDIS_URL        Redisの接続URL
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	cfg.Port = getEnvOr("PORT", cfg.Port)
	cfg.Secret = getEnvOr("JWT_SECRET", cfg.Secret)

	if v := os.Getenv("CREDENTIALS"); v != "" {
		creds, err := parseCredentials(v)
		if err != nil {
			return Config{}, fmt.Errorf("CREDENTIALSの解析に失敗: %w", err)
		}
		cfg.Credentials = creds
	}

	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("PAGE_SIZEは1以上の整数で指定してください: %q", v)
		}
		cfg.PageSize = n
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	cfg.Ledger.Backend = ledger.Backend(getEnvOr("LEDGER_BACKEND", string(cfg.Ledger.Backend)))
	cfg.Ledger.SQLiteDSN = getEnvOr("SQLITE_DSN", cfg.Ledger.SQLiteDSN)
	cfg.Ledger.Redis.URL = getEnvOr("REDIS_URL", cfg.Ledger.Redis.URL)

	return cfg, nil
}

// parseCredentials は "identity:secret,identity:secret" 形式の文字列を解析する。
func parseCredentials(s string) ([]Credential, error) {
	var creds []Credential
	for _, pair := range splitList(s) {
		identity, secret, found := strings.Cut(pair, ":")
		if !found || identity == "" || secret == "" {
			return nil, fmt.Errorf("不正な資格情報の指定です: %q", pair)
		}
		creds = append(creds, Credential{Identity: identity, Secret: secret})
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("資格情報が1件もありません")
	}
	return creds, nil
}

// splitList はカンマ区切りの文字列を空要素を除いて分割する。
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
