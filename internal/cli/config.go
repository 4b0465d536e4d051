package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config はCLIの設定。フラグと環境変数から組み立てる。
type Config struct {
	// ServerURL はリーダーボードサーバーのURL。
	ServerURL string
	// Token はスコア送信に使うトークン。
	Token string
	// TokenFile はloginで取得したトークンの保存先。
	TokenFile string
	// Output は出力形式（text または json）。
	Output string
}

// DefaultConfig は環境変数を反映した既定の設定を返す。
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOr("HISCORE_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("HISCORE_TOKEN"),
		TokenFile: getEnvOr("HISCORE_TOKEN_FILE", defaultTokenFile()),
		Output:    outputText,
	}
}

// LoadToken はトークンが未設定の場合、トークンファイルから読み込む。
// ファイルが存在しない場合はエラーにしない。
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("トークンファイルの読み込みに失敗: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken はトークンを設定し、トークンファイルに保存する。
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return fmt.Errorf("トークンの保存先の作成に失敗: %w", err)
	}
	if err := os.WriteFile(c.TokenFile, []byte(token), 0o600); err != nil {
		return fmt.Errorf("トークンの保存に失敗: %w", err)
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hiscore", "token")
	}
	return filepath.Join(home, ".hiscore", "token")
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
