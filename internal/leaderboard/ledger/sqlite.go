package ledger

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nao1215/hiscore/pkg/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite はSQLiteテーブルに保持する台帳。
type SQLite struct {
	db *sql.DB
}

var _ Ledger = (*SQLite)(nil)

// NewSQLite はSQLite台帳を開き、スキーマのマイグレーションを適用する。
// dsnに ":memory:" を指定するとプロセス内でのみ有効な台帳になる。
func NewSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// 書き込みを直列化する。:memory: は接続ごとに別DBになるためでもある
	db.SetMaxOpenConns(1)

	if _, err := migration.Run(ctx, db, migrationsFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Append はエントリを1行挿入する。
func (s *SQLite) Append(ctx context.Context, e Entry) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (level, identity, score, timestamp) VALUES (?, ?, ?, ?)`,
		e.Level, e.Identity, e.Score, e.Timestamp,
	); err != nil {
		return fmt.Errorf("スコアの挿入に失敗: %w", err)
	}
	return nil
}

// Query は指定レベルのエントリを1ページ分返す。
func (s *SQLite) Query(ctx context.Context, level string, page, pageSize int) ([]Entry, error) {
	start, ok := offset(page, pageSize)
	if !ok {
		return []Entry{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT level, identity, score, timestamp FROM scores
		 WHERE level = ?
		 ORDER BY score DESC, seq ASC
		 LIMIT ? OFFSET ?`,
		level, pageSize, start,
	)
	if err != nil {
		return nil, fmt.Errorf("スコアの取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Level, &e.Identity, &e.Score, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("スコア行の読み取りに失敗: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("スコアの取得に失敗: %w", err)
	}
	return entries, nil
}

// Count は保持しているエントリ数を返す。
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("件数の取得に失敗: %w", err)
	}
	return n, nil
}

// Close はデータベース接続を閉じる。
func (s *SQLite) Close() error {
	return s.db.Close()
}
