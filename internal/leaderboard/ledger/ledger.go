package ledger

import (
	"cmp"
	"context"
	"math"
	"slices"
)

// DefaultPageSize は1ページあたりの既定エントリ数。
const DefaultPageSize = 20

// Entry はハイスコア1件を表す。保存後は不変。
type Entry struct {
	// Level はスコアを記録したレベル名。大文字小文字を区別する。
	Level string `json:"level"`
	// Identity はスコアを送信したユーザーハンドル。
	Identity string `json:"identity"`
	// Score は獲得スコア。
	Score float64 `json:"score"`
	// Timestamp はクライアントが送信したISO-8601形式の日時文字列。
	Timestamp string `json:"timestamp"`
}

// Ledger はハイスコア台帳の操作を定義する。
// Append は読み取り側から見て原子的でなければならない。
type Ledger interface {
	// Append はエントリを無条件に追記する。内容の検証は呼び出し側の責務。
	Append(ctx context.Context, e Entry) error
	// Query は指定レベルのエントリをスコア降順で並べ、page番目（1始まり）を返す。
	// 範囲外のページは空スライスを返す。
	Query(ctx context.Context, level string, page, pageSize int) ([]Entry, error)
	// Count は台帳全体のエントリ数を返す。
	Count(ctx context.Context) (int, error)
	// Close は台帳が保持するリソースを解放する。
	Close() error
}

// offset はページ番号から先頭位置を計算する。
// 計算結果がintに収まらない場合や引数が不正な場合は ok=false を返す。
func offset(page, pageSize int) (int, bool) {
	if page < 1 || pageSize < 1 {
		return 0, false
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}

// rank はエントリをスコアの降順に並べ替える。同点は元の順序を保つ。
func rank(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// paginate は並べ替え済みのエントリからページを切り出す。
func paginate(entries []Entry, page, pageSize int) []Entry {
	start, ok := offset(page, pageSize)
	if !ok || start >= len(entries) {
		return []Entry{}
	}
	end := min(start+pageSize, len(entries))
	return slices.Clone(entries[start:end])
}
