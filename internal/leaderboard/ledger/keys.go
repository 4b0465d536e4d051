package ledger

import "fmt"

// levelKey はレベルごとのエントリリストを格納するRedisキーを返す。
func levelKey(prefix, level string) string {
	return fmt.Sprintf("%s:scores:%s", prefix, level)
}

// countKey は台帳全体のエントリ数を格納するRedisキーを返す。
func countKey(prefix string) string {
	return fmt.Sprintf("%s:count", prefix)
}
