// Package ledger はハイスコアを保持する追記専用の台帳を提供する。
//
// エントリは一度追記されると更新も削除もされない。取得時はレベルで絞り込み、
// スコアの降順（同点は追記順）に並べた上でページ単位に切り出す。
//
// 実装は以下の3種類で、いずれも同じ並び順・ページング規則に従う。
//   - Memory: ミューテックスで保護したスライス（既定）
//   - SQLite: modernc.org/sqlite を用いたSQLテーブル
//   - Redis: レベルごとのリストとエントリ数カウンタ
package ledger
