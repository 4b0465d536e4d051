// Package leaderboard はアカウント認証とハイスコア台帳を公開するHTTPサービスを提供する。
//
// ログインで署名付きトークンを発行し、スコア送信時はそのトークンが示す
// identity と送信内容の identity が一致する場合のみ台帳へ追記する。
// スコアの取得は認証不要で、レベルごとにスコア降順・20件単位で返す。
//
// サインアップは入力形式の検証のみを行い、資格情報ストアには登録しない。
// ログインで参照する資格情報は起動時の設定で固定される。
package leaderboard
