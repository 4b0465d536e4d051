// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// トークンの発行・検証（TokenService）とBearer認証（JWTAuth）、
// リクエストID付与、パニックリカバリ、CORS設定を含む。
package middleware
