// Package httpclient はリーダーボードAPIをJSONで呼び出すHTTPクライアントを提供する。
//
// hiscore CLIがサーバーと通信する際に使用する。コンテキストに設定した
// トークンはAuthorizationヘッダーのBearerトークンとして送信される。
package httpclient
