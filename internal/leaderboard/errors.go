package leaderboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	// ErrUnauthenticated は認証済みidentityがコンテキストに存在しないことを表す。
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized は他人のidentityでスコアを送信しようとしたことを表す。
	ErrUnauthorized = errors.New("unauthorized: you may only submit scores for yourself")
	// ErrInvalidCredentials はidentityとsecretの組が一致しなかったことを表す。
	ErrInvalidCredentials = errors.New("unauthorized: incorrect identity or secret")
	// ErrInternal はトークン署名や台帳操作などサーバー内部の失敗を表す。
	ErrInternal = errors.New("internal server error")
)

// ValidationError は入力の形式・型・値が不正であることを表す。
type ValidationError struct {
	// Reason はクライアントに返す理由。
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// invalidPayload はリクエストボディに対するValidationErrorを生成する。
func invalidPayload(reason string) *ValidationError {
	return &ValidationError{Reason: "invalid request payload: " + reason}
}

// invalidQuery はクエリパラメータに対するValidationErrorを生成する。
func invalidQuery(reason string) *ValidationError {
	return &ValidationError{Reason: "invalid request: " + reason}
}

// statusOf はエラーに対応するHTTPステータスコードを返す。
func statusOf(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError はエラーをステータスコードと {"error": 理由} に変換して応答する。
// 内部エラーの詳細はクライアントに返さない。
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	reason := err.Error()
	if status == http.StatusInternalServerError {
		reason = ErrInternal.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": reason})
}
