package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery はハンドラ内のパニックを500応答に変換するGinミドルウェアを返す。
//
// ログにはRequestIDミドルウェアが割り当てたリクエストIDとスタックトレースを残し、
// 応答ボディにも同じIDを含める。クライアントが報告したIDからログを引けるようにするため、
// RequestIDより後に登録すること。
// 応答の書き込みが始まった後のパニックでは、ステータスを変更できないため処理の中断のみ行う。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			requestID := GetRequestID(c)
			log.Printf("[PANIC] request_id=%s %s %s: %v\n%s", requestID, c.Request.Method, c.Request.URL.Path, r, debug.Stack())

			if c.Writer.Written() {
				c.Abort()
				return
			}
			body := gin.H{"error": "internal server error"}
			if requestID != "" {
				body["request_id"] = requestID
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()
		c.Next()
	}
}
