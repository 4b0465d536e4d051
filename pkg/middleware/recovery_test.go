package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestRecovery はRecoveryミドルウェアを検証する。
func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("パニックが発生した場合500が返ること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID(), Recovery())
		router.GET("/panic", func(_ *gin.Context) {
			panic("テスト用パニック")
		})

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if body["error"] != "internal server error" {
			t.Errorf("error = %q, want %q", body["error"], "internal server error")
		}
		if id := w.Header().Get(HeaderRequestID); id == "" || body["request_id"] != id {
			t.Errorf("request_id = %q, want ヘッダーの値 %q", body["request_id"], id)
		}
	})

	t.Run("クライアント指定のリクエストIDが応答ボディに含まれること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID(), Recovery())
		router.POST("/high-scores", func(_ *gin.Context) {
			panic("ledger exploded")
		})

		req := httptest.NewRequest(http.MethodPost, "/high-scores", nil)
		req.Header.Set(HeaderRequestID, "trace-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if body["request_id"] != "trace-42" {
			t.Errorf("request_id = %q, want %q", body["request_id"], "trace-42")
		}
	})

	t.Run("RequestIDがない場合はrequest_idを含めないこと", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/panic", func(_ *gin.Context) {
			panic("no id")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if _, ok := body["request_id"]; ok {
			t.Errorf("request_idが含まれている: %v", body)
		}
	})

	t.Run("書き込み開始後のパニックでは既存のステータスが保たれること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID(), Recovery())
		router.GET("/partial", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("after write")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if w.Body.String() != "partial" {
			t.Errorf("body = %q, want %q", w.Body.String(), "partial")
		}
	})

	t.Run("パニックが発生しない場合は正常にレスポンスが返ること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
	})
}
