package leaderboard

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/hiscore/pkg/middleware"
)

// bindObject はリクエストボディをJSONオブジェクトとして読み込む。
// 数値はfloat64として復元される。
func bindObject(c *gin.Context) (map[string]any, error) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, invalidPayload("body must be a JSON object")
	}
	return raw, nil
}

// handleSignup はサインアップを処理するハンドラを返す。
// 入力形式の検証のみ行い、資格情報ストアには登録しない。
func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bindObject(c)
		if err != nil {
			respondError(c, err)
			return
		}

		if _, err := validateSignup(raw); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "user successfully registered"})
	}
}

// handleLogin はログインを処理するハンドラを返す。
// 資格情報が一致した場合、identityを唯一のクレームとするトークンを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bindObject(c)
		if err != nil {
			respondError(c, err)
			return
		}

		req, err := validateLogin(raw)
		if err != nil {
			respondError(c, err)
			return
		}

		cred, ok := s.credentials.Find(req.Identity, req.Secret)
		if !ok {
			respondError(c, ErrInvalidCredentials)
			return
		}

		token, err := s.tokens.Issue(cred.Identity)
		if err != nil {
			log.Printf("トークン生成エラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
			respondError(c, ErrInternal)
			return
		}
		s.metrics.TokensIssued.Inc()

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// handleSubmitScore はハイスコア送信を処理するハンドラを返す。
// 送信内容のidentityがトークンのidentityと一致する場合のみ台帳に追記する。
func (s *Server) handleSubmitScore() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := middleware.GetIdentity(c)
		if caller == "" {
			respondError(c, ErrUnauthenticated)
			return
		}

		raw, err := bindObject(c)
		if err != nil {
			respondError(c, err)
			return
		}

		entry, err := validateScore(raw)
		if err != nil {
			respondError(c, err)
			return
		}

		if entry.Identity != caller {
			s.metrics.ScoresRejected.Inc()
			respondError(c, ErrUnauthorized)
			return
		}

		if err := s.scores.Append(c.Request.Context(), entry); err != nil {
			log.Printf("スコア追記エラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
			respondError(c, ErrInternal)
			return
		}
		s.metrics.ScoresSubmitted.Inc()

		c.JSON(http.StatusCreated, gin.H{"message": "high score recorded successfully"})
	}
}

// handleListScores はハイスコア取得を処理するハンドラを返す。
// 指定レベルのスコアを降順に並べ、pageで指定されたページを返す。
func (s *Server) handleListScores() gin.HandlerFunc {
	return func(c *gin.Context) {
		level, page, err := validateQuery(c.Query("level"), c.Query("page"))
		if err != nil {
			respondError(c, err)
			return
		}

		entries, err := s.scores.Query(c.Request.Context(), level, page, s.pageSize)
		if err != nil {
			log.Printf("スコア取得エラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
			respondError(c, ErrInternal)
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}
