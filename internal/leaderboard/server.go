package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nao1215/hiscore/internal/leaderboard/ledger"
	"github.com/nao1215/hiscore/pkg/metrics"
	"github.com/nao1215/hiscore/pkg/middleware"
)

// serviceName はヘルスチェックとメトリクスで使うサービス名。
const serviceName = "leaderboard"

// tokenIssuer はトークンの発行と検証を行う。
type tokenIssuer interface {
	Issue(identity string) (string, error)
	middleware.Verifier
}

// Server はリーダーボードサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// tokens はトークンの発行・検証を行う。
	tokens tokenIssuer
	// credentials はログインで照合する資格情報。
	credentials *CredentialStore
	// scores はハイスコア台帳。
	scores ledger.Ledger
	// metrics はPrometheusメトリクス。
	metrics *metrics.Metrics
	// pageSize はスコア取得時の1ページあたりの件数。
	pageSize int
}

// NewServer は設定と台帳から新しいリーダーボードサーバーを生成する。
// 台帳の所有権は呼び出し側に残り、Closeは呼び出し側が行う。
func NewServer(cfg Config, scores ledger.Ledger) (*Server, error) {
	if cfg.Secret == "" {
		return nil, errors.New("トークン署名用のシークレットが空です")
	}
	if scores == nil {
		return nil, errors.New("スコア台帳が指定されていません")
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = ledger.DefaultPageSize
	}
	if cfg.Secret == defaultSecret {
		log.Printf("[WARN] 開発用のトークンシークレットを使用しています。JWT_SECRETを設定してください")
	}

	m := metrics.New("hiscore")
	if err := m.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "hiscore",
		Name:      "ledger_entries",
		Help:      "Number of entries currently held by the score ledger.",
	}, func() float64 {
		n, err := scores.Count(context.Background())
		if err != nil {
			log.Printf("台帳の件数取得に失敗: %v", err)
			return 0
		}
		return float64(n)
	})); err != nil {
		return nil, fmt.Errorf("メトリクスの登録に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{"/health", "/metrics"}}))
	router.Use(m.Instrument())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router:      router,
		port:        cfg.Port,
		tokens:      middleware.NewTokenService(cfg.Secret),
		credentials: NewCredentialStore(cfg.Credentials),
		scores:      scores,
		metrics:     m,
		pageSize:    cfg.PageSize,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Handler はルーティング済みのHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// アカウント（認証不要）
	s.router.POST("/signup", s.handleSignup())
	s.router.POST("/login", s.handleLogin())

	// ハイスコア（送信のみ認証必須）
	s.router.GET("/high-scores", s.handleListScores())
	s.router.POST("/high-scores", middleware.JWTAuth(s.tokens), s.handleSubmitScore())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})

	// メトリクス
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}
