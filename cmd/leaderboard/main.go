// リーダーボードサービスのエントリポイント。
// ログインによるトークン発行と、レベルごとのハイスコアの記録・取得を提供する。
// 台帳の保存先は LEDGER_BACKEND で memory / sqlite / redis から選択する。
package main

import (
	"context"
	"log"

	"github.com/nao1215/hiscore/internal/leaderboard"
	"github.com/nao1215/hiscore/internal/leaderboard/ledger"
)

func main() {
	cfg, err := leaderboard.LoadConfig()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	scores, err := ledger.Open(context.Background(), cfg.Ledger)
	if err != nil {
		log.Fatalf("スコア台帳の初期化に失敗: %v", err)
	}
	defer scores.Close()

	server, err := leaderboard.NewServer(cfg, scores)
	if err != nil {
		log.Fatalf("リーダーボードサーバーの初期化に失敗: %v", err)
	}

	log.Printf("リーダーボードサービスを起動します: :%s (ledger=%s)", cfg.Port, cfg.Ledger.Backend)
	if err := server.Run(); err != nil {
		log.Printf("リーダーボードサービスの起動に失敗: %v", err)
	}
}
