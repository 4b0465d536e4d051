// hiscoreコマンドのエントリポイント。
// 起動中のリーダーボードサービスに対してログインやスコアの送信・閲覧を行う。
package main

import (
	"os"

	"github.com/nao1215/hiscore/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
