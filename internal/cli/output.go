package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// message はサーバーが返す {"message": ...} 形式のレスポンス。
type message struct {
	Message string `json:"message"`
}

// tokenResult はログインのレスポンス。
type tokenResult struct {
	Token string `json:"token"`
}

// scoreEntry はスコア一覧の1件。
type scoreEntry struct {
	Level     string  `json:"level"`
	Identity  string  `json:"identity"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

// healthResult はヘルスチェックのレスポンス。
type healthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// printer は設定された形式で結果を出力する。
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

// Print はdataを出力する。
func (p *printer) Print(data any) error {
	if p.format == outputJSON {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	switch v := data.(type) {
	case message:
		_, err := fmt.Fprintln(p.w, v.Message)
		return err
	case tokenResult:
		_, err := fmt.Fprintln(p.w, v.Token)
		return err
	case healthResult:
		_, err := fmt.Fprintf(p.w, "%s: %s\n", v.Service, v.Status)
		return err
	case []scoreEntry:
		return p.printScores(v)
	default:
		return fmt.Errorf("未対応の出力です: %T", data)
	}
}

func (p *printer) printScores(entries []scoreEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(p.w, "(no scores)")
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tIDENTITY\tSCORE\tTIMESTAMP")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Level, e.Identity, strconv.FormatFloat(e.Score, 'f', -1, 64), e.Timestamp)
	}
	return tw.Flush()
}
