package leaderboard

import (
	"math"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nao1215/hiscore/internal/leaderboard/ledger"
)

// minCredentialLength はidentityとsecretの最小文字数。
const minCredentialLength = 6

// timestampLayouts はスコアのtimestampとして受け入れるISO-8601形式。
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// credentialRequest は検証済みのログイン・サインアップ入力。
type credentialRequest struct {
	Identity string
	Secret   string
}

// validateLogin はログインのリクエストボディを検証する。
// identityとsecret以外のフィールドを含む場合は拒否する。
func validateLogin(raw map[string]any) (credentialRequest, error) {
	if hasExtraFields(raw, "identity", "secret") {
		return credentialRequest{}, invalidPayload("contains extra fields")
	}
	return validateCredentials(raw)
}

// validateSignup はサインアップのリクエストボディを検証する。
// 余分なフィールドは無視する。
func validateSignup(raw map[string]any) (credentialRequest, error) {
	return validateCredentials(raw)
}

func validateCredentials(raw map[string]any) (credentialRequest, error) {
	identity, secret := raw["identity"], raw["secret"]
	if falsy(identity) || falsy(secret) {
		return credentialRequest{}, invalidPayload("missing identity or secret")
	}

	id, idOK := identity.(string)
	sec, secOK := secret.(string)
	if !idOK || !secOK {
		return credentialRequest{}, invalidPayload("identity and secret must be strings")
	}

	if utf8.RuneCountInString(id) < minCredentialLength || utf8.RuneCountInString(sec) < minCredentialLength {
		return credentialRequest{}, invalidPayload("identity and secret must be at least 6 characters long")
	}
	return credentialRequest{Identity: id, Secret: sec}, nil
}

// validateScore はスコア送信のリクエストボディを検証し、台帳エントリに変換する。
func validateScore(raw map[string]any) (ledger.Entry, error) {
	if hasExtraFields(raw, "level", "identity", "score", "timestamp") {
		return ledger.Entry{}, invalidPayload("contains extra fields")
	}

	for _, key := range []string{"level", "identity", "score", "timestamp"} {
		if falsy(raw[key]) {
			return ledger.Entry{}, invalidPayload("missing required fields")
		}
	}

	level, levelOK := raw["level"].(string)
	identity, identityOK := raw["identity"].(string)
	score, scoreOK := raw["score"].(float64)
	timestamp, timestampOK := raw["timestamp"].(string)
	if !levelOK || !identityOK || !scoreOK || !timestampOK {
		return ledger.Entry{}, invalidPayload("incorrect data types")
	}

	if !isISO8601(timestamp) {
		return ledger.Entry{}, invalidPayload("incorrect timestamp format")
	}

	return ledger.Entry{
		Level:     level,
		Identity:  identity,
		Score:     score,
		Timestamp: timestamp,
	}, nil
}

// validateQuery はスコア取得のクエリパラメータを検証する。
// pageが未指定の場合は1ページ目とする。
func validateQuery(level, page string) (string, int, error) {
	if level == "" {
		return "", 0, invalidQuery("'level' is required")
	}
	if page == "" {
		return level, 1, nil
	}

	n, ok := leadingInt(page)
	if !ok || n < 1 {
		return "", 0, invalidQuery("'page' must be a positive integer")
	}
	return level, n, nil
}

// leadingInt は先頭の空白を除いた符号付き10進数字列を整数として読み取り、以降の文字は無視する。
// 数字が1つもない場合は ok=false を返す。intに収まらない値は同符号の最大値に丸める。
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		d := int(r - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + d
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		return -n, true
	}
	return n, true
}

// hasExtraFields は許可されたキー以外がrawに含まれるかを返す。
func hasExtraFields(raw map[string]any, allowed ...string) bool {
	for key := range raw {
		if !slices.Contains(allowed, key) {
			return true
		}
	}
	return false
}

// falsy はJSONから復元した値が「値なし」とみなされるかを返す。
// 未指定・null・false・空文字列・0 が該当する。
func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0
	default:
		return false
	}
}

// isISO8601 はsがISO-8601の日付または日時として解釈でき、暦として正しいかを返す。
func isISO8601(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
