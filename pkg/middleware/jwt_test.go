package middleware

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSecret はテスト用のトークンシークレット。
const testSecret = "test-secret-key-for-unit-tests"

// failingMethod は常に署名に失敗する署名方式。署名エラー経路の検証に使う。
type failingMethod struct{}

func (failingMethod) Alg() string { return "HS256" }

func (failingMethod) Sign(_ string, _ any) ([]byte, error) {
	return nil, errors.New("署名器の故障")
}

func (failingMethod) Verify(_ string, _ []byte, _ any) error {
	return errors.New("署名器の故障")
}

// flipChar はi番目の文字を別のbase64url文字に置き換えたトークンを返す。
// 区切り文字の場合は ok=false を返す。
func flipChar(token string, i int) (string, bool) {
	if token[i] == '.' {
		return "", false
	}
	replacement := byte('A')
	if token[i] == 'A' {
		replacement = 'B'
	}
	b := []byte(token)
	b[i] = replacement
	return string(b), true
}

// TestTokenService_Issue はトークン発行を検証する。
func TestTokenService_Issue(t *testing.T) {
	t.Parallel()

	t.Run("identityのみをクレームとするHS256トークンが発行されること", func(t *testing.T) {
		t.Parallel()

		ts := NewTokenService(testSecret)
		tokenStr, err := ts.Issue("DukeNukem")
		if err != nil {
			t.Fatalf("Issue()でエラーが発生: %v", err)
		}

		token, _, err := new(jwt.Parser).ParseUnverified(tokenStr, &IdentityClaims{})
		if err != nil {
			t.Fatalf("トークンのパースに失敗: %v", err)
		}
		if token.Method.Alg() != "HS256" {
			t.Errorf("署名アルゴリズム = %q, want %q", token.Method.Alg(), "HS256")
		}

		payload, err := base64.RawURLEncoding.DecodeString(strings.Split(tokenStr, ".")[1])
		if err != nil {
			t.Fatalf("ペイロードのデコードに失敗: %v", err)
		}
		var claims map[string]any
		if err := json.Unmarshal(payload, &claims); err != nil {
			t.Fatalf("ペイロードのパースに失敗: %v", err)
		}
		if len(claims) != 1 || claims["identity"] != "DukeNukem" {
			t.Errorf("claims = %v, want {identity: DukeNukem}", claims)
		}
	})

	t.Run("同じidentityで2回発行してもどちらも検証できること", func(t *testing.T) {
		t.Parallel()

		ts := NewTokenService(testSecret)
		for range 2 {
			tokenStr, err := ts.Issue("DukeNukem1")
			if err != nil {
				t.Fatalf("Issue()でエラーが発生: %v", err)
			}
			got, err := ts.Verify(tokenStr)
			if err != nil {
				t.Fatalf("Verify()でエラーが発生: %v", err)
			}
			if got != "DukeNukem1" {
				t.Errorf("identity = %q, want %q", got, "DukeNukem1")
			}
		}
	})

	t.Run("署名に失敗した場合ErrSigningが返ること", func(t *testing.T) {
		t.Parallel()

		ts := NewTokenService(testSecret)
		ts.method = failingMethod{}

		_, err := ts.Issue("DukeNukem")
		if !errors.Is(err, ErrSigning) {
			t.Errorf("err = %v, want ErrSigning", err)
		}
	})
}

// TestTokenService_Verify はトークン検証を検証する。
func TestTokenService_Verify(t *testing.T) {
	t.Parallel()

	ts := NewTokenService(testSecret)
	valid, err := ts.Issue("player-one")
	if err != nil {
		t.Fatalf("Issue()でエラーが発生: %v", err)
	}

	t.Run("発行したidentityがそのまま返ること", func(t *testing.T) {
		t.Parallel()

		got, err := ts.Verify(valid)
		if err != nil {
			t.Fatalf("Verify()でエラーが発生: %v", err)
		}
		if got != "player-one" {
			t.Errorf("identity = %q, want %q", got, "player-one")
		}
	})

	t.Run("トークンのどの1文字を変更しても検証に失敗すること", func(t *testing.T) {
		t.Parallel()

		for i := range len(valid) {
			tampered, ok := flipChar(valid, i)
			if !ok {
				continue
			}
			if _, err := ts.Verify(tampered); !errors.Is(err, ErrVerification) {
				t.Fatalf("位置%dの改ざんが検出されない: err = %v", i, err)
			}
		}
	})

	t.Run("identityを書き換えたペイロードは検証に失敗すること", func(t *testing.T) {
		t.Parallel()

		parts := strings.Split(valid, ".")
		parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"identity":"player-two"}`))
		if _, err := ts.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrVerification) {
			t.Errorf("err = %v, want ErrVerification", err)
		}
	})

	t.Run("異なるシークレットで署名されたトークンは検証に失敗すること", func(t *testing.T) {
		t.Parallel()

		other, err := NewTokenService("another-secret").Issue("player-one")
		if err != nil {
			t.Fatalf("Issue()でエラーが発生: %v", err)
		}
		if _, err := ts.Verify(other); !errors.Is(err, ErrVerification) {
			t.Errorf("err = %v, want ErrVerification", err)
		}
	})

	t.Run("alg=noneのトークンは検証に失敗すること", func(t *testing.T) {
		t.Parallel()

		token := jwt.NewWithClaims(jwt.SigningMethodNone, IdentityClaims{Identity: "player-one"})
		unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("署名なしトークンの生成に失敗: %v", err)
		}
		if _, err := ts.Verify(unsigned); !errors.Is(err, ErrVerification) {
			t.Errorf("err = %v, want ErrVerification", err)
		}
	})

	t.Run("identityクレームが空のトークンは検証に失敗すること", func(t *testing.T) {
		t.Parallel()

		empty, err := ts.Issue("")
		if err != nil {
			t.Fatalf("Issue()でエラーが発生: %v", err)
		}
		if _, err := ts.Verify(empty); !errors.Is(err, ErrVerification) {
			t.Errorf("err = %v, want ErrVerification", err)
		}
	})

	t.Run("形式が不正な文字列は検証に失敗すること", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "not-a-token", "a.b.c", "a.b"} {
			if _, err := ts.Verify(s); !errors.Is(err, ErrVerification) {
				t.Errorf("Verify(%q) err = %v, want ErrVerification", s, err)
			}
		}
	})
}

// TestJWTAuth はJWTAuthミドルウェアを検証する。
func TestJWTAuth(t *testing.T) {
	t.Parallel()

	ts := NewTokenService(testSecret)

	newRouter := func(captured *string) *gin.Engine {
		router := gin.New()
		router.Use(JWTAuth(ts))
		router.GET("/test", func(c *gin.Context) {
			*captured = GetIdentity(c)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("有効なトークンでidentityがコンテキストに設定されること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := ts.Issue("DukeNukem")
		if err != nil {
			t.Fatalf("Issue()でエラーが発生: %v", err)
		}

		var captured string
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		newRouter(&captured).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if captured != "DukeNukem" {
			t.Errorf("identity = %q, want %q", captured, "DukeNukem")
		}
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "Authorizationヘッダーがない場合401が返ること", header: ""},
		{name: "Bearer形式でない場合401が返ること", header: "Basic dXNlcjpwYXNz"},
		{name: "トークン部分が空の場合401が返ること", header: "Bearer "},
		{name: "不正なトークンの場合401が返ること", header: "Bearer invalid.token.value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var captured string
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(&captured).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			if captured != "" {
				t.Errorf("ハンドラが実行された: identity = %q", captured)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("レスポンスボディのパースに失敗: %v", err)
			}
			// 欠落と不正を区別しない
			if body["error"] != "unauthenticated" {
				t.Errorf("error = %q, want %q", body["error"], "unauthenticated")
			}
		})
	}
}

// TestGetIdentity はGetIdentity関数を検証する。
func TestGetIdentity(t *testing.T) {
	t.Parallel()

	t.Run("identityが未設定の場合は空文字列を返すこと", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if got := GetIdentity(c); got != "" {
			t.Errorf("GetIdentity() = %q, want empty", got)
		}
	})

	t.Run("identityが文字列以外の場合は空文字列を返すこと", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("identity", 12345)
		if got := GetIdentity(c); got != "" {
			t.Errorf("GetIdentity() = %q, want empty", got)
		}
	})
}
