package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSigning はトークンの署名処理そのものが失敗したことを表す。
	ErrSigning = errors.New("token signing failed")
	// ErrVerification はトークンの検証に失敗したことを表す。
	// 改ざん・形式不正・デコード失敗を区別しない。
	ErrVerification = errors.New("token verification failed")
)

// contextKeyIdentity は検証済みアイデンティティをGinコンテキストに格納するキー。
const contextKeyIdentity = "identity"

// reasonUnauthenticated は認証失敗時にクライアントへ返す理由。
// ヘッダー欠落とトークン不正を区別しない。
const reasonUnauthenticated = "unauthenticated"

// IdentityClaims はトークンに埋め込むクレーム。
// 登録済みクレームは設定しないため、ペイロードは identity のみになり有効期限も持たない。
type IdentityClaims struct {
	jwt.RegisteredClaims
	// Identity はトークン発行対象のユーザーハンドル。
	Identity string `json:"identity"`
}

// TokenService はプロセス共通のシークレットでトークンを発行・検証する。
// 状態を持たないため、複数のゴルーチンから同時に使用できる。
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenService はHS256で署名するTokenServiceを生成する。
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		method: jwt.SigningMethodHS256,
	}
}

// Issue はidentityを唯一のクレームとする署名済みトークンを発行する。
func (ts *TokenService) Issue(identity string) (string, error) {
	token := jwt.NewWithClaims(ts.method, IdentityClaims{Identity: identity})
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Verify はトークンの署名を検証し、埋め込まれたidentityを返す。
func (ts *TokenService) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{ts.method.Alg()}),
		jwt.WithStrictDecoding(),
	)

	claims := &IdentityClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return ts.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if !token.Valid || claims.Identity == "" {
		return "", ErrVerification
	}
	return claims.Identity, nil
}

// Verifier はトークンを検証してidentityを返す。TokenServiceが満たす。
type Verifier interface {
	Verify(tokenString string) (string, error)
}

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに "identity" を設定する。
func JWTAuth(tokens Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reasonUnauthenticated})
			return
		}

		identity, err := tokens.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reasonUnauthenticated})
			return
		}

		c.Set(contextKeyIdentity, identity)
		c.Next()
	}
}

// GetIdentity はGinコンテキストから検証済みidentityを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetIdentity(c *gin.Context) string {
	v, _ := c.Get(contextKeyIdentity)
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}
