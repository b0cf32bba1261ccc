// File: internal/service/session.go
package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
)

// SessionTTL bounds how long a login stays valid without re-authenticating.
const SessionTTL = 24 * time.Hour

const sessionKeyPrefix = "session:"

// newSessionID 產生 jti，測試可覆寫此變數。
var newSessionID = uuid.NewString

// Session 綁定一次請求與登入者的身份與角色
type Session struct {
	UserID int    `json:"id"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	JTI    string `json:"-"`
}

// SessionClaims 定義 JWT 負載內容
type SessionClaims struct {
	UserID int    `json:"id"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Session) IsAdmin() bool { return s.Role == model.RoleAdmin }

// AuthenticateUser 根據使用者結構和明文密碼驗證
func AuthenticateUser(ctx context.Context, user model.User, password string) (*model.User, error) {
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueSession signs a session token and registers its jti in the cache.
// The cache entry is what makes the session revocable: logout deletes it and
// the token dies immediately even though the JWT has not expired.
func IssueSession(ctx context.Context, rdb cache.Cache, user model.User, ttl time.Duration) (string, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return "", fmt.Errorf("SESSION_SECRET not set")
	}

	now := time.Now()
	jti := newSessionID()
	claims := SessionClaims{
		UserID: user.ID,
		Phone:  user.Phone,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.Phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	if err := rdb.Set(ctx, sessionKeyPrefix+jti, user.Phone, ttl).Err(); err != nil {
		return "", fmt.Errorf("IssueSession: %w", err)
	}
	return signed, nil
}

// VerifySession 驗證令牌簽章並確認 session 尚未被註銷
func VerifySession(ctx context.Context, rdb cache.Cache, tokenString string) (*Session, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if err := rdb.Get(ctx, sessionKeyPrefix+claims.ID).Err(); err != nil {
		return nil, fmt.Errorf("session revoked or expired")
	}

	return &Session{
		UserID: claims.UserID,
		Phone:  claims.Phone,
		Name:   claims.Name,
		Role:   claims.Role,
		JTI:    claims.ID,
	}, nil
}

// RevokeSession 註銷 session（登出）
func RevokeSession(ctx context.Context, rdb cache.Cache, s *Session) error {
	if err := rdb.Del(ctx, sessionKeyPrefix+s.JTI).Err(); err != nil {
		return fmt.Errorf("RevokeSession: %w", err)
	}
	return nil
}
