package util

import (
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/pkg/config"
	"github.com/riskbases/riskbases/pkg/logutils"
)

type (
	JWTClaims struct {
		UserID        uint       `json:"ui"`
		WorkspaceID   uint       `json:"wi"`
		Username      string     `json:"un"`
		WorkspaceName string     `json:"wn"`
		RoleWorkspace model.Role `json:"rw"`
		RolePlatform  model.Role `json:"rp"`
		jwt.RegisteredClaims
	}
	JWTMessage struct {
		UserID        uint       `json:"userID"`
		WorkspaceID   uint       `json:"workspaceID"` // 0 until a workspace is selected
		Username      string     `json:"username"`
		WorkspaceName string     `json:"workspaceName"`
		RoleWorkspace model.Role `json:"roleWorkspace"` // role inside the selected workspace
		RolePlatform  model.Role `json:"rolePlatform"`  // role on the platform (guest, user, admin)
	}
)

type TokenManager struct {
	accessSecret    string
	refreshSecret   string
	accessTokenTTL  int
	refreshTokenTTL int
}

var (
	once     sync.Once
	tokenMgr *TokenManager
)

func GetTokenMgr() *TokenManager {
	once.Do(func() {
		authConfig := config.GetConfig().Auth
		tokenMgr = newTokenManager(
			authConfig.AccessTokenSecret,
			authConfig.RefreshTokenSecret,
			authConfig.AccessTokenExpiryHour,
			authConfig.RefreshTokenExpiryHour,
		)
	})
	return tokenMgr
}

func newTokenManager(accessSecret, refreshSecret string, accessTokenTTL, refreshTokenTTL int) *TokenManager {
	return &TokenManager{
		accessSecret:    accessSecret,
		refreshSecret:   refreshSecret,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (tm *TokenManager) createToken(msg *JWTMessage, secret string, ttl int) (string, error) {
	expiresAt := time.Now().Add(time.Hour * time.Duration(ttl))

	claims := &JWTClaims{
		UserID:        msg.UserID,
		WorkspaceID:   msg.WorkspaceID,
		Username:      msg.Username,
		WorkspaceName: msg.WorkspaceName,
		RoleWorkspace: msg.RoleWorkspace,
		RolePlatform:  msg.RolePlatform,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// CreateTokens creates a new access token and a new refresh token
func (tm *TokenManager) CreateTokens(msg *JWTMessage) (
	accessToken string, refreshToken string, err error) {
	accessToken, err = tm.createToken(msg, tm.accessSecret, tm.accessTokenTTL)
	if err != nil {
		logutils.Log.Error(err)
		return "", "", err
	}
	refreshToken, err = tm.createToken(msg, tm.refreshSecret, tm.refreshTokenTTL)
	if err != nil {
		logutils.Log.Error(err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (tm *TokenManager) checkToken(requestToken, secret string) (JWTMessage, error) {
	claims := JWTClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	return JWTMessage{
		UserID:        claims.UserID,
		WorkspaceID:   claims.WorkspaceID,
		Username:      claims.Username,
		WorkspaceName: claims.WorkspaceName,
		RoleWorkspace: claims.RoleWorkspace,
		RolePlatform:  claims.RolePlatform,
	}, err
}

func (tm *TokenManager) CheckToken(requestToken string) (JWTMessage, error) {
	return tm.checkToken(requestToken, tm.accessSecret)
}

func (tm *TokenManager) CheckRefreshToken(requestToken string) (JWTMessage, error) {
	return tm.checkToken(requestToken, tm.refreshSecret)
}
