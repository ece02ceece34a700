// File: internal/auth/oauth_service.go
package auth

import (
	"strings"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// OAuthService defines the interface for the external identity provider flow.
type OAuthService interface {
	GetGoogleLoginURL(c *gin.Context) (string, error)
	HandleGoogleCallback(c *gin.Context, code string, state string) (*shared.User, string, error)
}

type oauthService struct {
	cfg          *config.Config
	userService  shared.UserService
	tokenService shared.TokenService
	logger       *zap.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(
	cfg *config.Config,
	userService shared.UserService,
	tokenService shared.TokenService,
	logger *zap.Logger,
) OAuthService {
	return &oauthService{
		cfg:          cfg,
		userService:  userService,
		tokenService: tokenService,
		logger:       logger.Named("OAuthService"),
	}
}

// GetGoogleLoginURL generates the provider redirect URL for Google login.
func (s *oauthService) GetGoogleLoginURL(c *gin.Context) (string, error) {
	state, err := generateAndSetOAuthState(c, s.cfg)
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not initiate Google login.")
	}
	googleCfg := getGoogleOAuthConfig(s.cfg)
	return googleCfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// HandleGoogleCallback exchanges the provider code, resolves the profile and
// returns the local user together with a freshly issued credential.
func (s *oauthService) HandleGoogleCallback(c *gin.Context, code string, state string) (*shared.User, string, error) {
	storedState, err := getOAuthCookie(c, s.cfg, s.cfg.OAuthStateCookieName)
	if err != nil {
		s.logger.Warn("Missing OAuth state cookie on callback", zap.Error(err))
		return nil, "", common.ErrBadRequest.WithDetails("Invalid session or state mismatch.")
	}
	if state != storedState {
		s.logger.Warn("OAuth state mismatch",
			zap.String("received_state", state))
		return nil, "", common.ErrBadRequest.WithDetails("OAuth state mismatch.")
	}

	googleCfg := getGoogleOAuthConfig(s.cfg)
	ctx := c.Request.Context()

	token, err := googleCfg.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("Failed to exchange Google auth code", zap.Error(err))
		return nil, "", common.ErrServiceUnavailable.WithDetails("Could not exchange Google auth code.")
	}
	if !token.Valid() {
		s.logger.Error("Google token received is invalid")
		return nil, "", common.ErrServiceUnavailable.WithDetails("Received invalid token from Google.")
	}

	oauthAPI, err := goauth2.NewService(ctx, option.WithTokenSource(googleCfg.TokenSource(ctx, token)))
	if err != nil {
		s.logger.Error("Failed to build Google OAuth2 API client", zap.Error(err))
		return nil, "", common.ErrServiceUnavailable.WithDetails("Could not reach Google user info service.")
	}
	userInfo, err := oauthAPI.Userinfo.Get().Do()
	if err != nil {
		s.logger.Error("Failed to fetch user info from Google", zap.Error(err))
		return nil, "", common.ErrServiceUnavailable.WithDetails("Could not fetch user info from Google.")
	}

	profile := shared.OAuthUserProfile{
		Provider:      "google",
		ProviderID:    userInfo.Id,
		Email:         strings.ToLower(userInfo.Email),
		Name:          userInfo.Name,
		PictureURL:    userInfo.Picture,
		EmailVerified: userInfo.VerifiedEmail != nil && *userInfo.VerifiedEmail,
	}

	appUser, wasCreated, err := s.userService.FindOrCreateOAuthUser(ctx, profile)
	if err != nil {
		s.logger.Error("Failed to find or create user from Google profile", zap.Error(err))
		if _, ok := common.IsAPIError(err); ok {
			return nil, "", err
		}
		return nil, "", common.ErrInternalServer.WithDetails("Failed to process user account after Google login.")
	}

	credential, _, err := s.tokenService.GenerateToken(userDataAdapter{appUser})
	if err != nil {
		s.logger.Error("Failed to issue credential after Google login", zap.Error(err))
		return nil, "", common.ErrInternalServer.WithDetails("Could not issue credential.")
	}

	s.logger.Info("Google login completed",
		zap.String("userID", appUser.ID.String()),
		zap.Bool("wasCreated", wasCreated))
	return appUser, credential, nil
}

// userDataAdapter presents a shared.User as token-issuance input.
type userDataAdapter struct {
	u *shared.User
}

func (a userDataAdapter) GetID() uuid.UUID { return a.u.ID }
func (a userDataAdapter) GetEmail() string { return a.u.Email }
func (a userDataAdapter) GetRole() string  { return a.u.Role }
