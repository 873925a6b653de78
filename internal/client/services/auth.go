package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/practicum/internal/client/apiclient"
	"github.com/dmitrijs2005/practicum/internal/client/models"
	"github.com/dmitrijs2005/practicum/internal/client/tokenstore"
	"github.com/dmitrijs2005/practicum/internal/common"
	"github.com/dmitrijs2005/practicum/internal/logging"
)

const (
	loginPath = "/accounts/login/"
	mePath    = "/accounts/me/"
)

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for tokens and persist them with the user.
//   - Logout: wipe every stored credential slot.
//   - Me: fetch the current profile from the server.
//   - Landing: pick the area to open after login based on the role.
//   - CurrentUser: the profile cached at login, nil when logged out.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Landing(ctx context.Context) string
	CurrentUser(ctx context.Context) (*models.User, error)
	LoggedIn(ctx context.Context) bool
}

type authService struct {
	api   API
	store tokenstore.Store
	log   logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// credential store.
func NewAuthService(api API, store tokenstore.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{api: api, store: store, log: log}
}

// loginResponse covers both shapes the server has used: a single token, or
// an access/refresh pair.
type loginResponse struct {
	User    models.User `json:"user"`
	Token   string      `json:"token"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

func (r loginResponse) accessToken() string {
	if r.Access != "" {
		return r.Access
	}
	return r.Token
}

// Login is sent already marked as retried: a 401 here means bad credentials,
// not an expired session.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return nil, common.ErrEmptyCredentials
	}

	body, err := json.Marshal(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, string(password)})
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}
	defer common.WipeByteArray(body)

	resp, err := a.api.Do(ctx, &apiclient.Request{
		Method:  http.MethodPost,
		Path:    loginPath,
		Body:    body,
		Retried: true,
	})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	var lr loginResponse
	if err := resp.Decode(&lr); err != nil {
		return nil, err
	}
	access := lr.accessToken()
	if access == "" {
		return nil, fmt.Errorf("login error: %w", common.ErrNoAccessToken)
	}

	// A stale refresh token from an earlier session must not survive a
	// single-token login.
	if err := a.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear credentials: %w", err)
	}
	if err := a.store.SetTokens(ctx, access, lr.Refresh); err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}
	user, err := json.Marshal(lr.User)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	if err := a.store.SetUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	a.api.SetDefaultAuthorization(access)

	a.log.Info(ctx, "logged in", "user", lr.User.Username, "role", lr.User.Role)
	return &lr.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.api.SetDefaultAuthorization("")
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.api.Get(ctx, mePath, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Landing returns the admin area for admins and the programs list for
// everyone else, including when the profile cannot be fetched.
func (a *authService) Landing(ctx context.Context) string {
	u, err := a.Me(ctx)
	if err != nil {
		a.log.Warn(ctx, "profile lookup failed", "error", err)
		return common.ExaminerLanding
	}
	if u.Role == common.RoleAdmin {
		return common.AdminLanding
	}
	return common.ExaminerLanding
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := a.store.User(ctx)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, nil
}

func (a *authService) LoggedIn(ctx context.Context) bool {
	tok, err := a.store.AccessToken(ctx)
	if err != nil {
		a.log.Warn(ctx, "read access token", "error", err)
		return false
	}
	return tok != ""
}
