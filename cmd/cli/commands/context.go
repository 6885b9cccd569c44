package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/denizocal/dutyroster/internal/config"
	"github.com/denizocal/dutyroster/pkg/clients/gmailclient"
	"github.com/denizocal/dutyroster/pkg/clients/sheetsclient"
	"github.com/denizocal/dutyroster/pkg/core/model"
	"github.com/denizocal/dutyroster/pkg/db"
	"github.com/denizocal/dutyroster/pkg/utils"
)

// Store groups the database operations the commands need
type Store interface {
	db.StaffStore
	db.RosterStore
}

// AppContext holds the application dependencies shared by all commands
type AppContext struct {
	Ctx      context.Context
	Env      string
	Cfg      *config.Config
	Settings model.Settings
	Database Store
	Logger   *zap.Logger

	// Google clients are built on first use so commands that only touch
	// the database never trigger the OAuth flow
	oauthCfg     *config.OAuthClientConfig
	token        *oauth2.Token
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
}

// authToken performs the OAuth flow once and caches the token for every
// Google client of this session
func (a *AppContext) authToken() (*oauth2.Token, error) {
	if a.token != nil {
		return a.token, nil
	}

	if a.oauthCfg == nil {
		oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		a.oauthCfg = oauthCfg
	}

	oauthConfig, err := utils.GetOAuthConfig(a.oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(a.Ctx, oauthConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	a.token = token
	return token, nil
}

// SheetsClient returns the Sheets client, authenticating on first use
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	token, err := a.authToken()
	if err != nil {
		return nil, err
	}

	client, err := sheetsclient.NewClientWithToken(a.Ctx, a.oauthCfg, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	a.sheetsClient = client
	return client, nil
}

// GmailClient returns the Gmail client, authenticating on first use
func (a *AppContext) GmailClient() (*gmailclient.Client, error) {
	if a.gmailClient != nil {
		return a.gmailClient, nil
	}

	token, err := a.authToken()
	if err != nil {
		return nil, err
	}

	client, err := gmailclient.NewClient(a.Ctx, a.oauthCfg, token, a.Cfg.GmailUserID, a.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	a.gmailClient = client
	return client, nil
}
