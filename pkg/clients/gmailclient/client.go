package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/denizocal/dutyroster/internal/config"
	"github.com/denizocal/dutyroster/pkg/utils"
)

// DefaultUserID is the Gmail account alias for the authenticated user,
// used when no explicit user ID is configured.
const DefaultUserID = "me"

// Client wraps the Gmail API client
type Client struct {
	service      *gmail.Service
	ctx          context.Context
	userID       string
	sender       string
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a new Gmail client using an existing OAuth token
// The token should already contain all necessary scopes (sheets, gmail)
// userID selects the Gmail account to send as, defaulting to the
// authenticated user; sender, when set, becomes the From header
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, userID, sender string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
		userID:  resolveUserID(userID),
		sender:  sender,
	}, nil
}

// resolveUserID substitutes the authenticated-user alias when no user
// ID is configured
func resolveUserID(userID string) string {
	if userID == "" {
		return DefaultUserID
	}
	return userID
}
