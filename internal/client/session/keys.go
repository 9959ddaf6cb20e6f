package session

import "github.com/dmitrijs2005/billio/internal/common"

const (
	KeyAuthToken    = "authToken"
	KeyUser         = "user"
	KeyRememberMe   = "rememberMe"
	KeyLastActivity = "lastActivity"
)

// LoginLocation is where the client is sent after a session ends.
const LoginLocation = common.LoginLocation

var allKeys = []string{KeyAuthToken, KeyUser, KeyRememberMe, KeyLastActivity}
