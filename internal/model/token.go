package model

// Token is the login response body, shaped like an OAuth2 password-flow grant.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
