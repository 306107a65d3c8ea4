// Package loginfakes provides in-memory collaborator fakes for testing
// code built on the login package.
package loginfakes

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-login-manager/login"
)

var (
	_ login.UiFacade        = (*FakeUI)(nil)
	_ login.LoggerFacade    = (*FakeLogger)(nil)
	_ login.TokenExchanger  = (*FakeExchanger)(nil)
	_ login.IdentityService = (*FakeIdentity)(nil)
)

// FakeUI scripts the user's side of the login interactions and records what
// the manager asked of it.
type FakeUI struct {
	// VerificationCodes is consumed front to back by the browser flow; an
	// empty list simulates cancellation.
	VerificationCodes []string
	// LocalCode is returned by the local-server flow; nil simulates
	// cancellation.
	LocalCode *login.VerificationCode
	// YesOrNoAnswer scripts confirmation prompts.
	YesOrNoAnswer bool

	AuthURLs       []string
	ErrorDialogs   []string
	QuestionsAsked []string
	StatusNotified int
}

func (ui *FakeUI) ObtainVerificationCodeViaBrowser(_, authURL string) string {
	ui.AuthURLs = append(ui.AuthURLs, authURL)
	if len(ui.VerificationCodes) == 0 {
		return ""
	}
	code := ui.VerificationCodes[0]
	ui.VerificationCodes = ui.VerificationCodes[1:]
	return code
}

func (ui *FakeUI) ObtainVerificationCodeViaLocalServer(string) *login.VerificationCode {
	return ui.LocalCode
}

func (ui *FakeUI) ShowErrorDialog(title, message string) {
	ui.ErrorDialogs = append(ui.ErrorDialogs, title+": "+message)
}

func (ui *FakeUI) AskYesOrNo(title, message string) bool {
	ui.QuestionsAsked = append(ui.QuestionsAsked, title+": "+message)
	return ui.YesOrNoAnswer
}

func (ui *FakeUI) NotifyStatusIndicator() {
	ui.StatusNotified++
}

// FakeLogger records log entries.
type FakeLogger struct {
	ErrorsLogged []string
	Warnings     []string
}

func (l *FakeLogger) LogError(message string, cause error) {
	entry := message
	if cause != nil {
		entry += ": " + cause.Error()
	}
	l.ErrorsLogged = append(l.ErrorsLogged, entry)
}

func (l *FakeLogger) LogWarning(message string) {
	l.Warnings = append(l.Warnings, message)
}

// FakeExchanger maps verification codes to scripted tokens.
type FakeExchanger struct {
	// Tokens is keyed by verification code.
	Tokens      map[string]*oauth2.Token
	ExchangeErr error

	RefreshedToken *oauth2.Token
	RefreshErr     error

	ExchangedCodes  []string
	RefreshedTokens []string
}

func (e *FakeExchanger) AuthCodeURL(state, redirectURL string) string {
	return "https://auth.example.com/o/oauth2/auth?state=" + state + "&redirect_uri=" + redirectURL
}

func (e *FakeExchanger) Exchange(_ context.Context, code, _ string) (*oauth2.Token, error) {
	e.ExchangedCodes = append(e.ExchangedCodes, code)
	if e.ExchangeErr != nil {
		return nil, &login.IOError{Err: e.ExchangeErr}
	}
	token, ok := e.Tokens[code]
	if !ok {
		return nil, &login.IOError{Err: errInvalidCode}
	}
	return token, nil
}

func (e *FakeExchanger) Refresh(_ context.Context, refreshToken string) (*oauth2.Token, error) {
	e.RefreshedTokens = append(e.RefreshedTokens, refreshToken)
	if e.RefreshErr != nil {
		return nil, &login.IOError{Err: e.RefreshErr}
	}
	return e.RefreshedToken, nil
}

// FakeIdentity maps access tokens to scripted profiles. An unknown token
// yields login.ErrEmailNotReturned.
type FakeIdentity struct {
	Profiles map[string]*login.Profile
	Err      error
	Queried  int
}

var errInvalidCode = errors.New("invalid verification code")

func (i *FakeIdentity) UserInfo(_ context.Context, token *oauth2.Token) (*login.Profile, error) {
	i.Queried++
	if i.Err != nil {
		return nil, i.Err
	}
	profile, ok := i.Profiles[token.AccessToken]
	if !ok {
		return nil, login.ErrEmailNotReturned
	}
	return profile, nil
}
