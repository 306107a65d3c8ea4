// Package login drives OAuth2-authenticated account sessions for desktop
// tool integrations: browser-driven login, multi-account switching, token
// refresh, and persistent credential storage. Platform specifics (UI,
// logging, durable storage) are supplied through narrow collaborator
// interfaces.
package login

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-login-manager/account"
	"github.com/jrsteele09/go-login-manager/oauthdata"
)

// OOBRedirectURL is the out-of-band redirect used by the manual
// copy-the-code browser flow.
const OOBRedirectURL = "urn:ietf:wg:oauth:2.0:oob"

// Config holds the OAuth2 client settings a Manager is constructed with.
type Config struct {
	ClientID     string
	ClientSecret string
	// Scopes is the required scope set. Persisted records whose granted
	// scopes differ from it are discarded at startup.
	Scopes   []string
	Endpoint oauth2.Endpoint
	// RedirectURL is used by the manual browser flow; defaults to
	// OOBRedirectURL.
	RedirectURL string
}

// Collaborators holds the platform-specific dependencies of a Manager.
type Collaborators struct {
	Store    oauthdata.Store
	UI       UiFacade
	Logger   LoggerFacade
	Identity IdentityService
	// Exchanger is optional and defaults to the x/oauth2 implementation
	// built from the Config.
	Exchanger TokenExchanger
}

// Manager drives login, logout, account switching, token refresh, and
// persistence reconciliation for a set of logged-in accounts, and notifies
// registered listeners of changes.
//
// A Manager is not internally thread-safe: the embedding application must
// serialize all calls into one instance, e.g. via a single dispatch
// goroutine. The listener registration list is the single exception and may
// be used concurrently. Side effects always happen in the order roster
// mutation, persistence, UI status refresh, listener notification, so
// listeners only ever observe state that is already durable.
type Manager struct {
	cfg       Config
	collab    Collaborators
	roster    *account.Roster
	listeners listenerList
	nowTime   func() time.Time
}

// Option modifies a Manager at construction time.
type Option func(*Manager)

// WithNowTime sets the clock (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// New validates the collaborators, builds the Manager, and runs startup
// reconciliation: previously persisted records are loaded, records that fail
// validation against the configured scope set are discarded from the store,
// and the survivors enter the roster as logged-in accounts.
func New(ctx context.Context, cfg Config, collab Collaborators, options ...Option) (*Manager, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("[login.New] ClientID is required")
	}
	if collab.Store == nil {
		return nil, errors.New("[login.New] Store collaborator is required")
	}
	if collab.UI == nil {
		return nil, errors.New("[login.New] UI collaborator is required")
	}
	if collab.Logger == nil {
		return nil, errors.New("[login.New] Logger collaborator is required")
	}
	if collab.Identity == nil {
		return nil, errors.New("[login.New] Identity collaborator is required")
	}
	if collab.Exchanger == nil {
		collab.Exchanger = NewExchanger(cfg.ClientID, cfg.ClientSecret, cfg.Scopes, cfg.Endpoint)
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = OOBRedirectURL
	}

	m := &Manager{
		cfg:     cfg,
		collab:  collab,
		roster:  account.NewRoster(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}

	if err := m.retrieveSavedCredentials(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// AddLoginListener registers a listener for logged-in state changes. Safe to
// call concurrently with notification dispatch.
func (m *Manager) AddLoginListener(listener LoginListener) {
	m.listeners.add(listener)
}

// IsLoggedIn reports whether at least one account is logged in.
func (m *Manager) IsLoggedIn() bool {
	return !m.roster.IsEmpty()
}

// Login conducts the manual browser flow: the UI collaborator sends the user
// to the authorization URL and returns the verification code the user
// brought back. Returns true if an account is signed in afterwards. A
// cancelled interaction or any exchange/identity/persistence failure leaves
// roster and store exactly as they were and returns false; failures are
// logged and surfaced through the UI collaborator, never propagated.
func (m *Manager) Login(ctx context.Context, title string) bool {
	state := uuid.New().String()
	authURL := m.collab.Exchanger.AuthCodeURL(state, m.cfg.RedirectURL)

	code := m.collab.UI.ObtainVerificationCodeViaBrowser(title, authURL)
	if code == "" {
		return false
	}
	return m.logInWithCode(ctx, code, m.cfg.RedirectURL)
}

// LoginWithLocalServer conducts the local-callback-listener flow: the UI
// collaborator owns a loopback listener and supplies both the verification
// code and the redirect URL it listened on. Semantics otherwise match Login.
func (m *Manager) LoginWithLocalServer(ctx context.Context, title string) bool {
	holder := m.collab.UI.ObtainVerificationCodeViaLocalServer(title)
	if holder == nil {
		return false
	}
	return m.logInWithCode(ctx, holder.Code, holder.RedirectURL)
}

func (m *Manager) logInWithCode(ctx context.Context, code, redirectURL string) bool {
	token, err := m.collab.Exchanger.Exchange(ctx, code, redirectURL)
	if err != nil {
		m.reportLoginFailure(err)
		return false
	}

	profile := profileFromIDToken(token)
	if profile == nil {
		profile, err = m.collab.Identity.UserInfo(ctx, token)
		if err != nil {
			m.reportLoginFailure(err)
			return false
		}
	}

	acct := account.Account{
		Email:             profile.Email,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
		AccessTokenExpiry: expiryUnix(token),
		Name:              profile.Name,
		AvatarURL:         profile.AvatarURL,
	}

	prior, hadPrior := m.roster.Get(acct.Email)
	priorActive, hadActive := m.roster.ActiveEmail()

	m.roster.Add(acct)
	if err := m.persistAccount(ctx, acct); err != nil {
		// Roll the roster back so a failed attempt adds no partial account.
		m.roster.Remove(acct.Email)
		if hadPrior {
			m.roster.Add(prior)
		}
		if hadActive {
			m.roster.SwitchActive(priorActive)
		}
		m.reportLoginFailure(err)
		return false
	}

	m.collab.UI.NotifyStatusIndicator()
	m.notifyLoginStatusChange()
	return true
}

func (m *Manager) reportLoginFailure(err error) {
	m.collab.UI.ShowErrorDialog(
		"Error while signing in",
		"An error occurred while trying to sign in: "+err.Error())
	m.collab.Logger.LogError("could not sign in", err)
}

// LogOut signs out the active account only, removing its persisted record
// and promoting a remaining account if there is one. Returns true trivially
// when nothing is logged in. With showPrompt, a "no" answer aborts with no
// state change.
func (m *Manager) LogOut(ctx context.Context, showPrompt bool) bool {
	if !m.IsLoggedIn() {
		return true
	}
	if showPrompt && !m.collab.UI.AskYesOrNo("Sign out?", "Are you sure you want to sign out?") {
		return false
	}

	email := m.roster.Active().Email
	m.roster.Remove(email)
	if err := m.collab.Store.Remove(ctx, email); err != nil {
		m.collab.Logger.LogError("could not remove stored credentials", err)
	}

	m.collab.UI.NotifyStatusIndicator()
	m.notifyLoginStatusChange()
	return true
}

// LogOutAll signs out every account: the roster is cleared and the entire
// persisted store namespace is wiped. Returns true trivially when nothing is
// logged in. With showPrompt, a "no" answer aborts with no state change.
func (m *Manager) LogOutAll(ctx context.Context, showPrompt bool) bool {
	if !m.IsLoggedIn() {
		return true
	}
	if showPrompt && !m.collab.UI.AskYesOrNo("Sign out?", "Are you sure you want to sign out of all accounts?") {
		return false
	}

	m.roster.Clear()
	if err := m.collab.Store.ClearAll(ctx); err != nil {
		m.collab.Logger.LogError("could not clear stored credentials", err)
	}

	m.collab.UI.NotifyStatusIndicator()
	m.notifyLoginStatusChange()
	return true
}

// RemoveAccount signs out one account wherever it is in the roster and
// deletes its persisted record. Reports whether the account existed.
func (m *Manager) RemoveAccount(ctx context.Context, email string) bool {
	if !m.roster.Remove(email) {
		return false
	}
	if err := m.collab.Store.Remove(ctx, email); err != nil {
		m.collab.Logger.LogError("could not remove stored credentials", err)
	}

	m.collab.UI.NotifyStatusIndicator()
	m.notifyLoginStatusChange()
	return true
}

// SwitchActiveAccount marks the account with the given email active and
// reports whether it was found. Only on success are credentials re-persisted
// and listeners notified; an unknown email changes nothing and notifies
// nobody.
func (m *Manager) SwitchActiveAccount(ctx context.Context, email string) bool {
	if !m.roster.SwitchActive(email) {
		return false
	}
	if err := m.persistAccount(ctx, m.roster.Active()); err != nil {
		m.collab.Logger.LogError("could not persist credentials", err)
	}

	m.collab.UI.NotifyStatusIndicator()
	m.notifyLoginStatusChange()
	return true
}

// ListAccounts returns a UI-facing snapshot of the logged-in accounts with
// the active account distinguished. The snapshot is a detached copy.
func (m *Manager) ListAccounts() account.Snapshot {
	return m.roster.Snapshot()
}

// ActiveCredential returns a freshly built credential for the active
// account, or nil when logged out. Mutating the returned token never affects
// manager state.
func (m *Manager) ActiveCredential() *oauth2.Token {
	if !m.IsLoggedIn() {
		return nil
	}
	return m.roster.Active().Credential()
}

// QueryUserInfo resolves the identity behind the active account's current
// access token through the identity collaborator.
func (m *Manager) QueryUserInfo(ctx context.Context) (*Profile, error) {
	if !m.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return m.collab.Identity.UserInfo(ctx, m.roster.Active().Credential())
}

// AccessToken returns a valid access token for the active account,
// synchronously refreshing it first when it is expired or of unknown age. A
// refresh always re-saves the affected record in full.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	if !m.IsLoggedIn() {
		return "", ErrNotLoggedIn
	}

	acct := m.roster.Active()
	if !acct.Expired(m.nowTime().Unix()) {
		return acct.AccessToken, nil
	}
	return m.refreshActiveToken(ctx)
}

func (m *Manager) refreshActiveToken(ctx context.Context) (string, error) {
	acct := m.roster.Active()
	token, err := m.collab.Exchanger.Refresh(ctx, acct.RefreshToken)
	if err != nil {
		m.collab.Logger.LogError("could not obtain an OAuth2 access token", err)
		return "", errors.Wrap(err, "[Manager.refreshActiveToken] exchanger.Refresh")
	}

	acct.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		acct.RefreshToken = token.RefreshToken
	}
	acct.AccessTokenExpiry = expiryUnix(token)

	m.roster.Add(acct)
	if err := m.persistAccount(ctx, acct); err != nil {
		return "", err
	}
	return acct.AccessToken, nil
}

// TokenSource adapts the manager to x/oauth2 consumers (e.g. Google API
// clients). Every Token call goes through AccessToken and therefore
// refreshes on demand.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return managerTokenSource{ctx: ctx, manager: m}
}

type managerTokenSource struct {
	ctx     context.Context
	manager *Manager
}

func (ts managerTokenSource) Token() (*oauth2.Token, error) {
	if _, err := ts.manager.AccessToken(ts.ctx); err != nil {
		return nil, err
	}
	return ts.manager.ActiveCredential(), nil
}

// retrieveSavedCredentials runs exactly once, from New. A record is
// discarded (removed from the store, never surfaced as logged-in) when its
// refresh token is missing, its scope set is empty, or its scope set does
// not exactly equal the configured one — the guard against scope-upgrade
// deployments silently operating with under-scoped tokens. One bad record
// never aborts reconciliation of the rest.
func (m *Manager) retrieveSavedCredentials(ctx context.Context) error {
	records, err := m.collab.Store.LoadAll(ctx)
	if err != nil {
		return errors.Wrap(err, "[login.New] store.LoadAll")
	}

	for _, record := range records {
		if record.RefreshToken == "" || len(record.Scopes) == 0 {
			m.collab.Logger.LogWarning(fmt.Sprintf(
				"stored credentials for %s have no refresh token or scopes, logging out", record.Email))
			m.discardRecord(ctx, record.Email)
			continue
		}
		if !oauthdata.ScopeSetsEqual(record.Scopes, m.cfg.Scopes) {
			m.collab.Logger.LogWarning(fmt.Sprintf(
				"OAuth scope set for stored credentials no longer valid, logging %s out (%v vs. %v)",
				record.Email, m.cfg.Scopes, record.Scopes))
			m.discardRecord(ctx, record.Email)
			continue
		}

		m.roster.Add(account.Account{
			Email:             record.Email,
			AccessToken:       record.AccessToken,
			RefreshToken:      record.RefreshToken,
			AccessTokenExpiry: record.AccessTokenExpiry,
			Name:              record.Name,
			AvatarURL:         record.AvatarURL,
		})
	}
	return nil
}

func (m *Manager) discardRecord(ctx context.Context, email string) {
	if err := m.collab.Store.Remove(ctx, email); err != nil {
		m.collab.Logger.LogWarning("could not remove stale credentials for " + email + ": " + err.Error())
	}
}

// persistAccount writes the full record for one account; refreshes and
// switches always re-save in full, never partially.
func (m *Manager) persistAccount(ctx context.Context, acct account.Account) error {
	record := oauthdata.OAuthRecord{
		Email:             acct.Email,
		AccessToken:       acct.AccessToken,
		RefreshToken:      acct.RefreshToken,
		AccessTokenExpiry: acct.AccessTokenExpiry,
		Scopes:            append([]string(nil), m.cfg.Scopes...),
		Name:              acct.Name,
		AvatarURL:         acct.AvatarURL,
	}
	if err := m.collab.Store.Save(ctx, record); err != nil {
		return errors.Wrap(err, "[Manager.persistAccount] store.Save")
	}
	return nil
}

func (m *Manager) notifyLoginStatusChange() {
	m.listeners.notify(m.roster.Snapshot(), m.collab.Logger)
}

func expiryUnix(token *oauth2.Token) int64 {
	if token.Expiry.IsZero() {
		return 0
	}
	return token.Expiry.Unix()
}
