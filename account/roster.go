package account

// Roster manages the set of currently logged-in accounts and tracks which
// one is active. The active account is the one whose credential the login
// manager hands out by default.
//
// Not thread-safe; the login manager must serialize access.
type Roster struct {
	accounts map[string]Account
	active   string // email of the active account, empty when the roster is empty
}

func NewRoster() *Roster {
	return &Roster{accounts: make(map[string]Account)}
}

// Add inserts an account and designates it active. An existing account with
// the same email is replaced wholesale: old token and profile fields are
// discarded, not merged. Panics if the email is empty.
func (r *Roster) Add(acct Account) {
	if acct.Email == "" {
		panic("account: Add called with an empty email")
	}
	delete(r.accounts, acct.Email)
	r.accounts[acct.Email] = acct
	r.active = acct.Email
}

// Get returns the account with the given email, if present.
func (r *Roster) Get(email string) (Account, bool) {
	acct, ok := r.accounts[email]
	return acct, ok
}

// Remove deletes the account with the given email and reports whether it was
// present. Removing the active account promotes an arbitrary remaining
// account, or clears the designation when none remain; a stale active
// pointer is never left behind.
func (r *Roster) Remove(email string) bool {
	if _, ok := r.accounts[email]; !ok {
		return false
	}
	delete(r.accounts, email)
	if r.active == email {
		r.active = ""
		for e := range r.accounts {
			r.active = e
			break
		}
	}
	return true
}

// SwitchActive marks the account with the given email active and reports
// whether it was found. On an unknown email the current active account is
// left untouched.
func (r *Roster) SwitchActive(email string) bool {
	if _, ok := r.accounts[email]; !ok {
		return false
	}
	r.active = email
	return true
}

// Active returns the active account. Panics if the roster is empty; callers
// must check IsEmpty first.
func (r *Roster) Active() Account {
	if r.active == "" {
		panic("account: Active called on an empty roster")
	}
	return r.accounts[r.active]
}

// ActiveEmail returns the active account's email, if any.
func (r *Roster) ActiveEmail() (string, bool) {
	return r.active, r.active != ""
}

func (r *Roster) IsEmpty() bool {
	return len(r.accounts) == 0
}

func (r *Roster) Len() int {
	return len(r.accounts)
}

// Clear empties the roster and clears the active designation.
func (r *Roster) Clear() {
	r.accounts = make(map[string]Account)
	r.active = ""
}

// Accounts returns a detached copy of all accounts, in no particular order.
func (r *Roster) Accounts() []Account {
	accts := make([]Account, 0, len(r.accounts))
	for _, acct := range r.accounts {
		accts = append(accts, acct)
	}
	return accts
}

// Snapshot returns a detached copy of the roster contents with the active
// account separated out. Mutating the roster afterwards does not affect a
// previously returned snapshot.
func (r *Roster) Snapshot() Snapshot {
	var snapshot Snapshot
	for _, acct := range r.accounts {
		if acct.Email == r.active {
			active := acct
			snapshot.Active = &active
			continue
		}
		snapshot.Inactive = append(snapshot.Inactive, acct)
	}
	return snapshot
}

// Snapshot is a UI-facing copy of the roster contents. Active is nil when no
// account is logged in.
type Snapshot struct {
	Active   *Account
	Inactive []Account
}

// Size returns the total number of accounts in the snapshot.
func (s Snapshot) Size() int {
	if s.Active == nil {
		return len(s.Inactive)
	}
	return len(s.Inactive) + 1
}
