package login

// VerificationCode holds a verification code and the redirect URL that was
// used to obtain it, as produced by a local-callback-listener interaction.
type VerificationCode struct {
	Code        string
	RedirectURL string
}

// UiFacade presents a common API, implementable on a variety of platforms,
// for the user interactions that are part of the login and logout flows.
// The manager invokes it; the embedding application implements it.
type UiFacade interface {
	// ObtainVerificationCodeViaBrowser sends the user to authURL (in an
	// external browser or embedded widget) and returns the verification code
	// the user brought back, or "" if the user cancelled.
	ObtainVerificationCodeViaBrowser(title, authURL string) string

	// ObtainVerificationCodeViaLocalServer runs the flow through a local
	// callback listener owned by the implementation and returns the code
	// together with the redirect URL it listened on, or nil on cancellation
	// or listener failure.
	ObtainVerificationCodeViaLocalServer(title string) *VerificationCode

	// ShowErrorDialog displays an error dialog and blocks until dismissed.
	ShowErrorDialog(title, message string)

	// AskYesOrNo displays a yes/no question and returns the user's answer.
	AskYesOrNo(title, message string) bool

	// NotifyStatusIndicator tells the platform's logged-in status widget to
	// re-query the current state and refresh itself.
	NotifyStatusIndicator()
}

// LoggerFacade routes the manager's log entries into the platform's logging
// system.
type LoggerFacade interface {
	LogError(message string, cause error)
	LogWarning(message string)
}
