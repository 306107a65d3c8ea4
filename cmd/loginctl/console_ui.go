package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-login-manager/login"
)

// consoleUI implements login.UiFacade on a terminal. The browser flow prints
// the authorization URL and asks the user to paste the verification code;
// the local-server flow runs a one-shot loopback listener and captures the
// code from the provider's redirect.
type consoleUI struct {
	in           io.Reader
	out          io.Writer
	callbackAddr string
	authCodeURL  func(state, redirectURL string) string
}

func (ui *consoleUI) ObtainVerificationCodeViaBrowser(title, authURL string) string {
	if title != "" {
		fmt.Fprintln(ui.out, title)
	}
	fmt.Fprintf(ui.out, "Open the following URL in your browser and approve access:\n\n  %s\n\n", authURL)
	fmt.Fprint(ui.out, "Paste the verification code here (empty to cancel): ")

	line, err := bufio.NewReader(ui.in).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (ui *consoleUI) ObtainVerificationCodeViaLocalServer(title string) *login.VerificationCode {
	listener, err := net.Listen("tcp", ui.callbackAddr)
	if err != nil {
		fmt.Fprintf(ui.out, "Could not start the callback listener: %s\n", err)
		return nil
	}
	defer listener.Close()

	redirectURL := "http://" + listener.Addr().String()
	state := uuid.New().String()

	if title != "" {
		fmt.Fprintln(ui.out, title)
	}
	fmt.Fprintf(ui.out, "Open the following URL in your browser and approve access:\n\n  %s\n\n",
		ui.authCodeURL(state, redirectURL))
	fmt.Fprintln(ui.out, "Waiting for the provider to redirect back...")

	codeCh := make(chan string, 1)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this window.")
		codeCh <- code
	})}
	go func() { _ = server.Serve(listener) }()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	select {
	case code := <-codeCh:
		return &login.VerificationCode{Code: code, RedirectURL: redirectURL}
	case <-time.After(5 * time.Minute):
		fmt.Fprintln(ui.out, "Timed out waiting for the redirect.")
		return nil
	}
}

func (ui *consoleUI) ShowErrorDialog(title, message string) {
	fmt.Fprintf(ui.out, "%s: %s\n", title, message)
}

func (ui *consoleUI) AskYesOrNo(title, message string) bool {
	fmt.Fprintf(ui.out, "%s %s [y/N]: ", title, message)
	line, err := bufio.NewReader(ui.in).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (ui *consoleUI) NotifyStatusIndicator() {}
