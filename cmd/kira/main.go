package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiralabs/kira/internal/config"
	"github.com/kiralabs/kira/internal/logging"
	"github.com/kiralabs/kira/internal/session"
	"github.com/kiralabs/kira/internal/tui"
	"github.com/kiralabs/kira/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	api := client.New(cfg.APIURL, client.Token{})
	api.SetTimeout(cfg.HTTPTimeout)

	var store session.TokenStore = session.NewFileStore(cfg.DataDir)
	envToken := cfg.Token != ""
	if envToken {
		store = session.NewStaticStore(cfg.Token)
	}

	mgr := session.NewManager(store, api, log)
	mgr.SetLookupTimeout(cfg.LookupTimeout)

	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Println("kira " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			return runLogin(mgr)
		case "register":
			return runRegister(mgr)
		case "logout":
			return runLogout(store, envToken)
		default:
			return fmt.Errorf("unknown command %q (try 'kira help')", args[0])
		}
	}

	return runTUI(mgr)
}

func runTUI(mgr *session.Manager) error {
	app := tui.NewApp(mgr)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(mgr *session.Manager) error {
	username, err := promptLine(os.Stdout, "Username: ")
	if err != nil {
		return err
	}
	password, err := promptPassword(os.Stdout, "Password: ")
	if err != nil {
		return err
	}

	user, err := mgr.Login(context.Background(), username, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s.\n\n", user.DisplayName())

	return runTUI(mgr)
}

func runRegister(mgr *session.Manager) error {
	username, err := promptLine(os.Stdout, "Username: ")
	if err != nil {
		return err
	}
	email, err := promptLine(os.Stdout, "Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword(os.Stdout, "Password: ")
	if err != nil {
		return err
	}

	if err := mgr.Register(context.Background(), username, email, password); err != nil {
		return err
	}
	fmt.Println("Account created. Run 'kira login' to sign in.")
	return nil
}

func runLogout(store session.TokenStore, envToken bool) error {
	if envToken {
		fmt.Println("KIRA_TOKEN is set in the environment; unset it to log out.")
		return nil
	}
	if _, err := store.Load(); errors.Is(err, session.ErrNoToken) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	fmt.Print(`kira — your workspace in the terminal

Usage:
  kira              open the dashboard
  kira login        sign in with username and password
  kira register     create a new account
  kira logout       clear the saved session
  kira version      show version

Environment:
  KIRA_API_URL      API base URL (default http://localhost:8001)
  KIRA_TOKEN        use this token instead of the saved one
  KIRA_DATA_DIR     where the session is stored (default ~/.kira)
  KIRA_LOG_FILE     write debug logs to this file
`)
}
