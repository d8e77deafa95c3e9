// Package cli implements the authctl sub-commands on top of the client
// library.
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/pkg/errors"
)

// Client is the part of the client library the commands use.
type Client interface {
	Register(ctx context.Context, userName, password string) (string, error)
	Login(ctx context.Context, userName, password string) (*client.Session, error)
	GetProfile(ctx context.Context) (*client.Profile, error)
	SetToken(token string)
}

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage: authctl [-a addr] [-p addr] [-t timeout] register|login|profile [flags]")

type App struct {
	config *config.Config
	client Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, cl Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

// SplitCommand separates the global flags from the sub-command and its own
// arguments. ok is false when no known sub-command is present.
func SplitCommand(args []string) (global []string, cmd string, rest []string, ok bool) {
	for i, a := range args {
		switch a {
		case "register", "login", "profile":
			return args[:i], a, args[i+1:], true
		}
	}
	return args, "", nil, false
}

// Run executes one sub-command.
func (a *App) Run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx, args)
	case "login":
		return a.Login(ctx, args)
	case "profile":
		return a.Profile(ctx, args)
	default:
		return ErrUsage
	}
}

// credentials parses -u and -password, prompting for whatever is missing.
func (a *App) credentials(name string, args []string) (string, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	user := fs.String("u", "", "user name")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return "", "", errors.Wrap(err, name)
	}

	var err error
	if *user == "" {
		if *user, err = getSimpleText(a.reader, "Username", a.out); err != nil {
			return "", "", err
		}
	}
	if *password == "" {
		if *password, err = getPassword(a.out); err != nil {
			return "", "", err
		}
	}
	return *user, *password, nil
}

func (a *App) Register(ctx context.Context, args []string) error {
	user, password, err := a.credentials("register", args)
	if err != nil {
		return err
	}

	id, err := a.client.Register(ctx, user, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User registered successfully. ID: %s\n", id)
	return nil
}

// Login prints the issued token so it can be exported as AUTHCTL_TOKEN.
func (a *App) Login(ctx context.Context, args []string) error {
	user, password, err := a.credentials("login", args)
	if err != nil {
		return err
	}

	sess, err := a.client.Login(ctx, user, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Authentication successful. Expires at %s\n", sess.ExpiresAt.Format(time.RFC3339))
	fmt.Fprintln(a.out, sess.Token)
	return nil
}

func (a *App) Profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	token := fs.String("token", a.config.Token, "session token")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "profile")
	}

	a.client.SetToken(*token)

	p, err := a.client.GetProfile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "user_id:   %s\nusername:  %s\nemail:     %s\nfull_name: %s\n", p.UserID, p.UserName, p.Email, p.FullName)
	return nil
}
