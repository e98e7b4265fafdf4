package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errUsage marks wrong command arguments; the wrapped text is the usage line.
var errUsage = errors.New("usage")

type commandFunc func(ctx context.Context, args []string) error

// command is one REPL verb. Private commands need a session.
type command struct {
	name    string
	usage   string
	private bool
	run     commandFunc
}

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
	redirects() <-chan string
	sessionEnded(path string)
}

// runREPL starts a read–eval–print loop over the commands of 'a'.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as its arguments. Unknown commands are reported back
// to the user, private commands are refused without a session. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Before every prompt pending navigator redirects are handed to
// a.sessionEnded, so a session the API client gave up on is closed before the
// user types the next command.
//
// Command errors are reported with log.Printf and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	table := make(map[string]command)
	for _, c := range a.commands() {
		table[c.name] = c
	}

	for {
		drainRedirects(a)

		printlnFn(fmt.Sprintf("jt %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(a.commands(), a.isLoggedIn()))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			cmd, ok := table[name]
			if !ok {
				printlnFn("Unknown command:", name)
				continue
			}
			if cmd.private && !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			if err := cmd.run(ctx, args); err != nil {
				log.Printf("%s: %s", name, describeError(err))
			}
		}
	}
}

func drainRedirects(a execIface) {
	for {
		select {
		case path := <-a.redirects():
			a.sessionEnded(path)
		default:
			return
		}
	}
}

// helpText lists the commands available in the current session state.
func helpText(cmds []command, loggedIn bool) string {
	var lines []string
	for _, c := range cmds {
		if c.private != loggedIn {
			continue
		}
		lines = append(lines, "  "+c.usage)
	}
	sort.Strings(lines)
	return "Available commands:\n" + strings.Join(lines, "\n") + "\n  help\n  exit"
}

func usage(c string) error {
	return fmt.Errorf("%w: %s", errUsage, c)
}

// describeError turns an error into a line for the user.
func describeError(err error) string {
	var (
		se *client.StatusError
		ue *url.Error
	)
	switch {
	case errors.Is(err, client.ErrRefreshFailed):
		return "session expired, please log in again"
	case errors.Is(err, errUsage), errors.Is(err, common.ErrNotCached):
		return err.Error()
	case errors.As(err, &se):
		if m := se.Message(); m != "" {
			return m
		}
		if se.StatusCode == http.StatusNotFound {
			return "not found"
		}
		return http.StatusText(se.StatusCode)
	case errors.Is(err, client.ErrUnavailable), errors.As(err, &ue):
		return "server unavailable, try again later"
	}
	return err.Error()
}
