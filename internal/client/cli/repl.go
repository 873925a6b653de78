package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Status(ctx context.Context) error
	Programs(ctx context.Context) error
	Students(ctx context.Context, args []string) error
	Procedures(ctx context.Context, args []string) error
	Student(ctx context.Context, args []string) error
	Procedure(ctx context.Context, args []string) error
	Grades(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Score(ctx context.Context, args []string) error
	Reconcile(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, status, exit"
	helpLoggedIn  = "Available commands: me, status, programs, students <program>, procedures <program>, " +
		"student <program> <student>, procedure <student> <procedure>, " +
		"grades [program] [search], export <csv|excel|pdf> [program], dashboard, " +
		"score <step> <student_procedure> <score>, reconcile <student> <procedure>, " +
		"admin <programs|students|examiners|procedures|steps <procedure>>, toggle <student|examiner> <id>, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Commands that need a session are refused while
// logged out; a handler error is printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("exam%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		report(dispatch(ctx, a, cmd, args))
	}
}

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "login":
		return a.Login(ctx)
	case "status":
		return a.Status(ctx)
	}

	run, ok := map[string]func() error{
		"logout":     func() error { return a.Logout(ctx) },
		"me":         func() error { return a.Me(ctx) },
		"programs":   func() error { return a.Programs(ctx) },
		"students":   func() error { return a.Students(ctx, args) },
		"procedures": func() error { return a.Procedures(ctx, args) },
		"student":    func() error { return a.Student(ctx, args) },
		"procedure":  func() error { return a.Procedure(ctx, args) },
		"grades":     func() error { return a.Grades(ctx, args) },
		"export":     func() error { return a.Export(ctx, args) },
		"dashboard":  func() error { return a.Dashboard(ctx) },
		"score":      func() error { return a.Score(ctx, args) },
		"reconcile":  func() error { return a.Reconcile(ctx, args) },
		"admin":      func() error { return a.Admin(ctx, args) },
		"toggle":     func() error { return a.Toggle(ctx, args) },
	}[cmd]
	if !ok {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return run()
}

func report(err error) {
	if err != nil {
		printlnFn("error:", err)
	}
}
