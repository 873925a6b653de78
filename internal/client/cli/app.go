package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/dmitrijs2005/practicum/internal/client/apiclient"
	"github.com/dmitrijs2005/practicum/internal/client/config"
	"github.com/dmitrijs2005/practicum/internal/client/exports"
	"github.com/dmitrijs2005/practicum/internal/client/models"
	"github.com/dmitrijs2005/practicum/internal/client/services"
	"github.com/dmitrijs2005/practicum/internal/client/storage"
	"github.com/dmitrijs2005/practicum/internal/client/tokenstore"
	"github.com/dmitrijs2005/practicum/internal/logging"
)

// App hosts the API client and reacts to session expiry by dropping back
// to the logged-out prompt.
type App struct {
	config *config.Config
	log    logging.Logger

	api      *apiclient.Client
	store    tokenstore.Store
	auth     services.AuthService
	exams    services.ExamService
	admin    services.AdminService
	exporter services.ExportService

	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB

	mu   sync.Mutex
	user *models.User
}

// NewApp opens the credential store, builds the API client and restores a
// session left by a previous run.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var (
		store tokenstore.Store
		db    *sql.DB
	)
	if c.DBPath != "" {
		var err error
		db, err = storage.InitDatabase(ctx, c.DBPath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		var pass []byte
		if c.StorePassphrase != "" {
			pass = []byte(c.StorePassphrase)
		}
		store, err = tokenstore.NewSQLiteStore(ctx, db, pass)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		store = tokenstore.NewMemoryStore()
	}

	sink, err := newSink(ctx, c)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	a, err := newApp(c, store, sink, log, os.Stdin, os.Stdout)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	a.db = db
	a.restoreSession(ctx)
	return a, nil
}

func newSink(ctx context.Context, c *config.Config) (exports.Sink, error) {
	if c.S3Bucket == "" {
		return exports.NewDirSink(c.ExportDir), nil
	}
	return exports.NewS3Sink(ctx, exports.S3Config{
		Bucket:       c.S3Bucket,
		Prefix:       c.S3Prefix,
		Region:       c.S3Region,
		BaseEndpoint: c.S3Endpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
}

func newApp(c *config.Config, store tokenstore.Store, sink exports.Sink, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		config: c,
		log:    log,
		store:  store,
		reader: bufio.NewReader(in),
		out:    out,
	}

	api, err := apiclient.New(c.APIBaseURL, store,
		apiclient.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		apiclient.WithRefreshTimeout(c.RefreshTimeout),
		apiclient.WithLogger(log.With("component", "apiclient")),
		apiclient.OnSessionExpired(a.sessionExpired),
	)
	if err != nil {
		return nil, err
	}

	a.api = api
	a.auth = services.NewAuthService(api, store, log)
	a.exams = services.NewExamService(api)
	a.admin = services.NewAdminService(api)
	a.exporter = services.NewExportService(api, sink, log)
	return a, nil
}

func (a *App) restoreSession(ctx context.Context) {
	if !a.auth.LoggedIn(ctx) {
		return
	}
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "cached user unreadable", "error", err)
		return
	}
	a.setUser(u)
}

// sessionExpired runs on the goroutine settling the refresh cycle, before
// the failed requests return; it only flips state and prints a notice.
func (a *App) sessionExpired(err error) {
	a.setUser(nil)
	printlnFn("Session expired, please log in again.")
	a.log.Info(context.Background(), "session expired", "error", err)
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) getStatus() string {
	u := a.currentUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Username)
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	printlnFn("Examiner CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
