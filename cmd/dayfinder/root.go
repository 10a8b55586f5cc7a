package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/dayfinder/internal/adapters/bridge/terminal"
	client "github.com/vncsmyrnk/dayfinder/internal/adapters/client/http"
	"github.com/vncsmyrnk/dayfinder/internal/adapters/page"
	"github.com/vncsmyrnk/dayfinder/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/dayfinder/internal/config"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
	"github.com/vncsmyrnk/dayfinder/internal/initdata"
)

var errNoInitData = errors.New("TELEGRAM_INIT_DATA or TELEGRAM_BOT_TOKEN must be set")

// app is what every subcommand shares once the configuration is loaded.
type app struct {
	in  io.Reader
	out io.Writer

	cfg      config.Config
	logger   *slog.Logger
	api      ports.PollAPI
	pages    ports.PageReader
	activity *services.ActivityService
	db       *sql.DB

	apiURL      string
	assumeYes   bool
	hostVersion string
	user        domain.User
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	cmd := &cobra.Command{
		Use:           "dayfinder",
		Short:         "Create, vote on and review DayFinder polls",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), errOut)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.db != nil {
				a.db.Close()
			}
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "Backend base URL (overrides DAYFINDER_API_URL)")
	flags.BoolVarP(&a.assumeYes, "yes", "y", false, "Answer every prompt with its first option")
	flags.StringVar(&a.hostVersion, "host-version", terminal.DefaultVersion, "Host version reported to feature checks")
	flags.Int64Var(&a.user.ID, "user-id", 1, "User ID for minted init data")
	flags.StringVar(&a.user.FirstName, "first-name", "", "First name for minted init data")
	flags.StringVar(&a.user.Username, "username", "", "Username for minted init data")

	cmd.AddCommand(
		newCreateCmd(a),
		newVoteCmd(a),
		newResultsCmd(a),
		newShareCmd(a),
		newDeleteCmd(a),
		newSummaryCmd(a),
		newHistoryCmd(a),
	)
	return cmd
}

func (a *app) setup(ctx context.Context, errOut io.Writer) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	a.api = client.NewPollClient(cfg.APIURL, httpClient)
	a.pages = page.NewReader(cfg.APIURL, httpClient)

	db, err := a.openDB(ctx)
	if err != nil {
		a.logger.Warn("activity log unavailable", "error", err)
		return nil
	}
	a.db = db
	a.activity = services.NewActivityService(sqlstore.NewActivityRepository(db, cfg.DatabaseType), a.logger)
	return nil
}

func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sqlstore.Open(ctx, a.cfg.DatabaseType, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := sqlstore.Migrate(ctx, db, a.cfg.DatabaseType); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initData returns the launch payload for a screen. A configured payload
// wins; otherwise one is minted and signed with the bot token.
func (a *app) initData(startParam string) (string, error) {
	if a.cfg.InitData != "" {
		if startParam == "" {
			return a.cfg.InitData, nil
		}
		return initdata.WithStartParam(a.cfg.InitData, startParam, a.cfg.BotToken)
	}
	if a.cfg.BotToken == "" {
		return "", errNoInitData
	}
	user := a.user
	if user.FirstName == "" && user.Username == "" {
		user.FirstName = "User " + fmt.Sprint(user.ID)
	}
	return initdata.New(user, startParam, time.Now(), a.cfg.BotToken)
}

// host builds the terminal bridge for a screen launched with startParam.
func (a *app) host(startParam string) (*terminal.Bridge, error) {
	raw, err := a.initData(startParam)
	if err != nil {
		return nil, err
	}
	return terminal.New(terminal.Options{
		In:        a.in,
		Out:       a.out,
		Version:   a.hostVersion,
		InitData:  raw,
		AssumeYes: a.assumeYes,
	}), nil
}
