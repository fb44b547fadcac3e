package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Carcandyx/baby-steps-client/client"
	"github.com/Carcandyx/baby-steps-client/client/session"
	"github.com/Carcandyx/baby-steps-client/internal/config"
	"github.com/Carcandyx/baby-steps-client/internal/logger"
)

const dateLayout = "2006-01-02"

func main() {
	os.Exit(run(NewRootCmd()))
}

// run executes root and logs a failure with its stack. It returns the
// process exit code.
func run(root *cobra.Command) int {
	if err := root.Execute(); err != nil {
		log.Error().Stack().Err(err).Msg("command failed")
		return 1
	}
	return 0
}

// app carries the resolved configuration shared by every subcommand.
type app struct {
	apiURL      string
	sessionFile string
	debug       bool
	metrics     bool

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "babyctl",
		Short:         "babyctl manages babies and their tasks on a baby-steps backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.metrics {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend base URL (default $BABYSTEPS_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "Where the login session is kept (default $BABYSTEPS_SESSION_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output, including HTTP dumps")
	rootCmd.PersistentFlags().BoolVar(&a.metrics, "metrics", false, "Print client metrics to stderr after the command")

	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newSignupCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newWhoamiCmd(a))
	rootCmd.AddCommand(newBabiesCmd(a))
	rootCmd.AddCommand(newTasksCmd(a))
	rootCmd.AddCommand(newCalendarCmd(a))

	return rootCmd
}

// init loads BABYSTEPS_* settings, applies flag overrides and sets up the
// global logger.
func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIBaseURL = a.apiURL
	}
	if a.sessionFile != "" {
		cfg.SessionFile = a.sessionFile
	}
	if a.debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.NewConsole(logOut, "babyctl", logger.ParseLevel(cfg.LogLevel))
	log.Debug().
		Str("api_url", cfg.APIBaseURL).
		Str("session_file", cfg.SessionFile).
		Dur("timeout", cfg.HTTPTimeout).
		Msg("configuration loaded")
	return nil
}

// newClient builds a client whose session lives in the configured file.
func (a *app) newClient(cmd *cobra.Command) (*client.Client, error) {
	stderr := cmd.ErrOrStderr()
	return client.New(a.cfg.APIBaseURL,
		client.WithHTTPTimeout(a.cfg.HTTPTimeout),
		client.WithStorage(session.NewFileStorage(a.cfg.SessionFile)),
		client.WithDebugLogging(a.cfg.Debug),
		client.WithUnauthorizedHandler(func() {
			fmt.Fprintln(stderr, "Session expired. Please log in again with: babyctl login")
		}),
	)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// parseDay reads a YYYY-MM-DD date at local midnight.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// parseDeadline accepts YYYY-MM-DD or RFC 3339.
func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return parseDay(s)
}
