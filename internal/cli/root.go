// Package cli implements the paramlist CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/paramlist/internal/model"
	"github.com/rcliao/paramlist/internal/store"
)

var (
	dbPath     string
	formatFlag string
	logLevel   string

	logger = slog.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "paramlist",
	Short: "Ordered, typed parameter lists",
	Long:  "Edit named lists of typed parameters. SQLite-backed, with undo history and host object references.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.ErrOrStderr())
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $PARAMLIST_DB or ~/.paramlist/paramlist.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json, yaml or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $PARAMLIST_LOG_LEVEL or warn)")
}

func setupLogging(w io.Writer) error {
	level := logLevel
	if level == "" {
		level = os.Getenv("PARAMLIST_LOG_LEVEL")
	}
	if level == "" {
		level = "warn"
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	model.SetLogger(logger)
	return nil
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("PARAMLIST_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paramlist", "paramlist.db")
}

func openStore() (*store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(getDBPath())
	if err != nil {
		return nil, err
	}
	s.SetLogger(logger)
	return s, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// printOut writes v in the selected format. text falls back to indented
// JSON unless the command supplies its own renderer.
func printOut(w io.Writer, v any, text func(io.Writer)) {
	switch strings.ToLower(formatFlag) {
	case "yaml", "yml":
		b, err := yaml.Marshal(v)
		if err != nil {
			exitErr("encode yaml", err)
		}
		fmt.Fprint(w, string(b))
	case "text":
		if text != nil {
			text(w)
			return
		}
		fallthrough
	default:
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(w, string(b))
	}
}
