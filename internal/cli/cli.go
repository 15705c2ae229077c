// SPDX-License-Identifier: AGPL-3.0-only
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fluffyriot/postview/internal/exports"
	"github.com/fluffyriot/postview/internal/fetcher"
	"github.com/fluffyriot/postview/internal/stats"
	"github.com/fluffyriot/postview/internal/worker"
	"golang.org/x/term"
)

// PasswordReader reads a password without echoing it.
type PasswordReader func() ([]byte, error)

func TerminalPassword() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

type Session interface {
	Login(ctx context.Context, username, password string) (map[string]any, error)
	Logout(ctx context.Context) error
}

func HandleLogin(ctx context.Context, s Session, username string, readPassword PasswordReader, out io.Writer) error {
	if username == "" {
		return errors.New("login requires a username")
	}

	fmt.Fprintf(out, "Password for '%s': ", username)
	bytePassword, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if _, err := s.Login(ctx, username, string(bytePassword)); err != nil {
		var statusErr *fetcher.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == 401 {
			return fmt.Errorf("invalid credentials for '%s'", username)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(out, "Logged in as '%s'.\n", username)
	return nil
}

func HandleLogout(ctx context.Context, s Session, out io.Writer) error {
	if err := s.Logout(ctx); err != nil {
		fmt.Fprintln(out, "Local token cleared, remote logout failed.")
		return err
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}

// HandleExport runs a single sync and writes the chosen source to path.
func HandleExport(ctx context.Context, w *worker.Worker, source, path string, out io.Writer) error {
	if path == "" {
		return errors.New("export requires a file path")
	}

	w.RunSync(ctx)

	entry, ok := w.Snapshot.Get(source)
	if !ok {
		return fmt.Errorf("source %q produced no posts", source)
	}
	if entry.Err != "" {
		return fmt.Errorf("source %q failed to sync: %s", source, entry.Err)
	}

	if err := exports.ExportToFile(path, entry.Posts); err != nil {
		return err
	}

	st := stats.Compute(source, entry.Posts)
	fmt.Fprintf(out, "Exported %d %s posts (%d video, %d image, %d text) to %s\n", st.Posts, source, st.Video, st.Image, st.Text, path)
	return nil
}
