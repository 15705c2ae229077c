// SPDX-License-Identifier: AGPL-3.0-only
package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/fluffyriot/postview/internal/fetcher"
	"github.com/fluffyriot/postview/internal/normalize"
	"github.com/fluffyriot/postview/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	user, pass string
	loginErr   error
	logoutErr  error
}

func (f *fakeSession) Login(ctx context.Context, username, password string) (map[string]any, error) {
	f.user, f.pass = username, password
	return nil, f.loginErr
}

func (f *fakeSession) Logout(ctx context.Context) error {
	return f.logoutErr
}

func password(p string) PasswordReader {
	return func() ([]byte, error) { return []byte(p), nil }
}

func TestHandleLogin(t *testing.T) {
	t.Run("Should log in with the prompted password", func(t *testing.T) {
		s := &fakeSession{}
		var out bytes.Buffer

		require.NoError(t, HandleLogin(context.Background(), s, "ana", password("pw"), &out))

		assert.Equal(t, "ana", s.user)
		assert.Equal(t, "pw", s.pass)
		assert.Contains(t, out.String(), "Logged in as 'ana'")
	})

	t.Run("Should require a username", func(t *testing.T) {
		assert.Error(t, HandleLogin(context.Background(), &fakeSession{}, "", password("pw"), &bytes.Buffer{}))
	})

	t.Run("Should report invalid credentials", func(t *testing.T) {
		s := &fakeSession{loginErr: &fetcher.StatusError{Status: http.StatusUnauthorized}}

		err := HandleLogin(context.Background(), s, "ana", password("bad"), &bytes.Buffer{})
		assert.EqualError(t, err, "invalid credentials for 'ana'")
	})

	t.Run("Should fail when the password cannot be read", func(t *testing.T) {
		failing := func() ([]byte, error) { return nil, errors.New("no tty") }
		err := HandleLogin(context.Background(), &fakeSession{}, "ana", failing, &bytes.Buffer{})
		assert.ErrorContains(t, err, "no tty")
	})
}

func TestHandleLogout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, HandleLogout(context.Background(), &fakeSession{}, &out))
	assert.Contains(t, out.String(), "Logged out.")

	err := HandleLogout(context.Background(), &fakeSession{logoutErr: errors.New("down")}, &out)
	assert.Error(t, err)
}

type feedOnly struct{}

func (feedOnly) FetchFeed(ctx context.Context, page, pageSize int) (fetcher.Page, error) {
	if page > 1 {
		return fetcher.Page{}, nil
	}
	return fetcher.Page{Posts: []normalize.RawPost{
		{"id": "a", "type": "video", "media": []any{"/media/uploads/videos/a.mp4"}},
		{"id": "b", "media": []any{"/media/b.png"}},
	}, Total: 2}, nil
}

func (feedOnly) FetchMyPosts(ctx context.Context) ([]normalize.RawPost, error) { return nil, nil }

func (feedOnly) Me(ctx context.Context) (fetcher.User, error) {
	return fetcher.User{}, &fetcher.StatusError{Status: http.StatusUnauthorized}
}

func TestHandleExport(t *testing.T) {
	w := worker.NewWorker(feedOnly{}, normalize.New(""), worker.NewSnapshot(), nil)
	path := filepath.Join(t.TempDir(), "feed.csv")
	var out bytes.Buffer

	require.NoError(t, HandleExport(context.Background(), w, worker.SourceFeed, path, &out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://127.0.0.1:8000/media/uploads/videos/a.mp4")
	assert.Contains(t, out.String(), "Exported 2 feed posts (1 video, 1 image, 0 text)")

	err = HandleExport(context.Background(), w, worker.SourceMine, path, &out)
	assert.Error(t, err)
}
