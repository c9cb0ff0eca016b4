package transferclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileURL(t *testing.T) {
	u, err := fileURL("http://host:8080/", "/a/b c.txt")
	require.NoError(t, err)
	require.Equal(t, "http://host:8080/a/b%20c.txt", u)

	u, err = fileURL("http://host/prefix", "x")
	require.NoError(t, err)
	require.Equal(t, "http://host/prefix/x", u)
}

func TestPutGet_WithProgress(t *testing.T) {
	var stored []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			stored, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "Created "+strings.TrimPrefix(r.URL.Path, "/")+"\n")
		case http.MethodGet:
			_, _ = w.Write(stored)
		}
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	c := New(WithProgress(&out))
	payload := bytes.Repeat([]byte("z"), 5000)

	msg, err := c.Put(context.Background(), srv.URL, "dir/f.bin", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)
	require.Equal(t, "Created dir/f.bin", msg)
	require.Equal(t, payload, stored)

	rc, err := c.Get(context.Background(), srv.URL, "dir/f.bin")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, payload, got)

	require.Contains(t, out.String(), "Uploading dir/f.bin")
	require.Contains(t, out.String(), "Downloading dir/f.bin")
	require.Contains(t, out.String(), "✓")
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<h1>File not found</h1>", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := New()
	_, err := c.Get(context.Background(), srv.URL, "missing")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.Code)
	require.Contains(t, se.Body, "File not found")

	_, err = c.Put(context.Background(), srv.URL, "x", strings.NewReader("x"), 1)
	require.True(t, errors.As(err, &se))
}

func TestHumanBytes(t *testing.T) {
	require.Equal(t, "512 B", humanBytes(512))
	require.Equal(t, "1.5 KB", humanBytes(1536))
	require.Equal(t, "2.0 MB", humanBytes(2<<20))
}
