package transferclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError — ответ сервера с кодом вне 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, strings.TrimSpace(e.Body))
}

type Client interface {
	// Put сохраняет r по пути path и возвращает ответ сервера.
	Put(ctx context.Context, baseURL, path string, r io.Reader, size int64) (string, error)
	// Get открывает файл по пути path. Тело закрывает вызывающий.
	Get(ctx context.Context, baseURL, path string) (io.ReadCloser, error)
}

type httpClient struct {
	c        *http.Client
	progress io.Writer
}

// Option настраивает клиент.
type Option func(*httpClient)

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает индикатор передачи в w.
func WithProgress(w io.Writer) Option {
	return func(h *httpClient) { h.progress = w }
}

// New создаёт HTTP-клиент хранилища.
func New(opts ...Option) Client {
	h := &httpClient{c: &http.Client{}}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Put загружает данные методом PUT. size < 0 — длина неизвестна.
func (h *httpClient) Put(ctx context.Context, baseURL, path string, r io.Reader, size int64) (string, error) {
	u, err := fileURL(baseURL, path)
	if err != nil {
		return "", err
	}

	bar := newProgress(h.progress, "Uploading "+path, size)
	body := io.Reader(countingReader{r: r, p: bar})

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, body)
	if err != nil {
		bar.finish(err)
		return "", err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := h.c.Do(req)
	if err != nil {
		bar.finish(err)
		return "", err
	}
	defer resp.Body.Close()

	msg, err := io.ReadAll(resp.Body)
	if err != nil {
		bar.finish(err)
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		err = &StatusError{Code: resp.StatusCode, Body: string(msg)}
		bar.finish(err)
		return "", err
	}

	bar.finish(nil)
	return strings.TrimSpace(string(msg)), nil
}

// Get скачивает файл и возвращает поток с телом.
func (h *httpClient) Get(ctx context.Context, baseURL, path string) (io.ReadCloser, error) {
	u, err := fileURL(baseURL, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(msg)}
	}

	bar := newProgress(h.progress, "Downloading "+path, resp.ContentLength)
	if bar == nil {
		return resp.Body, nil
	}
	return progressBody{ReadCloser: resp.Body, p: bar}, nil
}

// fileURL склеивает базовый адрес и путь файла, экранируя сегменты.
func fileURL(baseURL, path string) (string, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	base.Path = base.Path + "/" + strings.TrimLeft(path, "/")
	return base.String(), nil
}
