package models

import (
	"net/http"
	"time"
)

// Method — конечный набор HTTP-методов, которые понимает сервис.
type Method int

const (
	MethodUnsupported Method = iota
	MethodGet
	MethodPut
	MethodPost
)

// ParseMethod сопоставляет метод запроса варианту; всё прочее — MethodUnsupported.
func ParseMethod(m string) Method {
	switch m {
	case http.MethodGet:
		return MethodGet
	case http.MethodPut:
		return MethodPut
	case http.MethodPost:
		return MethodPost
	default:
		return MethodUnsupported
	}
}

// StoredFile — результат успешного сохранения.
type StoredFile struct {
	// RelPath — путь относительно корня хранилища, всегда через '/'.
	RelPath string
	Size    int64
	SHA256  string
}

// JournalEntry — запись журнала о последнем сохранении файла по пути.
type JournalEntry struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	SHA256   string    `json:"sha256"`
	StoredAt time.Time `json:"stored_at"`
}
