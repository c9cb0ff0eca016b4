package httperrors

import (
	"errors"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourname/putget/internal/models"
	"github.com/yourname/putget/pkg/transferproto"
)

// Response — отрендеренный ответ об ошибке.
type Response struct {
	Status  int
	Message string
	Header  http.Header
	Body    string
}

// Render превращает ошибку в ответ: статус по виду ошибки, HTML-заголовок
// с экранированным сообщением и необязательной диагностикой.
func Render(err error) Response {
	var te *models.TransferError
	if !errors.As(err, &te) {
		te = models.NewTransferError(models.KindUnknown, "", err)
	}

	var body strings.Builder
	body.WriteString("<h1>")
	body.WriteString(html.EscapeString(te.Message))
	body.WriteString("</h1>\n")
	if te.Detail != "" {
		body.WriteString("<pre>")
		body.WriteString(html.EscapeString(te.Detail))
		body.WriteString("</pre>\n")
	}

	h := http.Header{}
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(body.Len()))
	if te.Kind == models.KindInvalidMethod {
		h.Set("Allow", transferproto.AllowedMethods)
	}

	return Response{
		Status:  te.Code,
		Message: te.Message,
		Header:  h,
		Body:    body.String(),
	}
}

// Write рендерит ошибку и пишет её в w.
func Write(w http.ResponseWriter, err error) {
	resp := Render(err)
	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}
