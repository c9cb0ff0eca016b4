package transferclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	barWidth     = 32
	renderPeriod = 120 * time.Millisecond
)

// progress рисует однострочный индикатор передачи в out.
// nil *progress — выключенный индикатор, все методы на нём безопасны.
type progress struct {
	mu       sync.Mutex
	out      io.Writer
	label    string
	total    int64
	done     int64
	last     time.Time
	width    int
	finished bool
}

func newProgress(out io.Writer, label string, total int64) *progress {
	if out == nil {
		return nil
	}
	return &progress{out: out, label: label, total: total}
}

func (p *progress) add(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.done += int64(n)
	if time.Since(p.last) >= renderPeriod {
		p.drawLocked("", false)
	}
}

// finish печатает итоговую строку: ✓ при err == nil, иначе ✗ с ошибкой.
func (p *progress) finish(err error) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true

	mark := " ✓"
	if err != nil {
		mark = fmt.Sprintf(" ✗ %v", err)
	}
	p.drawLocked(mark, true)
}

func (p *progress) drawLocked(suffix string, final bool) {
	line := p.line() + suffix
	pad := ""
	if p.width > len(line) {
		pad = strings.Repeat(" ", p.width-len(line))
	}
	p.width = len(line)
	p.last = time.Now()

	end := ""
	if final {
		end = "\n"
	}
	fmt.Fprintf(p.out, "\r%s%s%s", line, pad, end)
}

func (p *progress) line() string {
	if p.total <= 0 {
		return fmt.Sprintf("%s %s transferred", p.label, humanBytes(p.done))
	}

	ratio := float64(p.done) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*barWidth + 0.5)
	return fmt.Sprintf("%s [%s%s] %3d%% %s/%s",
		p.label,
		strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled),
		int(ratio*100+0.5),
		humanBytes(p.done), humanBytes(p.total))
}

// countingReader сообщает прогрессу о каждом прочитанном блоке.
type countingReader struct {
	r io.Reader
	p *progress
}

func (c countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.p.add(n)
	return n, err
}

// progressBody — тело ответа, закрывающее индикатор на EOF, ошибке или Close.
type progressBody struct {
	io.ReadCloser
	p *progress
}

func (b progressBody) Read(buf []byte) (int, error) {
	n, err := b.ReadCloser.Read(buf)
	b.p.add(n)
	switch {
	case err == io.EOF:
		b.p.finish(nil)
	case err != nil:
		b.p.finish(err)
	}
	return n, err
}

func (b progressBody) Close() error {
	err := b.ReadCloser.Close()
	b.p.finish(err)
	return err
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
