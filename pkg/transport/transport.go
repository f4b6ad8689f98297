// Package transport implements Content-Length framing for MCP messages over
// a byte stream.
//
// Each message is framed as an ASCII header line followed by a blank line and
// the body:
//
//	Content-Length: <N>\r\n
//	\r\n
//	<N bytes of UTF-8 body>
//
// No other headers are recognized.
package transport

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/finlabs/ynab-mcp/pkg/errors"
)

// headerPrefix is the only header the framing recognizes.
const headerPrefix = "Content-Length:"

// ErrEndOfStream reports that the stream ended cleanly before any header
// bytes were read. It is a termination condition, not a fault.
var ErrEndOfStream = stderrors.New("end of stream")

// Framer reads and writes length-prefixed messages on a byte stream. Writes
// are serialized by a mutex; reads are owned by the single session loop.
type Framer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	mu     sync.Mutex
}

// NewFramer creates a Framer over the given stream halves.
func NewFramer(r io.Reader, w io.Writer) *Framer {
	return &Framer{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// ReadMessage reads one framed message and returns its body.
//
// It returns ErrEndOfStream on a clean end of input, a framing fault for a
// bad or missing Content-Length header, an I/O fault when the body is
// truncated, and an encoding fault when the body is not valid UTF-8.
func (f *Framer) ReadMessage() (string, error) {
	header, err := f.reader.ReadString('\n')
	if err != nil {
		if stderrors.Is(err, io.EOF) && header == "" {
			return "", ErrEndOfStream
		}
		return "", errors.Wrap(errors.KindIO, "reading header", err)
	}

	if !strings.HasPrefix(header, headerPrefix) {
		return "", errors.New(errors.KindFraming, "expected Content-Length header")
	}

	lengthStr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), headerPrefix))
	contentLength, err := strconv.Atoi(lengthStr)
	if err != nil || contentLength < 0 {
		return "", errors.Newf(errors.KindFraming, "invalid Content-Length value: %s", lengthStr)
	}

	// The separator line is consumed but not validated.
	if _, err := f.reader.ReadString('\n'); err != nil {
		return "", errors.Wrap(errors.KindIO, "reading separator", err)
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(f.reader, body); err != nil {
		return "", errors.Wrap(errors.KindIO, "reading message body", err)
	}

	if !utf8.Valid(body) {
		return "", errors.New(errors.KindEncoding, "message body is not valid UTF-8")
	}

	return string(body), nil
}

// WriteMessage writes one framed message. The declared length is the byte
// length of the body, not the character count.
func (f *Framer) WriteMessage(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := fmt.Fprintf(f.writer, "Content-Length: %d\r\n\r\n", len(message)); err != nil {
		return errors.Wrap(errors.KindIO, "writing header", err)
	}
	if _, err := f.writer.WriteString(message); err != nil {
		return errors.Wrap(errors.KindIO, "writing message body", err)
	}
	if err := f.writer.Flush(); err != nil {
		return errors.Wrap(errors.KindIO, "flushing writer", err)
	}
	return nil
}
