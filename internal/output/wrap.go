package output

import (
	"bufio"
	"io"
)

// LineWriter buffers writes to W and inserts a newline every Width bytes.
// Width <= 0 disables wrapping. Call Close to end the last line and flush.
type LineWriter struct {
	w     *bufio.Writer
	width int
	col   int
}

// NewLineWriter wraps w at width columns.
func NewLineWriter(w io.Writer, width int) *LineWriter {
	return &LineWriter{w: bufio.NewWriter(w), width: width}
}

// Write implements io.Writer. The returned count excludes inserted newlines.
func (lw *LineWriter) Write(p []byte) (int, error) {
	if lw.width <= 0 {
		n, err := lw.w.Write(p)
		lw.col += n
		return n, err
	}
	written := 0
	for len(p) > 0 {
		room := lw.width - lw.col
		chunk := min(room, len(p))
		n, err := lw.w.Write(p[:chunk])
		written += n
		lw.col += n
		if err != nil {
			return written, err
		}
		p = p[chunk:]
		if lw.col == lw.width {
			if err := lw.w.WriteByte('\n'); err != nil {
				return written, err
			}
			lw.col = 0
		}
	}
	return written, nil
}

// WriteByte implements io.ByteWriter.
func (lw *LineWriter) WriteByte(c byte) error {
	_, err := lw.Write([]byte{c})
	return err
}

// Flush pushes buffered bytes to the underlying writer.
func (lw *LineWriter) Flush() error {
	return lw.w.Flush()
}

// Close terminates a partial line with a newline and flushes. It does not
// close the underlying writer.
func (lw *LineWriter) Close() error {
	if lw.col > 0 {
		if err := lw.w.WriteByte('\n'); err != nil {
			return err
		}
		lw.col = 0
	}
	return lw.w.Flush()
}
