package xproto

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

var (
	// ErrShortWrite is returned when a packet was only partly written.
	ErrShortWrite = errors.New("xproto: short packet write")
	// ErrClosed is returned by operations on a closed connection.
	ErrClosed = errors.New("xproto: connection closed")
)

// Connection sends and receives packets over a byte stream. Every operation
// works on a caller-owned buffer and returns transport failures as errors.
type Connection interface {
	// SendPacket writes all of p, blocking until done.
	SendPacket(p []byte) error
	// ReadPacket fills p completely, blocking until done.
	ReadPacket(p []byte) error
	// SendPacketContext is SendPacket that gives up when ctx is done.
	SendPacketContext(ctx context.Context, p []byte) error
	// ReadPacketContext is ReadPacket that gives up when ctx is done.
	ReadPacketContext(ctx context.Context, p []byte) error
}

type deadliner interface {
	SetDeadline(t time.Time) error
}

// StreamConnection adapts an io.ReadWriter, such as a net.Conn, to
// Connection.
type StreamConnection struct {
	rw     io.ReadWriter
	mu     sync.Mutex
	closed bool
}

// NewStreamConnection wraps rw.
func NewStreamConnection(rw io.ReadWriter) *StreamConnection {
	return &StreamConnection{rw: rw}
}

func (c *StreamConnection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *StreamConnection) SendPacket(p []byte) error {
	if c.isClosed() {
		return ErrClosed
	}
	n, err := c.rw.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return ErrShortWrite
	}
	return nil
}

func (c *StreamConnection) ReadPacket(p []byte) error {
	if c.isClosed() {
		return ErrClosed
	}
	_, err := io.ReadFull(c.rw, p)
	return err
}

func (c *StreamConnection) SendPacketContext(ctx context.Context, p []byte) error {
	return c.withContext(ctx, func() error { return c.SendPacket(p) })
}

func (c *StreamConnection) ReadPacketContext(ctx context.Context, p []byte) error {
	return c.withContext(ctx, func() error { return c.ReadPacket(p) })
}

// withContext runs op and abandons it when ctx is done. Streams with
// deadlines are unblocked and reset so the connection stays usable. On other
// streams a still-running op is left in the background and the connection is
// closed.
func (c *StreamConnection) withContext(ctx context.Context, op func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- op() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	// op may have finished while ctx was being canceled. A completed
	// transfer is reported as such.
	if d, ok := c.rw.(deadliner); ok {
		_ = d.SetDeadline(time.Unix(1, 0))
		err := <-done
		_ = d.SetDeadline(time.Time{})
		if err == nil {
			return nil
		}
		return ctx.Err()
	}

	select {
	case err := <-done:
		if err == nil {
			return nil
		}
	default:
		_ = c.Close()
	}
	return ctx.Err()
}

// Close closes the underlying stream if it is an io.Closer.
func (c *StreamConnection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if cl, ok := c.rw.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

var _ Connection = (*StreamConnection)(nil)
