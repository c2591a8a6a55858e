package ssh

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gossh "github.com/gliderlabs/ssh"
)

// fakeSession implements the parts of gossh.Session the tty uses.
type fakeSession struct {
	gossh.Session
	in     *bytes.Buffer
	out    bytes.Buffer
	closed bool
}

func (f *fakeSession) Read(b []byte) (int, error)  { return f.in.Read(b) }
func (f *fakeSession) Write(b []byte) (int, error) { return f.out.Write(b) }
func (f *fakeSession) Close() error                { f.closed = true; return nil }

func TestSessionTtyPassesThrough(t *testing.T) {
	s := &fakeSession{in: bytes.NewBufferString("q")}
	tty := NewSessionTty(s, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, nil)

	buf := make([]byte, 4)
	n, err := tty.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "q", string(buf[:n]))

	_, err = tty.Write([]byte("frame"))
	require.NoError(t, err)
	assert.Equal(t, "frame", s.out.String())

	require.NoError(t, tty.Close())
	assert.True(t, s.closed)
}

func TestSessionTtyResize(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty := NewSessionTty(&fakeSession{}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, err := tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, 80, ws.Width)
	assert.Equal(t, 24, ws.Height)

	resized := make(chan struct{}, 4)
	tty.NotifyResize(func() { resized <- struct{}{} })
	// Re-registering must not start a second reader.
	tty.NotifyResize(func() { resized <- struct{}{} })

	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-resized:
	case <-time.After(time.Second):
		t.Fatal("resize callback not called")
	}
	ws, _ = tty.WindowSize()
	assert.Equal(t, 120, ws.Width)
	assert.Equal(t, 40, ws.Height)

	close(winCh)
	assert.Len(t, resized, 0, "one resize must fire one callback")
}
