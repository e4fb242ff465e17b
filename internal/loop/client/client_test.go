package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/loop/server"
)

// fakeHub records calls made by the client.
type fakeHub struct {
	mu           sync.Mutex
	err          error
	handle       *server.ClientHandle
	unregistered []int
	scores       []int
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		handle: &server.ClientHandle{ID: 7, Username: "tester", EventsCh: make(chan server.ClientEvent, 1)},
	}
}

func (h *fakeHub) Register(username string) (*server.ClientHandle, error) {
	if h.err != nil {
		return nil, h.err
	}
	return h.handle, nil
}

func (h *fakeHub) Unregister(clientID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregistered = append(h.unregistered, clientID)
}

func (h *fakeHub) ReportScore(clientID int, score int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scores = append(h.scores, score)
}

func (h *fakeHub) Scores() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.scores...)
}

func (h *fakeHub) Unregistered() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.unregistered...)
}

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func fixedSize() (int, int, error) { return 80, 24, nil }

// runClient runs a client to completion and returns its error and output.
func runClient(t *testing.T, ctx context.Context, r io.Reader, opts Options) (string, error) {
	t.Helper()
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize
	}
	if opts.FrameTime == 0 {
		opts.FrameTime = 2 * time.Millisecond
	}

	var out bytes.Buffer
	c := New(bufio.NewReader(r), &out, opts)

	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()

	select {
	case err := <-errCh:
		return out.String(), err
	case <-time.After(5 * time.Second):
		t.Fatal("client did not stop")
		return "", nil
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	go func() { _, _ = pw.Write([]byte("q")) }()

	hub := newFakeHub()
	out, err := runClient(t, context.Background(), pr, Options{Hub: hub})
	require.NoError(t, err)

	assert.Equal(t, []int{7}, hub.Unregistered())
	assert.True(t, strings.HasPrefix(out, "\033[?25l"), "cursor hidden first")
	assert.True(t, strings.HasSuffix(out, "\033[?25h"), "cursor restored last")
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	out, err := runClient(t, context.Background(), strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "\033[H\033[2J")
}

func TestRunDrawsScoreLine(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	go func() {
		time.Sleep(50 * time.Millisecond)
		_, _ = pw.Write([]byte("q"))
	}()

	out, err := runClient(t, context.Background(), pr, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 0")
}

func TestRunRefusedByHub(t *testing.T) {
	hub := newFakeHub()
	hub.err = server.ErrServerFull

	out, err := runClient(t, context.Background(), strings.NewReader(""), Options{Hub: hub})
	require.ErrorIs(t, err, server.ErrServerFull)
	assert.Empty(t, out)
	assert.Empty(t, hub.Unregistered())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := runClient(t, ctx, pr, Options{})
	assert.NoError(t, err)
}

func TestRunShutdownNotice(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	hub := newFakeHub()
	hub.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}

	start := time.Now()
	out, err := runClient(t, context.Background(), pr, Options{
		Hub:           hub,
		ShutdownDelay: 60 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
	assert.Contains(t, out, "SERVER SHUTTING DOWN")
	assert.Contains(t, out, "Disconnecting in 1 seconds...")
	assert.Equal(t, []int{7}, hub.Unregistered())
}

func TestRunInactivityWarningThenDisconnect(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	out, err := runClient(t, context.Background(), pr, Options{
		InactivityWarn:    10 * time.Millisecond,
		InactivityTimeout: 80 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "ARE YOU STILL THERE?")
}

func TestRunServerClosedEvents(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	hub := newFakeHub()
	close(hub.handle.EventsCh)

	_, err := runClient(t, context.Background(), pr, Options{Hub: hub})
	assert.NoError(t, err)
}

func TestRunReportsGameOverAndRestarts(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	// Every enemy drops straight onto the idle ship.
	hub := newFakeHub()
	var out bytes.Buffer
	c := New(bufio.NewReader(pr), &out, Options{
		TermSizeFunc: fixedSize,
		FrameTime:    time.Millisecond,
		Hub:          hub,
		Game: loop.Options{
			Rand:          fixedRand(0.5),
			SpawnInterval: 5 * time.Millisecond,
		},
	})

	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(context.Background()) }()

	require.Eventually(t, func() bool { return len(hub.Scores()) == 1 },
		4*time.Second, 5*time.Millisecond, "first game never ended")

	// Only a restart can end a second game.
	_, err := pw.Write([]byte("r"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(hub.Scores()) == 2 },
		4*time.Second, 5*time.Millisecond, "restart did not start a new game")

	_, err = pw.Write([]byte("q"))
	require.NoError(t, err)
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("client did not stop")
	}

	assert.Equal(t, []int{0, 0}, hub.Scores())
	assert.Contains(t, out.String(), "G A M E   O V E R")
	assert.Equal(t, []int{7}, hub.Unregistered())
}
