package game

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// manualTicker hands out buffered channels that tests push ticks into, so
// timers advance only when a test says so.
type manualTicker struct {
	mu    sync.Mutex
	chans []chan time.Time
}

func (m *manualTicker) factory(time.Duration) (<-chan time.Time, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time, 256)
	m.chans = append(m.chans, ch)
	return ch, func() {}
}

// Tick feeds n ticks to the most recently started timer.
func (m *manualTicker) Tick(n int) {
	m.mu.Lock()
	ch := m.chans[len(m.chans)-1]
	m.mu.Unlock()
	for i := 0; i < n; i++ {
		ch <- time.Now()
	}
}

// Timers reports how many timers have been started so far.
func (m *manualTicker) Timers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chans)
}

// fakeConn records every frame enqueued to it.
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
	full   bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{}
}

func (f *fakeConn) Enqueue(frame []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return false
	}
	f.frames = append(f.frames, frame)
	return true
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeConn) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// payloads decodes every recorded frame of the given type.
func payloads[T any](f *fakeConn, typ internal.MessageType) []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []T
	for _, frame := range f.frames {
		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(frame, &msg); err != nil || msg.Type != typ {
			continue
		}
		var data T
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			continue
		}
		out = append(out, data)
	}
	return out
}

func lastPayload[T any](f *fakeConn, typ internal.MessageType) (T, bool) {
	all := payloads[T](f, typ)
	if len(all) == 0 {
		var zero T
		return zero, false
	}
	return all[len(all)-1], true
}

func countFrames(f *fakeConn, typ internal.MessageType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, frame := range f.frames {
		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(frame, &msg); err == nil && msg.Type == typ {
			n++
		}
	}
	return n
}

type MockWordStore struct {
	mock.Mock
}

func (m *MockWordStore) FetchRandomWords(ctx context.Context, count int) ([]string, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByToken(ctx context.Context, token string) (internal.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(internal.User), args.Error(1)
}

func (m *MockUserStore) PersistScore(ctx context.Context, name string, score int, gameID string) error {
	args := m.Called(ctx, name, score, gameID)
	return args.Error(0)
}
