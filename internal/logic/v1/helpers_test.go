package v1

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
	"github.com/duynhne/brainstorm-service/internal/core/repository"
)

// fakeRepo wraps the memory repository, counts calls and injects faults.
type fakeRepo struct {
	mu    sync.Mutex
	inner *repository.MemorySessionRepository

	calls map[string]int

	listErr   error
	getErr    error
	addErr    error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		inner: repository.NewMemorySessionRepository(),
		calls: make(map[string]int),
	}
}

func (f *fakeRepo) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeRepo) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRepo) List(ctx context.Context) ([]domain.Session, error) {
	f.record("List")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.inner.List(ctx)
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	f.record("GetByID")
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.inner.GetByID(ctx, id)
}

func (f *fakeRepo) Add(ctx context.Context, s *domain.Session) (int, error) {
	f.record("Add")
	if f.addErr != nil {
		return 0, f.addErr
	}
	return f.inner.Add(ctx, s)
}

func (f *fakeRepo) Update(ctx context.Context, s *domain.Session) error {
	f.record("Update")
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.inner.Update(ctx, s)
}

// seed stores the two reference sessions: "Test One" (2016-07-02, id 1)
// and "Test Two" (2016-07-01, id 2).
func (f *fakeRepo) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.inner.Add(ctx, domain.NewSession("Test One", time.Date(2016, 7, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = f.inner.Add(ctx, domain.NewSession("Test Two", time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
}

type logEntry struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"-"`
}

type capture struct {
	buf bytes.Buffer
}

func (c *capture) entries(t *testing.T) []logEntry {
	t.Helper()
	var out []logEntry
	sc := bufio.NewScanner(bytes.NewReader(c.buf.Bytes()))
	for sc.Scan() {
		var e logEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e.Fields))
		out = append(out, e)
	}
	return out
}

func (c *capture) count(t *testing.T, level string) int {
	t.Helper()
	n := 0
	for _, e := range c.entries(t) {
		if e.Level == level {
			n++
		}
	}
	return n
}

var fixedNow = time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

// newTestHandlers returns handlers logging at level into a capture.
func newTestHandlers(repo domain.SessionRepository, level zerolog.Level) (*Handlers, *capture) {
	c := &capture{}
	log := zerolog.New(&c.buf).Level(level)
	return NewHandlers(repo, log, WithClock(func() time.Time { return fixedNow })), c
}

func intPtr(i int) *int { return &i }
