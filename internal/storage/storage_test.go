package storage

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/shortcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 678_900_000, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type constGenerator string

func (g constGenerator) Generate() (string, error) {
	return string(g), nil
}

type failingGenerator struct{}

var errEntropy = errors.New("entropy source closed")

func (failingGenerator) Generate() (string, error) {
	return "", errEntropy
}

func validity(v float64) *float64 {
	return &v
}

func TestNewStorageMemory(t *testing.T) {
	s := NewStorageMemory()
	require.NotNil(t, s)
	require.NotNil(t, s.links)
	require.Equal(t, DefaultMaxAttempts, s.maxAttempts)
	require.NoError(t, s.Ping())
	require.NotNil(t, s.ListAll())
	require.Empty(t, s.ListAll())
}

func TestStorageMemory_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateRequest
		wantErr error
	}{
		{name: "default validity", req: models.CreateRequest{URL: "https://example.com"}},
		{name: "explicit code", req: models.CreateRequest{URL: "https://example.com", Shortcode: "abc123"}},
		{name: "min validity", req: models.CreateRequest{URL: "https://example.com", Validity: validity(1)}},
		{name: "max validity", req: models.CreateRequest{URL: "https://example.com", Validity: validity(1440)}},
		{name: "invalid url", req: models.CreateRequest{URL: "not-a-url"}, wantErr: models.ErrInvalidURL},
		{name: "empty url", req: models.CreateRequest{}, wantErr: models.ErrInvalidURL},
		{name: "zero validity", req: models.CreateRequest{URL: "https://x.com", Validity: validity(0)}, wantErr: models.ErrInvalidValidity},
		{name: "validity too large", req: models.CreateRequest{URL: "https://x.com", Validity: validity(1441)}, wantErr: models.ErrInvalidValidity},
		{name: "negative validity", req: models.CreateRequest{URL: "https://x.com", Validity: validity(-5)}, wantErr: models.ErrInvalidValidity},
		{name: "fractional validity", req: models.CreateRequest{URL: "https://x.com", Validity: validity(1.5)}, wantErr: models.ErrInvalidValidity},
		{name: "short code", req: models.CreateRequest{URL: "https://x.com", Shortcode: "ab"}, wantErr: models.ErrInvalidShortcode},
		{name: "bad chars", req: models.CreateRequest{URL: "https://x.com", Shortcode: "ab-cd"}, wantErr: models.ErrInvalidShortcode},
		{name: "url checked first", req: models.CreateRequest{URL: "nope", Validity: validity(0), Shortcode: "a"}, wantErr: models.ErrInvalidURL},
		{name: "validity before code", req: models.CreateRequest{URL: "https://x.com", Validity: validity(0), Shortcode: "a"}, wantErr: models.ErrInvalidValidity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			s := NewStorageMemory(WithClock(clock.Now))

			link, err := s.Create(tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, s.ListAll())
				return
			}
			require.NoError(t, err)
			require.True(t, shortcode.Valid(link.Shortcode))
			if tt.req.Shortcode != "" {
				require.Equal(t, tt.req.Shortcode, link.Shortcode)
			} else {
				require.Len(t, link.Shortcode, shortcode.Length)
			}
			minutes := models.DefaultValidity
			if tt.req.Validity != nil {
				minutes = int(*tt.req.Validity)
			}
			require.Equal(t, time.Duration(minutes)*time.Minute, link.Expiry.Sub(link.CreatedAt))
			require.Equal(t, clock.Now().Truncate(time.Millisecond), link.CreatedAt)
			require.Equal(t, 0, link.TotalClicks)
			require.Empty(t, link.Clicks)
			require.NotEmpty(t, link.ID)
		})
	}
}

func TestStorageMemory_CreateTaken(t *testing.T) {
	s := NewStorageMemory()

	_, err := s.Create(models.CreateRequest{URL: "https://a.com", Shortcode: "taken"})
	require.NoError(t, err)

	_, err = s.Create(models.CreateRequest{URL: "https://b.com", Shortcode: "taken"})
	require.ErrorIs(t, err, models.ErrShortcodeTaken)

	link, err := s.Get("taken")
	require.NoError(t, err)
	require.Equal(t, "https://a.com", link.URL)
}

func TestStorageMemory_CreateConcurrentSameCode(t *testing.T) {
	s := NewStorageMemory()
	const workers = 32

	var (
		wg    sync.WaitGroup
		ok    atomic.Int32
		taken atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.Create(models.CreateRequest{URL: "https://example.com", Shortcode: "race"})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, models.ErrShortcodeTaken):
				taken.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), taken.Load())
	assert.Len(t, s.ListAll(), 1)
}

func TestStorageMemory_GeneratedCodesDistinct(t *testing.T) {
	s := NewStorageMemory(WithGenerator(shortcode.NewSeededGenerator(7)))

	a, err := s.Create(models.CreateRequest{URL: "https://example.com"})
	require.NoError(t, err)
	b, err := s.Create(models.CreateRequest{URL: "https://example.com"})
	require.NoError(t, err)

	require.NotEqual(t, a.Shortcode, b.Shortcode)
	require.Len(t, a.Shortcode, shortcode.Length)
	require.Len(t, b.Shortcode, shortcode.Length)
}

func TestStorageMemory_GenerationExhausted(t *testing.T) {
	s := NewStorageMemory(WithGenerator(constGenerator("SAMECODE")), WithMaxAttempts(3))

	_, err := s.Create(models.CreateRequest{URL: "https://example.com"})
	require.NoError(t, err)

	_, err = s.Create(models.CreateRequest{URL: "https://example.com"})
	require.ErrorIs(t, err, models.ErrGenerationExhausted)
}

func TestStorageMemory_GeneratorError(t *testing.T) {
	s := NewStorageMemory(WithGenerator(failingGenerator{}))

	_, err := s.Create(models.CreateRequest{URL: "https://example.com"})
	require.ErrorIs(t, err, errEntropy)
	require.Empty(t, s.ListAll())
}

func TestStorageMemory_Get(t *testing.T) {
	clock := newFakeClock()
	s := NewStorageMemory(WithClock(clock.Now))

	_, err := s.Create(models.CreateRequest{URL: "https://example.com", Validity: validity(1), Shortcode: "short"})
	require.NoError(t, err)

	t.Run("existing", func(t *testing.T) {
		link, err := s.Get("short")
		require.NoError(t, err)
		require.Equal(t, "https://example.com", link.URL)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Get("nothere")
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("still active at expiry", func(t *testing.T) {
		clock.Advance(time.Minute - 900*time.Microsecond)
		_, err := s.Get("short")
		require.NoError(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		clock.Advance(61 * time.Second)
		_, err := s.Get("short")
		require.ErrorIs(t, err, models.ErrExpired)
		require.ErrorIs(t, s.RecordClick("short", "direct", models.LocationLocal), models.ErrExpired)
		require.Len(t, s.ListAll(), 1)
	})
}

func TestStorageMemory_GetReturnsCopy(t *testing.T) {
	s := NewStorageMemory()
	_, err := s.Create(models.CreateRequest{URL: "https://example.com", Shortcode: "copy"})
	require.NoError(t, err)
	require.NoError(t, s.RecordClick("copy", "direct", models.LocationPublic))

	first, err := s.Get("copy")
	require.NoError(t, err)
	first.Clicks[0].Referrer = "mutated"
	first.TotalClicks = 99

	second, err := s.Get("copy")
	require.NoError(t, err)
	require.Equal(t, 1, second.TotalClicks)
	require.Equal(t, "direct", second.Clicks[0].Referrer)

	third, err := s.Get("copy")
	require.NoError(t, err)
	require.Equal(t, second, third)
}

func TestStorageMemory_RecordClick(t *testing.T) {
	clock := newFakeClock()
	s := NewStorageMemory(WithClock(clock.Now))
	_, err := s.Create(models.CreateRequest{URL: "https://example.com", Shortcode: "click"})
	require.NoError(t, err)

	require.NoError(t, s.RecordClick("click", "direct", models.LocationLocal))
	clock.Advance(time.Second)
	require.NoError(t, s.RecordClick("click", "https://ref.example", models.LocationPublic))
	require.ErrorIs(t, s.RecordClick("missing", "direct", models.LocationLocal), models.ErrNotFound)

	link, err := s.Get("click")
	require.NoError(t, err)
	require.Equal(t, 2, link.TotalClicks)
	require.Len(t, link.Clicks, 2)
	require.Equal(t, "direct", link.Clicks[0].Referrer)
	require.Equal(t, models.LocationLocal, link.Clicks[0].Location)
	require.Equal(t, "https://ref.example", link.Clicks[1].Referrer)
	require.True(t, link.Clicks[1].Timestamp.After(link.Clicks[0].Timestamp))
}

func TestStorageMemory_RecordClickConcurrent(t *testing.T) {
	s := NewStorageMemory()
	_, err := s.Create(models.CreateRequest{URL: "https://example.com", Shortcode: "busy"})
	require.NoError(t, err)

	const n = 500
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.RecordClick("busy", "direct", models.LocationPrivate))
			link, err := s.Get("busy")
			assert.NoError(t, err)
			assert.Equal(t, link.TotalClicks, len(link.Clicks))
		}()
	}
	wg.Wait()

	link, err := s.Get("busy")
	require.NoError(t, err)
	require.Equal(t, n, link.TotalClicks)
	require.Len(t, link.Clicks, n)
}

func TestStorageMemory_ReclaimExpired(t *testing.T) {
	clock := newFakeClock()
	s := NewStorageMemory(WithClock(clock.Now))

	_, err := s.Create(models.CreateRequest{URL: "https://old.example", Validity: validity(1), Shortcode: "reuse"})
	require.NoError(t, err)
	_, err = s.Create(models.CreateRequest{URL: "https://other.example", Shortcode: "other"})
	require.NoError(t, err)
	require.NoError(t, s.RecordClick("reuse", "direct", models.LocationLocal))

	_, err = s.Create(models.CreateRequest{URL: "https://new.example", Shortcode: "reuse"})
	require.ErrorIs(t, err, models.ErrShortcodeTaken)

	clock.Advance(2 * time.Minute)
	link, err := s.Create(models.CreateRequest{URL: "https://new.example", Shortcode: "reuse"})
	require.NoError(t, err)
	require.Equal(t, 0, link.TotalClicks)

	got, err := s.Get("reuse")
	require.NoError(t, err)
	require.Equal(t, "https://new.example", got.URL)
	require.Empty(t, got.Clicks)

	list := s.ListAll()
	require.Len(t, list, 2)
	require.Equal(t, "other", list[0].Shortcode)
	require.Equal(t, "reuse", list[1].Shortcode)
}

func TestStorageMemory_ReclaimExpiredGenerated(t *testing.T) {
	clock := newFakeClock()
	s := NewStorageMemory(WithClock(clock.Now), WithGenerator(constGenerator("ONLYCODE")), WithMaxAttempts(1))

	_, err := s.Create(models.CreateRequest{URL: "https://a.example", Validity: validity(1)})
	require.NoError(t, err)

	clock.Advance(90 * time.Second)
	link, err := s.Create(models.CreateRequest{URL: "https://b.example"})
	require.NoError(t, err)
	require.Equal(t, "ONLYCODE", link.Shortcode)
	require.Len(t, s.ListAll(), 1)
}

func TestStorageMemory_ListAll(t *testing.T) {
	clock := newFakeClock()
	s := NewStorageMemory(WithClock(clock.Now))

	for _, code := range []string{"first", "second", "third"} {
		_, err := s.Create(models.CreateRequest{URL: "https://" + code + ".example", Validity: validity(1), Shortcode: code})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}
	require.NoError(t, s.RecordClick("second", "direct", models.LocationLocal))

	clock.Advance(5 * time.Minute)
	list := s.ListAll()
	require.Len(t, list, 3)
	require.Equal(t, "first", list[0].Shortcode)
	require.Equal(t, "second", list[1].Shortcode)
	require.Equal(t, "third", list[2].Shortcode)
	require.Equal(t, 1, list[1].TotalClicks)
	require.Equal(t, "https://third.example", list[2].URL)
}
