package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const setA = `[
  {"title": "a1", "options": ["A) x", "B) y"], "answer": "A"},
  {"title": "a2", "options": ["A) x", "B) y"], "answer": "B", "lang": "nodejs"}
]`

const setB = `[
  {"title": "b1", "options": [{"label": "A", "text": "x"}], "answer": "A", "explain": "because"}
]`

// staticSource serves fixed contents.
type staticSource struct {
	name string
	body string
	err  error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Open(context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

// gatedSource blocks Open until release is closed.
type gatedSource struct {
	staticSource
	started chan struct{}
	release chan struct{}
}

func (s gatedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	close(s.started)
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.staticSource.Open(ctx)
}

func TestLoad_MergesInOrderWithSequentialIDs(t *testing.T) {
	l := NewLoader()
	c, err := l.Load(context.Background(), []Source{
		staticSource{name: "a.json", body: setA},
		staticSource{name: "b.json", body: setB},
	})
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	wantTitles := []string{"a1", "a2", "b1"}
	for i, q := range c.Questions {
		assert.Equal(t, QuestionID(i), q.ID)
		assert.Equal(t, wantTitles[i], q.Title)
	}
	assert.Equal(t, "a.json", c.Questions[1].Set)
	assert.Equal(t, "b.json", c.Questions[2].Set)
	assert.Equal(t, "javascript", c.Questions[1].Language())
	assert.Equal(t, []string{"a.json", "b.json"}, c.Sets)
	assert.Equal(t, l.Generation(), c.Generation)
}

func TestLoad_IDStability(t *testing.T) {
	sources := []Source{
		staticSource{name: "a.json", body: setA},
		staticSource{name: "b.json", body: setB},
	}
	l := NewLoader()
	first, err := l.Load(context.Background(), sources)
	require.NoError(t, err)
	second, err := l.Load(context.Background(), sources)
	require.NoError(t, err)

	require.Equal(t, first.Len(), second.Len())
	for i := range first.Questions {
		assert.Equal(t, first.Questions[i].ID, second.Questions[i].ID)
		assert.Equal(t, first.Questions[i].Title, second.Questions[i].Title)
	}
}

func TestLoad_ReorderedFilesGetDifferentIDs(t *testing.T) {
	l := NewLoader()
	c, err := l.Load(context.Background(), []Source{
		staticSource{name: "b.json", body: setB},
		staticSource{name: "a.json", body: setA},
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", c.Questions[0].Title)
	assert.Equal(t, "q_1", c.Questions[0].ID)
}

func TestLoad_FailureIsAtomic(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(context.Background(), []Source{
		staticSource{name: "a.json", body: setA},
		staticSource{name: "missing.json", err: os.ErrNotExist},
	})
	require.Error(t, err)

	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "missing.json", srcErr.Source)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_SchemaViolation(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(context.Background(), []Source{
		staticSource{name: "bad.json", body: `[{"title": "no options", "answer": "A"}]`},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestLoad_MalformedJSON(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(context.Background(), []Source{staticSource{name: "x.json", body: `[{`}})
	require.Error(t, err)
}

func TestLoad_NoSourcesIsEmpty(t *testing.T) {
	c, err := NewLoader().Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_SupersededLoadIsDiscarded(t *testing.T) {
	l := NewLoader()
	slow := gatedSource{
		staticSource: staticSource{name: "slow.json", body: setA},
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}

	type result struct {
		c   *Catalog
		err error
	}
	done := make(chan result, 1)
	go func() {
		c, err := l.Load(context.Background(), []Source{slow})
		done <- result{c, err}
	}()
	<-slow.started

	newer, err := l.Load(context.Background(), []Source{staticSource{name: "b.json", body: setB}})
	require.NoError(t, err)
	assert.Equal(t, 1, newer.Len())
	assert.True(t, l.Current(newer.Generation))

	close(slow.release)
	select {
	case r := <-done:
		assert.Nil(t, r.c)
		assert.ErrorIs(t, r.err, ErrSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("slow load did not finish")
	}
}

func TestLoad_SupersededFailureIsDiscarded(t *testing.T) {
	l := NewLoader()
	stale := gatedSource{
		staticSource: staticSource{name: "missing.json", err: os.ErrNotExist},
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), []Source{stale})
		done <- err
	}()
	<-stale.started

	newer, err := l.Load(context.Background(), []Source{staticSource{name: "a.json", body: setA}})
	require.NoError(t, err)
	assert.Equal(t, 2, newer.Len())

	close(stale.release)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSuperseded)
		var srcErr *SourceError
		assert.False(t, errors.As(err, &srcErr), "stale failure leaked: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("stale load did not finish")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sets/a.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, setA)
	}))
	defer srv.Close()

	l := NewLoader()
	c, err := l.Load(context.Background(), []Source{HTTPSource{URL: srv.URL + "/sets/a.json"}})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = l.Load(context.Background(), []Source{HTTPSource{URL: srv.URL + "/nope.json"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestParseSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.json"), []byte(setA), 0o644))

	assert.IsType(t, HTTPSource{}, ParseSource("https://example.com/a.json", dir))
	assert.IsType(t, FSSource{}, ParseSource("sample:go-basics", dir))

	src := ParseSource("local.json", dir)
	fsrc, ok := src.(FileSource)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "local.json"), fsrc.Path)

	assert.Len(t, ParseSources([]string{"a.json", " ", ""}, ""), 1)
}

func TestSampleSetsLoad(t *testing.T) {
	names := SampleSets()
	require.NotEmpty(t, names)

	c, err := NewLoader().Load(context.Background(), ParseSources(names, ""))
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)
	for _, q := range c.Questions {
		_, ok := q.CorrectKey()
		assert.True(t, ok, "sample %s (%s) has an unresolvable answer", q.ID, q.Set)
	}
}

func TestDiscoverSets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(setB), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(setA), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names := DiscoverSets(dir)
	require.GreaterOrEqual(t, len(names), 2)
	assert.Equal(t, "a.json", names[0])
	assert.Equal(t, "b.json", names[1])
	assert.Contains(t, names, SamplePrefix+"go-basics")
}
