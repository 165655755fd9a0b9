package catalog

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Source yields the raw bytes of one question-set file.
type Source interface {
	// Name identifies the source in errors, the set picker and persisted
	// state fingerprints.
	Name() string
	// Open returns a reader over the file contents.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a question set from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

// HTTPSource fetches a question set over http(s).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

//go:embed samples/*.json
var samplesFS embed.FS

// SamplePrefix marks a source name that refers to a bundled sample set.
const SamplePrefix = "sample:"

// FSSource reads a question set from an fs.FS, such as the bundled samples.
type FSSource struct {
	FS   fs.FS
	Path string
	// Label overrides Name when set.
	Label string
}

func (s FSSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Path
}

func (s FSSource) Open(_ context.Context) (io.ReadCloser, error) {
	return s.FS.Open(s.Path)
}

// SampleSets returns the names of the bundled sample sets, sorted.
func SampleSets() []string {
	entries, err := fs.ReadDir(samplesFS, "samples")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, SamplePrefix+strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// ParseSource maps a user-supplied set reference to a Source:
//   - "http://..." and "https://..." fetch over the network,
//   - "sample:<name>" reads a bundled sample set,
//   - anything else is a file path, resolved against dir when relative and
//     not present in the working directory.
func ParseSource(ref, dir string) Source {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return HTTPSource{URL: ref}
	case strings.HasPrefix(ref, SamplePrefix):
		name := strings.TrimPrefix(ref, SamplePrefix)
		return FSSource{FS: samplesFS, Path: path.Join("samples", name+".json"), Label: ref}
	}
	if dir != "" && !filepath.IsAbs(ref) {
		if _, err := os.Stat(ref); err != nil {
			return FileSource{Path: filepath.Join(dir, ref)}
		}
	}
	return FileSource{Path: ref}
}

// ParseSources maps each reference with ParseSource, skipping blanks.
func ParseSources(refs []string, dir string) []Source {
	var out []Source
	for _, r := range refs {
		if strings.TrimSpace(r) == "" {
			continue
		}
		out = append(out, ParseSource(r, dir))
	}
	return out
}

// DiscoverSets lists *.json files in dir (names relative to dir), followed by
// the bundled samples. A missing dir yields only the samples.
func DiscoverSets(dir string) []string {
	var names []string
	if dir != "" {
		if entries, err := os.ReadDir(dir); err == nil {
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
					names = append(names, e.Name())
				}
			}
		}
		sort.Strings(names)
	}
	return append(names, SampleSets()...)
}

// Names returns the Name of each source.
func Names(sources []Source) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	return names
}
