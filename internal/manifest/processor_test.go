package manifest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/discoverygo/internal/construct"
	"github.com/vk/discoverygo/internal/loader"
)

type staged struct {
	kind string // "primary" or "child"
	name string
	inst any
}

// recordingSink captures staging calls in order.
type recordingSink struct {
	calls []staged
}

func (s *recordingSink) StagePrimary(name string, inst any) {
	s.calls = append(s.calls, staged{kind: "primary", name: name, inst: inst})
}

func (s *recordingSink) StageChild(name string, inst any) {
	s.calls = append(s.calls, staged{kind: "child", name: name, inst: inst})
}

func testResource(t *testing.T, content string) loader.Resource {
	t.Helper()
	fsys := fstest.MapFS{loader.ManifestPath: &fstest.MapFile{Data: []byte(content)}}
	resources, err := loader.NewFSSource("test", fsys).Resources(loader.ManifestPath)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	return resources[0]
}

func testCatalog(t *testing.T) *construct.Catalog {
	t.Helper()
	cat := construct.NewCatalog()
	require.NoError(t, cat.Register("example.Cache", func(ctx context.Context) (any, error) {
		return &struct{ tag string }{tag: "cache"}, nil
	}))
	require.NoError(t, cat.Register("example.Child", func(ctx context.Context) (any, error) {
		return &struct{ tag string }{tag: "child"}, nil
	}))
	require.NoError(t, cat.Register("example.Broken", func(ctx context.Context) (any, error) {
		return nil, errors.New("boom")
	}))
	return cat
}

func TestProcessor_RoutesPrimariesAndChildren(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	content := strings.Join([]string{
		"cache=example.Cache,+example.Child,+example.Child",
		"",
		"this line has no separator and is skipped",
		"[legacy]=skipped.Too",
	}, "\n")
	p := &Processor{Catalog: testCatalog(t)}
	sink := &recordingSink{}

	// --- Act ---
	err := p.Process(context.Background(), testResource(t, content), sink)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, sink.calls, 3)
	assert.Equal(t, "primary", sink.calls[0].kind)
	assert.Equal(t, "cache", sink.calls[0].name)
	// Duplicate children are preserved, in declaration order.
	assert.Equal(t, "child", sink.calls[1].kind)
	assert.Equal(t, "child", sink.calls[2].kind)
}

func TestProcessor_OptionalFailureIsTolerated(t *testing.T) {
	t.Parallel()
	content := "?metrics=example.Missing\ncache=example.Cache"
	p := &Processor{Catalog: testCatalog(t)}
	sink := &recordingSink{}

	err := p.Process(context.Background(), testResource(t, content), sink)

	require.NoError(t, err)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "cache", sink.calls[0].name)
}

func TestProcessor_RequiredFailureAborts(t *testing.T) {
	t.Parallel()
	content := "cache=example.Missing\nnever=example.Cache"
	p := &Processor{Catalog: testCatalog(t)}
	sink := &recordingSink{}

	err := p.Process(context.Background(), testResource(t, content), sink)

	require.ErrorIs(t, err, construct.ErrUnknownType)
	assert.Empty(t, sink.calls, "processing must stop at the failing directive")
}

func TestProcessor_ConstructorErrorAborts(t *testing.T) {
	t.Parallel()
	p := &Processor{Catalog: testCatalog(t)}

	err := p.Process(context.Background(), testResource(t, "svc=example.Broken"), &recordingSink{})

	var instErr *construct.InstantiationError
	require.ErrorAs(t, err, &instErr)
	assert.Equal(t, "example.Broken", instErr.Type)
}

// failingResource errors on Open to exercise the read-error path.
type failingResource struct{}

func (failingResource) Location() string { return "broken:META-INF/kie.conf" }

func (failingResource) Open() (io.ReadCloser, error) {
	return nil, errors.New("io failure")
}

func TestProcessor_OpenFailureIsReadError(t *testing.T) {
	t.Parallel()
	p := &Processor{Catalog: testCatalog(t)}

	err := p.Process(context.Background(), failingResource{}, &recordingSink{})

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "broken:META-INF/kie.conf", readErr.Location)
}
