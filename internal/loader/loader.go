package loader

import (
	"fmt"
	"io"
	"io/fs"
)

// ManifestPath is the well-known relative path probed on every source.
const ManifestPath = "META-INF/kie.conf"

// Resource is a single manifest resource reachable through a source.
type Resource interface {
	// Location is a human-readable locator used in logs and errors.
	Location() string
	// Open returns the resource contents. The caller must close the reader.
	Open() (io.ReadCloser, error)
}

// Source enumerates the resources visible under a relative path. An error
// from Resources means the source could not be probed at all; the resolver
// treats that the same as "no resources found".
type Source interface {
	Name() string
	Resources(rel string) ([]Resource, error)
}

// FSSource exposes a relative path from one or more file systems under a
// single source name. Several file systems behind one name model a search
// root assembled from multiple directories, so one source may yield more
// than one resource for the same relative path.
type FSSource struct {
	name string
	fss  []fs.FS
}

// NewFSSource creates a source named name over the given file systems.
func NewFSSource(name string, fss ...fs.FS) *FSSource {
	return &FSSource{name: name, fss: fss}
}

// Name implements Source.
func (s *FSSource) Name() string { return s.name }

// Resources implements Source. It returns one resource per file system
// that contains rel, in file-system order.
func (s *FSSource) Resources(rel string) ([]Resource, error) {
	var found []Resource
	for i, fsys := range s.fss {
		info, err := fs.Stat(fsys, rel)
		if err != nil || info.IsDir() {
			continue
		}
		found = append(found, &fsResource{
			location: fmt.Sprintf("%s[%d]:%s", s.name, i, rel),
			fsys:     fsys,
			path:     rel,
		})
	}
	return found, nil
}

type fsResource struct {
	location string
	fsys     fs.FS
	path     string
}

func (r *fsResource) Location() string { return r.location }

func (r *fsResource) Open() (io.ReadCloser, error) {
	return r.fsys.Open(r.path)
}
