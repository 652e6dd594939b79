package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PathEnvVar lists extra search roots, separated by os.PathListSeparator.
const PathEnvVar = "DISCOVERYGO_PATH"

// DefaultSources builds the standard probing order for a process: the
// directory of the running executable, the current working directory, and
// finally every root named in PathEnvVar. The order matches the usual
// own-loader / context-loader / system-loader precedence: the most local
// root wins.
func DefaultSources() []Source {
	var sources []Source

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		sources = append(sources, NewFSSource("executable:"+dir, os.DirFS(dir)))
	}

	if cwd, err := os.Getwd(); err == nil {
		sources = append(sources, NewFSSource("cwd:"+cwd, os.DirFS(cwd)))
	}

	if env := os.Getenv(PathEnvVar); env != "" {
		var fss []fs.FS
		for _, root := range strings.Split(env, string(os.PathListSeparator)) {
			if root != "" {
				fss = append(fss, os.DirFS(root))
			}
		}
		if len(fss) > 0 {
			sources = append(sources, NewFSSource("env:"+PathEnvVar, fss...))
		}
	}

	return sources
}

// DirSources converts a list of directories into one source per directory,
// preserving order. Used when the host configures explicit search paths.
func DirSources(dirs []string) []Source {
	sources := make([]Source, 0, len(dirs))
	for _, dir := range dirs {
		sources = append(sources, NewFSSource("dir:"+dir, os.DirFS(dir)))
	}
	return sources
}
