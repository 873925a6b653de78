package exports

import (
	"context"

	"github.com/dmitrijs2005/practicum/internal/filex"
)

// DirSink writes exports into a local directory, creating it on demand.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	if dir == "" {
		dir = "."
	}
	return &DirSink{Dir: dir}
}

func (s *DirSink) Save(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", err
	}
	return filex.WriteFileAtomic(dir, name, data, 0o640)
}
