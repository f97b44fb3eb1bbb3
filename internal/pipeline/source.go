package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/climate-history-service/internal/adapter/csvfile"
	"github.com/couchcryptid/climate-history-service/internal/adapter/xlsx"
)

// FileOptions tunes how LoadFile opens its input.
type FileOptions struct {
	// Delimiter for delimited text; zero detects it from the header line.
	Delimiter rune
}

type rowSource interface {
	RowReader
	io.Closer
}

// LoadFile opens path, picks a row source from its extension (.xlsx for Excel
// workbooks, anything else as delimited text) and loads it.
func (l *Loader) LoadFile(ctx context.Context, path string, opts FileOptions) (Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Dataset{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return Dataset{}, err
	}

	src, err := openSource(path, opts)
	if err != nil {
		return Dataset{}, err
	}
	defer src.Close()

	return l.Load(ctx, path, src)
}

func openSource(path string, opts FileOptions) (rowSource, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsx.Open(path)
	}
	return csvfile.Open(path, opts.Delimiter)
}
