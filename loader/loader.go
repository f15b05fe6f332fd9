// Package loader reads CSV files from storage and decodes them with jetcsv.
//
// Files ending in ".lz4" or ".gz" are decompressed transparently.
package loader

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsons/jetcsv"
	"github.com/pierrec/lz4/v4"
	log "github.com/sirupsen/logrus"
)

// Loader opens CSV files, optionally mapping file names to paths first.
type Loader struct {
	FilePathResolver func(fileName string) (filePath string, err error)
}

// Open returns a reader over the decompressed content of fileName.
func (l *Loader) Open(fileName string) (io.ReadCloser, error) {
	filePath := fileName
	if l != nil && l.FilePathResolver != nil {
		var err error
		filePath, err = l.FilePathResolver(fileName)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", fileName, err)
		}
	}
	log.Debugf("loading csv from file: %s", filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".lz4":
		return &readCloser{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open gzip stream %s: %w", filePath, err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	}
	return f, nil
}

// ReadText returns the whole decompressed content of fileName.
func (l *Loader) ReadText(fileName string) (string, error) {
	rc, err := l.Open(fileName)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", fileName, err)
	}
	return string(b), nil
}

// Load reads fileName through l and decodes it into records of type T.
//
// The result is never nil. When the file cannot be read the result is
// empty and unsuccessful, and the error says why.
func Load[T any](l *Loader, fileName string, opts ...jetcsv.Option) (*jetcsv.Result[T], error) {
	text, err := l.ReadText(fileName)
	if err != nil {
		return &jetcsv.Result[T]{}, err
	}

	res, err := jetcsv.Decode[T](text, opts...)
	if err != nil {
		return &jetcsv.Result[T]{}, err
	}
	log.Debugf("decoded %d records with %d columns from %s", len(res.Records), len(res.Headers), fileName)
	return res, nil
}

// LoadFile reads the file at path and decodes it into records of type T.
func LoadFile[T any](path string, opts ...jetcsv.Option) (*jetcsv.Result[T], error) {
	return Load[T](&Loader{}, path, opts...)
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
