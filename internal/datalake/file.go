package datalake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// FileSource reads payloads from a directory of JSON files.
type FileSource struct {
	dir string
}

var _ contract.PayloadSource = &FileSource{} // Compile-time check

// NewFileSource returns a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// FileName returns the DataLake file name of a payload.
// Raw payloads are stored as <domain>_<company>.json, the other layers carry a suffix.
func FileName(company string, domain schema.Domain, layer schema.Layer) string {
	if layer == schema.RawLayer {
		return fmt.Sprintf("%s_%s.json", domain, company)
	}
	return fmt.Sprintf("%s_%s_%s.json", domain, company, layer)
}

// Fetch reads and decodes the payload file into UTF-8 JSON.
func (s *FileSource) Fetch(ctx context.Context, company string, domain schema.Domain, layer schema.Layer) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, FileName(company, domain, layer))
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, err := DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return text, nil
}

// Describe returns the directory of the source.
func (s *FileSource) Describe() string {
	return "file:" + s.dir
}

// Close is a no-op for files.
func (s *FileSource) Close() error {
	return nil
}

// DecodeText converts a payload file to UTF-8. UTF-16 files need a BOM;
// anything that is not valid UTF-8 is read as GB18030, a superset of GBK.
func DecodeText(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		return out, err
	}
	data = bytes.TrimPrefix(data, bomUTF8)
	if utf8.Valid(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), data)
	return out, err
}
