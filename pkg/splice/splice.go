// Package splice replaces the generated region of a source file.
//
// The region is delimited by marker lines:
//
//	// ----- BEGIN GENERATED CODE
//
//	...generated blocks...
//
//	// ----- END GENERATED CODE
//
// Text outside the markers is preserved byte for byte.
package splice

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// BeginMarker opens the generated region. The rest of its line is kept.
	BeginMarker = "// ----- BEGIN GENERATED CODE"
	// EndMarker closes the generated region. Its indentation is kept.
	EndMarker = "// ----- END GENERATED CODE"
)

// ErrMarkersNotFound is returned when the begin/end markers are missing or
// out of order.
var ErrMarkersNotFound = errors.New("splice: generated code markers not found")

// Replace returns src with the region between the markers replaced by
// generated. The generated text is framed by one blank line on each side.
func Replace(src, generated []byte) ([]byte, error) {
	start, end, err := locate(src)
	if err != nil {
		return nil, err
	}

	body := bytes.TrimRight(generated, "\n")

	var out bytes.Buffer
	out.Grow(len(src) + len(generated))
	out.Write(src[:start])
	out.WriteByte('\n')
	if len(body) > 0 {
		out.Write(body)
		out.WriteString("\n\n")
	}
	out.Write(src[end:])
	return out.Bytes(), nil
}

// Region returns the text currently between the markers. The blank line
// after the begin marker is dropped, as is a blank line before the end
// marker; a region that runs straight into the end marker keeps its final
// newline.
func Region(src []byte) ([]byte, error) {
	start, end, err := locate(src)
	if err != nil {
		return nil, err
	}
	inner := bytes.TrimPrefix(src[start:end], []byte("\n"))
	if bytes.HasSuffix(inner, []byte("\n\n")) {
		inner = inner[:len(inner)-1]
	}
	return inner, nil
}

// locate returns the offset just past the begin marker's line and the
// offset where the end marker's line starts.
func locate(src []byte) (start, end int, err error) {
	begin := bytes.Index(src, []byte(BeginMarker))
	if begin < 0 {
		return 0, 0, fmt.Errorf("%w: missing %q", ErrMarkersNotFound, BeginMarker)
	}
	start = begin + len(BeginMarker)
	nl := bytes.IndexByte(src[start:], '\n')
	if nl < 0 {
		return 0, 0, fmt.Errorf("%w: %q has no following line", ErrMarkersNotFound, BeginMarker)
	}
	start += nl + 1

	marker := bytes.Index(src[start:], []byte(EndMarker))
	if marker < 0 {
		if bytes.Contains(src[:begin], []byte(EndMarker)) {
			return 0, 0, fmt.Errorf("%w: %q precedes %q", ErrMarkersNotFound, EndMarker, BeginMarker)
		}
		return 0, 0, fmt.Errorf("%w: missing %q", ErrMarkersNotFound, EndMarker)
	}
	marker += start

	end = bytes.LastIndexByte(src[:marker], '\n') + 1
	if end < start {
		end = start
	}
	return start, end, nil
}

// File splices generated into the file at path. The file is rewritten through
// a temporary file in the same directory and renamed into place, so readers
// never observe a partial write. Its permissions are preserved.
func File(path string, generated []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("splice: %w", err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("splice: read %s: %w", path, err)
	}

	out, err := Replace(src, generated)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if bytes.Equal(out, src) {
		return nil
	}
	return WriteAtomic(path, out, info.Mode().Perm())
}

// WriteAtomic writes data to path via a temporary sibling file and rename.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("splice: create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("splice: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("splice: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("splice: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("splice: rename into %s: %w", path, err)
	}
	return nil
}
