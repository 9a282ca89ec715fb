package file

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
	"github.com/wzhd/rotor/pkg/textutil"
)

// chunkSize is the unit of the streaming comparison
const chunkSize = 8 * 1024 * 32

// Content is a property stating that a file holds exactly the given
// bytes. Apply rewrites only the suffix starting at the first differing
// byte.
type Content struct {
	file    File
	content []byte
	logger  zerolog.Logger
}

func newContent(f File, content []byte) *Content {
	return &Content{
		file:    f,
		content: append([]byte(nil), content...),
		logger:  logging.GetLogger("file.content"),
	}
}

// Capability implements property.Property
func (c *Content) Capability() capability.Capability {
	return capability.Any
}

func (c *Content) String() string {
	return fmt.Sprintf("File %s has content of %d bytes", c.file.path, len(c.content))
}

// Check compares the file with the expected bytes chunk by chunk. A
// missing file is unsatisfied.
func (c *Content) Check() (bool, error) {
	path, err := c.file.path.Expand()
	if err != nil {
		return false, err
	}

	f, err := c.file.fs.Open(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.WrapIO(err, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return false, errors.WrapIO(err, "failed to stat %s", path)
	}
	if info.IsDir() || info.Size() != int64(len(c.content)) {
		return false, nil
	}

	_, differs, err := findDivergence(f, c.content)
	if err != nil {
		return false, errors.WrapIO(err, "failed to read %s", path)
	}
	return !differs, nil
}

// Apply creates the file if needed, truncates it to the expected length
// and writes from the first byte that differs.
func (c *Content) Apply() error {
	path, err := c.file.path.Expand()
	if err != nil {
		return err
	}

	if err := c.patch(path); err != nil {
		return err
	}

	ok, err := c.Check()
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrIO, "content of %s still differs after writing", path)
	}
	return nil
}

func (c *Content) patch(path string) (err error) {
	f, err := c.file.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return errors.WrapIO(err, "failed to open %s for writing", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapIO(cerr, "failed to close %s", path)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return errors.WrapIO(err, "failed to stat %s", path)
	}
	if info.Size() > int64(len(c.content)) {
		c.logger.Debug().Str("path", path).Int64("size", info.Size()).Int("want", len(c.content)).Msg("truncating")
		if err := f.Truncate(int64(len(c.content))); err != nil {
			return errors.WrapIO(err, "failed to truncate %s", path)
		}
	}

	offset, differs, err := findDivergence(f, c.content)
	if err != nil {
		return errors.WrapIO(err, "failed to read %s", path)
	}
	if !differs {
		c.logger.Warn().Str("path", path).Msg("content already matches")
		return nil
	}

	c.logger.Debug().Str("path", path).Int("offset", offset).Msg("writing from first difference")
	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return errors.WrapIO(err, "failed to seek in %s", path)
	}
	for rest := c.content[offset:]; len(rest) > 0; {
		n, err := f.Write(rest)
		if err != nil {
			return errors.WrapIO(err, "failed to write %s", path)
		}
		rest = rest[n:]
	}
	return nil
}

// Diff implements property.Differ. Binary content is summarised by size.
func (c *Content) Diff() (string, error) {
	path, err := c.file.path.Expand()
	if err != nil {
		return "", err
	}
	current, err := afero.ReadFile(c.file.fs, path)
	if err != nil && !os.IsNotExist(err) {
		return "", errors.WrapIO(err, "failed to read %s", path)
	}
	if bytes.Equal(current, c.content) {
		return "", nil
	}
	if !utf8.Valid(current) || !utf8.Valid(c.content) {
		return fmt.Sprintf("binary content differs (%d bytes, want %d)\n", len(current), len(c.content)), nil
	}
	return textutil.Diff(string(current), string(c.content)), nil
}

// findDivergence reads r from its current position and returns the
// offset of the first byte that differs from expected. The second result
// is false when r holds exactly expected.
func findDivergence(r io.Reader, expected []byte) (int, bool, error) {
	buf := make([]byte, chunkSize)
	pos := 0
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			end := pos + n
			if end > len(expected) {
				end = len(expected)
			}
			if i, ne := findSliceNotEq(expected[pos:end], buf[:n]); ne {
				return pos + i, true, nil
			}
			pos += n
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return 0, false, err
		}
	}
	if pos < len(expected) {
		return pos, true, nil
	}
	return 0, false, nil
}

// findSliceNotEq returns the first index at which a and b differ. Slices
// of different lengths differ at the shorter length.
func findSliceNotEq(a, b []byte) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i, true
		}
	}
	if len(a) != len(b) {
		return n, true
	}
	return 0, false
}
