package file

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
	"github.com/wzhd/rotor/pkg/property"
	"github.com/wzhd/rotor/pkg/textutil"
)

// Lines is a property stating that each of the given lines appears as a
// line of a file, in any position. Missing lines are appended.
type Lines struct {
	file   File
	lines  []string
	logger zerolog.Logger
}

func newLines(f File, lines []string) *Lines {
	return &Lines{
		file:   f,
		lines:  append([]string(nil), lines...),
		logger: logging.GetLogger("file.lines"),
	}
}

// Capability implements property.Property
func (l *Lines) Capability() capability.Capability {
	return capability.Any
}

func (l *Lines) String() string {
	if len(l.lines) == 1 {
		return fmt.Sprintf("File %s has line %q", l.file.path, l.lines[0])
	}
	return fmt.Sprintf("File %s has %d certain lines", l.file.path, len(l.lines))
}

// Validate rejects lines holding a line break: they are split when the
// file is read back and could never be found.
func (l *Lines) Validate() error {
	for _, line := range l.lines {
		if strings.ContainsAny(line, "\r\n") {
			return errors.Newf(errors.ErrInvalidInput, "line %q for %s contains a line break", line, l.file.path)
		}
	}
	return nil
}

// read returns the current content. A missing file reads as empty.
func (l *Lines) read() (string, string, error) {
	path, err := l.file.path.Expand()
	if err != nil {
		return "", "", err
	}
	data, err := afero.ReadFile(l.file.fs, path)
	if err != nil && !os.IsNotExist(err) {
		return path, "", errors.WrapIO(err, "failed to read %s", path)
	}
	return path, string(data), nil
}

// missing returns the lines not yet present, de-duplicated and in
// declaration order.
func (l *Lines) missing(content string) []string {
	present := make(map[string]struct{})
	for _, line := range textutil.SplitLines(content) {
		present[line] = struct{}{}
	}
	var missing []string
	for _, line := range l.lines {
		if _, ok := present[line]; ok {
			continue
		}
		present[line] = struct{}{}
		missing = append(missing, line)
	}
	return missing
}

func (l *Lines) Check() (bool, error) {
	_, content, err := l.read()
	if err != nil {
		return false, err
	}
	return len(l.missing(content)) == 0, nil
}

// Apply appends the missing lines after a separating newline. Nothing is
// written when all lines are present.
func (l *Lines) Apply() (err error) {
	path, content, err := l.read()
	if err != nil {
		return err
	}
	missing := l.missing(content)
	if len(missing) == 0 {
		return nil
	}

	f, err := l.file.fs.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return errors.WrapIO(err, "failed to open %s for appending", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapIO(cerr, "failed to close %s", path)
		}
	}()

	l.logger.Debug().Str("path", path).Int("lines", len(missing)).Msg("appending lines")
	if _, err := f.WriteString(appendix(missing)); err != nil {
		return errors.WrapIO(err, "failed to write %s", path)
	}
	return nil
}

// Diff implements property.Differ
func (l *Lines) Diff() (string, error) {
	_, content, err := l.read()
	if err != nil {
		return "", err
	}
	missing := l.missing(content)
	if len(missing) == 0 {
		return "", nil
	}
	return textutil.Diff(content, content+appendix(missing)), nil
}

func appendix(lines []string) string {
	return "\n" + strings.Join(lines, "\n") + "\n"
}

var (
	_ property.Property  = (*Lines)(nil)
	_ property.Validator = (*Lines)(nil)
	_ property.Differ    = (*Lines)(nil)
)
