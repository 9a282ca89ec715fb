// Package conffile edits "key = value" style configuration files while
// leaving comments, blank lines and unrelated keys untouched.
package conffile

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/wzhd/rotor/pkg/capability"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
	"github.com/wzhd/rotor/pkg/paths"
	"github.com/wzhd/rotor/pkg/textutil"
)

// Syntax describes how a line is split into a key and a value
type Syntax struct {
	Comment rune
	Equal   rune
}

// ClassicSyntax uses '#' for comments and '=' for assignments
var ClassicSyntax = Syntax{Comment: '#', Equal: '='}

// ConfFile is a configuration file with a known line syntax
type ConfFile struct {
	path   paths.UserPath
	syntax Syntax
	fs     afero.Fs
}

// Assignment is a key and the value it must have
type Assignment struct {
	Key   string
	Value string
}

// Classic refers to a file using ClassicSyntax
func Classic(path paths.UserPath) ConfFile {
	return WithSyntax(path, ClassicSyntax.Comment, ClassicSyntax.Equal)
}

// WithSyntax refers to a file using the given comment and assignment
// characters.
func WithSyntax(path paths.UserPath, comment, equal rune) ConfFile {
	return ConfFile{
		path:   path,
		syntax: Syntax{Comment: comment, Equal: equal},
		fs:     afero.NewOsFs(),
	}
}

// WithFs returns a copy of c that operates on fs
func (c ConfFile) WithFs(fs afero.Fs) ConfFile {
	c.fs = fs
	return c
}

// ValueSet states that key has value
func (c ConfFile) ValueSet(key, value string) *Values {
	return c.ValuesSet(Assignment{Key: key, Value: value})
}

// ValuesSet states that every key has its value. Keys missing from the
// file are appended in the order given here.
func (c ConfFile) ValuesSet(assignments ...Assignment) *Values {
	return &Values{
		file:        c,
		assignments: append([]Assignment(nil), assignments...),
		logger:      logging.GetLogger("conffile"),
	}
}

// parseLine returns the trimmed key and value of line. Everything from
// the comment character on is ignored, and only the first assignment
// character separates key from value.
func (s Syntax) parseLine(line string) (string, string, bool) {
	if i := strings.IndexRune(line, s.Comment); i >= 0 {
		line = line[:i]
	}
	key, value, ok := strings.Cut(line, string(s.Equal))
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// Values is the property created by ValuesSet
type Values struct {
	file        ConfFile
	assignments []Assignment
	logger      zerolog.Logger
}

// Capability implements property.Property
func (v *Values) Capability() capability.Capability {
	return capability.Any
}

func (v *Values) String() string {
	return fmt.Sprintf("Conf file %s has %d values set", v.file.path, len(v.assignments))
}

// Validate rejects assignments that could never be matched when parsing
// the file back.
func (v *Values) Validate() error {
	seen := make(map[string]bool, len(v.assignments))
	for _, a := range v.assignments {
		key := strings.TrimSpace(a.Key)
		switch {
		case key == "":
			return errors.Newf(errors.ErrInvalidInput, "empty key in %s", v.file.path)
		case key != a.Key:
			return errors.Newf(errors.ErrInvalidInput, "key %q in %s has surrounding whitespace", a.Key, v.file.path)
		case strings.ContainsRune(key, v.file.syntax.Comment), strings.ContainsRune(key, v.file.syntax.Equal):
			return errors.Newf(errors.ErrInvalidInput, "key %q in %s contains a syntax character", key, v.file.path)
		case strings.ContainsAny(key, "\r\n") || strings.ContainsAny(a.Value, "\r\n"):
			return errors.Newf(errors.ErrInvalidInput, "assignment of %q in %s spans lines", key, v.file.path)
		case strings.ContainsRune(a.Value, v.file.syntax.Comment):
			return errors.Newf(errors.ErrInvalidInput, "value %q of %s in %s contains the comment character", a.Value, key, v.file.path)
		case strings.TrimSpace(a.Value) != a.Value:
			return errors.Newf(errors.ErrInvalidInput, "value %q of %s in %s has surrounding whitespace", a.Value, key, v.file.path)
		case seen[key]:
			return errors.Newf(errors.ErrInvalidInput, "key %q set twice in %s", key, v.file.path)
		}
		seen[key] = true
	}
	return nil
}

func (v *Values) wanted() map[string]string {
	m := make(map[string]string, len(v.assignments))
	for _, a := range v.assignments {
		m[a.Key] = a.Value
	}
	return m
}

// read returns the expanded path and contents. A missing file reads as
// empty.
func (v *Values) read() (string, string, error) {
	path, err := v.file.path.Expand()
	if err != nil {
		return "", "", err
	}
	data, err := afero.ReadFile(v.file.fs, path)
	if err != nil && !os.IsNotExist(err) {
		return path, "", errors.WrapIO(err, "failed to read %s", path)
	}
	return path, string(data), nil
}

func (v *Values) Check() (bool, error) {
	_, content, err := v.read()
	if err != nil {
		return false, err
	}

	wanted := v.wanted()
	needed := len(wanted)
	found := make(map[string]bool, len(wanted))
	for _, line := range textutil.SplitLines(content) {
		key, current, ok := v.file.syntax.parseLine(line)
		if !ok {
			continue
		}
		want, managed := wanted[key]
		if !managed {
			continue
		}
		if current != want {
			return false, nil
		}
		if !found[key] {
			found[key] = true
			needed--
		}
	}
	return needed == 0, nil
}

// Apply rewrites the file with every managed key set to its value.
func (v *Values) Apply() error {
	path, content, err := v.read()
	if err != nil {
		return err
	}

	if err := afero.WriteFile(v.file.fs, path, []byte(v.render(content)), 0644); err != nil {
		return errors.WrapIO(err, "failed to write %s", path)
	}
	return nil
}

// render returns content with managed values replaced and missing keys
// appended. Untouched lines keep their bytes, including "\r\n" endings;
// a replaced line keeps the ending of the line it replaces. Every line
// ends with a newline.
func (v *Values) render(content string) string {
	wanted := v.wanted()
	seen := make(map[string]bool, len(wanted))
	equal := string(v.file.syntax.Equal)

	var sb strings.Builder
	for _, raw := range textutil.SplitRawLines(content) {
		body := strings.TrimRight(raw, "\r\n")
		ending := raw[len(body):]
		if !strings.HasSuffix(ending, "\n") {
			ending += "\n"
		}
		if key, current, ok := v.file.syntax.parseLine(body); ok {
			if want, managed := wanted[key]; managed {
				seen[key] = true
				if current != want {
					v.logger.Debug().Str("key", key).Str("from", current).Str("to", want).Msg("replacing value")
					sb.WriteString(key + equal + want + ending)
					continue
				}
			}
		}
		sb.WriteString(body + ending)
	}
	for _, a := range v.assignments {
		if seen[a.Key] {
			continue
		}
		seen[a.Key] = true
		v.logger.Debug().Str("key", a.Key).Str("value", a.Value).Msg("adding value")
		sb.WriteString(a.Key + equal + a.Value + "\n")
	}
	return sb.String()
}

// Diff implements property.Differ
func (v *Values) Diff() (string, error) {
	_, content, err := v.read()
	if err != nil {
		return "", err
	}
	ok, err := v.Check()
	if err != nil || ok {
		return "", err
	}
	return textutil.Diff(content, v.render(content)), nil
}
