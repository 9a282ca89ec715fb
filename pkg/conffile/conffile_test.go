package conffile_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wzhd/rotor/pkg/conffile"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/paths"
)

const confPath = "/home/user/.config/user-dirs.conf"

func setup(t *testing.T, content string) (afero.Fs, conffile.ConfFile) {
	t.Helper()
	t.Setenv(paths.EnvHome, "/home/user")
	fs := afero.NewMemMapFs()
	if content != "" {
		require.NoError(t, afero.WriteFile(fs, confPath, []byte(content), 0644))
	}
	return fs, conffile.Classic(paths.Home(".config/user-dirs.conf")).WithFs(fs)
}

func read(t *testing.T, fs afero.Fs) string {
	t.Helper()
	data, err := afero.ReadFile(fs, confPath)
	require.NoError(t, err)
	return string(data)
}

func TestReplacesValue(t *testing.T) {
	fs, c := setup(t, "enabled=True\n# comment\nother=x\n")
	prop := c.ValueSet("enabled", "False")

	ok, err := prop.Check()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, prop.Apply())
	assert.Equal(t, "enabled=False\n# comment\nother=x\n", read(t, fs))

	ok, err = prop.Check()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"matching", "enabled=False\n", true},
		{"whitespace_trimmed", "  enabled =  False  \n", true},
		{"trailing_comment", "enabled=False # set by rotor\n", true},
		{"commented_out", "# enabled=False\n", false},
		{"different_value", "enabled=True\n", false},
		{"missing_key", "other=x\n", false},
		{"later_mismatch", "enabled=False\nenabled=True\n", false},
		{"empty_file", "", false},
		{"no_assignment", "enabled\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := setup(t, tt.content)
			ok, err := c.ValueSet("enabled", "False").Check()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestValueWithAssignmentCharacter(t *testing.T) {
	_, c := setup(t, "url = http://x/?a=b\n")
	ok, err := c.ValueSet("url", "http://x/?a=b").Check()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAppendsMissingKeysInOrder(t *testing.T) {
	fs, c := setup(t, "# header\nb=1")
	prop := c.ValuesSet(
		conffile.Assignment{Key: "c", Value: "3"},
		conffile.Assignment{Key: "b", Value: "1"},
		conffile.Assignment{Key: "a", Value: "2"},
	)

	require.NoError(t, prop.Apply())
	assert.Equal(t, "# header\nb=1\nc=3\na=2\n", read(t, fs))

	ok, err := prop.Check()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMissingFileIsCreated(t *testing.T) {
	fs, c := setup(t, "")
	prop := c.ValueSet("enabled", "False")

	require.NoError(t, prop.Apply())
	assert.Equal(t, "enabled=False\n", read(t, fs))
}

func TestReplacedLineDropsComment(t *testing.T) {
	fs, c := setup(t, "enabled = True # default\n")

	require.NoError(t, c.ValueSet("enabled", "False").Apply())
	assert.Equal(t, "enabled=False\n", read(t, fs))
}

func TestMatchingLineKeptVerbatim(t *testing.T) {
	fs, c := setup(t, "enabled = False # keep\nother = 1\n")

	require.NoError(t, c.ValueSet("other", "2").Apply())
	assert.Equal(t, "enabled = False # keep\nother=2\n", read(t, fs))
}

func TestCustomSyntax(t *testing.T) {
	t.Setenv(paths.EnvHome, "/home/user")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/app.conf", []byte("; comment\nmode: fast\n"), 0644))
	c := conffile.WithSyntax(paths.New("/etc/app.conf"), ';', ':').WithFs(fs)

	require.NoError(t, c.ValueSet("mode", "slow").Apply())

	data, err := afero.ReadFile(fs, "/etc/app.conf")
	require.NoError(t, err)
	assert.Equal(t, "; comment\nmode:slow\n", string(data))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		assignments []conffile.Assignment
		wantErr     bool
	}{
		{"valid", []conffile.Assignment{{Key: "a", Value: "1"}, {Key: "b", Value: ""}}, false},
		{"empty_key", []conffile.Assignment{{Key: "", Value: "1"}}, true},
		{"padded_key", []conffile.Assignment{{Key: " a", Value: "1"}}, true},
		{"comment_in_key", []conffile.Assignment{{Key: "a#b", Value: "1"}}, true},
		{"equal_in_key", []conffile.Assignment{{Key: "a=b", Value: "1"}}, true},
		{"newline_in_value", []conffile.Assignment{{Key: "a", Value: "1\n2"}}, true},
		{"comment_in_value", []conffile.Assignment{{Key: "color", Value: "#fff"}}, true},
		{"padded_value", []conffile.Assignment{{Key: "k", Value: " padded"}}, true},
		{"trailing_space_value", []conffile.Assignment{{Key: "k", Value: "v "}}, true},
		{"equal_in_value", []conffile.Assignment{{Key: "k", Value: "a=b"}}, false},
		{"duplicate", []conffile.Assignment{{Key: "a", Value: "1"}, {Key: "a", Value: "2"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := setup(t, "")
			err := c.ValuesSet(tt.assignments...).Validate()
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeepsCRLFLines(t *testing.T) {
	fs, c := setup(t, "enabled=True\r\n# comment\r\nother=x\r\n")
	prop := c.ValueSet("enabled", "False")

	require.NoError(t, prop.Apply())
	assert.Equal(t, "enabled=False\r\n# comment\r\nother=x\r\n", read(t, fs))

	ok, err := prop.Check()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAppendsAfterUnterminatedLine(t *testing.T) {
	fs, c := setup(t, "a=1")

	require.NoError(t, c.ValueSet("b", "2").Apply())
	assert.Equal(t, "a=1\nb=2\n", read(t, fs))
}

func TestDiff(t *testing.T) {
	_, c := setup(t, "enabled=True\n# comment\nother=x\n")

	diff, err := c.ValueSet("enabled", "False").Diff()
	require.NoError(t, err)
	assert.Equal(t, "-enabled=True\n+enabled=False\n # comment\n other=x\n", diff)

	diff, err = c.ValueSet("other", "x").Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestString(t *testing.T) {
	_, c := setup(t, "")
	prop := c.ValuesSet(conffile.Assignment{Key: "a", Value: "1"}, conffile.Assignment{Key: "b", Value: "2"})
	assert.Equal(t, "Conf file ~/.config/user-dirs.conf has 2 values set", prop.String())
}
