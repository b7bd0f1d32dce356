package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devrig/internal/testutil/mocks"
)

func TestInstalled(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("sh", []string{"-c", "command -v -- git"}, "/usr/bin/git\n")
	runner.AddFailure("sh", []string{"-c", "command -v -- pyenv"}, "")
	p := New(runner, mocks.NewFileSystem())

	installed, err := p.Installed(context.Background(), "git")
	require.NoError(t, err)
	assert.True(t, installed)

	// An absent tool is not an error.
	installed, err = p.Installed(context.Background(), "pyenv")
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestInstalledRejectsInvalidToolName(t *testing.T) {
	t.Parallel()

	p := New(mocks.NewCommandRunner(), mocks.NewFileSystem())

	_, err := p.Installed(context.Background(), "git; rm -rf /")
	require.Error(t, err)
}

func TestVersionOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stdout string
		want   string
	}{
		{name: "plain version", stdout: "git version 2.43.0\n", want: "2.43.0"},
		{name: "two component", stdout: "Python 3.12\n", want: "3.12"},
		{name: "nothing version shaped", stdout: "development build\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := mocks.NewCommandRunner()
			runner.AddSuccess("sh", []string{"-c", "command -v -- tool"}, "/usr/bin/tool\n")
			runner.AddSuccess("tool", []string{"--version"}, tt.stdout)
			p := New(runner, mocks.NewFileSystem())

			got, err := p.VersionOf(context.Background(), "tool")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionOfAbsentTool(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddFailure("sh", []string{"-c", "command -v -- gone"}, "")
	p := New(runner, mocks.NewFileSystem())

	got, err := p.VersionOf(context.Background(), "gone")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileContains(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile("/home/dev/.bashrc", "export EDITOR=vim\n")
	p := New(mocks.NewCommandRunner(), fs)

	has, err := p.FileContains("/home/dev/.bashrc", "EDITOR=vim")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = p.FileContains("/home/dev/.bashrc", "EDITOR=emacs")
	require.NoError(t, err)
	assert.False(t, has)

	// Missing file simply does not contain the needle.
	has, err = p.FileContains("/home/dev/.profile", "anything")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddDir("/home/dev/.pyenv")
	p := New(mocks.NewCommandRunner(), fs)

	assert.True(t, p.DirExists("/home/dev/.pyenv"))
	assert.False(t, p.DirExists("/home/dev/.nvm"))
}

func TestHostOSRelease(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile("/etc/os-release", `
NAME="Ubuntu"
VERSION_ID="24.04"
ID=ubuntu
PRETTY_NAME="Ubuntu 24.04.1 LTS"
`)
	p := New(mocks.NewCommandRunner(), fs)

	osr := p.HostOSRelease()
	assert.Equal(t, "ubuntu", osr.ID)
	assert.Equal(t, "24.04", osr.VersionID)
	assert.Equal(t, "Ubuntu 24.04.1 LTS", osr.PrettyName)
}

func TestHostOSReleaseMissingFile(t *testing.T) {
	t.Parallel()

	p := New(mocks.NewCommandRunner(), mocks.NewFileSystem())

	assert.Equal(t, OSRelease{}, p.HostOSRelease())
}
