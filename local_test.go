package main

import "bufio"
import "os"
import "path/filepath"
import "strings"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func writeMeta(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

func TestParseSystemRelease(t *testing.T) {
	release, core, err := parseSystemRelease("IPFire 2.27 (x86_64) - core160")
	require.NoError(t, err)
	assert.Equal(t, "2.27", release)
	assert.Equal(t, 160, core)

	release, core, err = parseSystemRelease("IPFire 2.9 (armv6l) - core7")
	require.NoError(t, err)
	assert.Equal(t, "2.9", release)
	assert.Equal(t, 7, core)

	_, _, err = parseSystemRelease("Debian GNU/Linux 12")
	assert.Error(t, err)
}

func TestReadSystemRelease(t *testing.T) {
	release, core, err := ReadSystemRelease("testdata/system-release")
	require.NoError(t, err)
	assert.Equal(t, "2.27", release)
	assert.Equal(t, 160, core)

	_, _, err = ReadSystemRelease(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "System release file not found")
}

func TestParsePackageMeta(t *testing.T) {
	meta := "Name: bash\nSummary: GNU Bourne Again SHell\nProgVersion: 5.1.8\nRelease: 7\nSize: 1234\n"
	name, version, err := parsePackageMeta(bufio.NewScanner(strings.NewReader(meta)))
	require.NoError(t, err)
	assert.Equal(t, "bash", name)
	assert.Equal(t, "5.1.8.7", version)

	_, _, err = parsePackageMeta(bufio.NewScanner(strings.NewReader("Name: nano\nProgVersion: 7.2\n")))
	assert.ErrorIs(t, err, ErrIncompleteDescriptor)
}

func TestReadInstalledPackages(t *testing.T) {
	dir := t.TempDir()
	writeMeta(t, dir, "meta-bash", "Name: bash\nProgVersion: 5.1.8\nRelease: 7\n")
	writeMeta(t, filepath.Join(dir, "sub"), "meta-nano", "Name: nano\nProgVersion: 7.2\nRelease: 12\n")
	writeMeta(t, dir, "meta-core-upgrade", "Name: core-upgrade\nProgVersion: 2.27\nRelease: 160\n")
	// no Release, must not inherit the one of another package
	writeMeta(t, dir, "meta-tor", "Name: tor\nProgVersion: 0.4.7.13\n")

	packages := ReadInstalledPackages(dir)
	assert.Equal(t, map[string]string{
		"bash": "5.1.8.7",
		"nano": "7.2.12",
	}, packages)
}

func TestReadInstalledPackagesMissingDir(t *testing.T) {
	packages := ReadInstalledPackages(filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, packages)
	assert.Empty(t, packages)
}

func TestReadInstalledStateWithoutPackageTree(t *testing.T) {
	state, err := ReadInstalledState(Paths{
		SystemRelease: "testdata/system-release",
		InstalledDir:  filepath.Join(t.TempDir(), "installed"),
	})
	require.NoError(t, err)
	assert.Equal(t, 160, state.Core)
	assert.Empty(t, state.Packages)
}

func TestReadInstalledState(t *testing.T) {
	dir := t.TempDir()
	writeMeta(t, dir, "meta-bash", "Name: bash\nProgVersion: 5.1.0\nRelease: 1\n")

	state, err := ReadInstalledState(Paths{SystemRelease: "testdata/system-release", InstalledDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "2.27", state.Release)
	assert.Equal(t, 160, state.Core)
	assert.Equal(t, map[string]string{"bash": "5.1.0.1"}, state.Packages)

	_, err = ReadInstalledState(Paths{SystemRelease: filepath.Join(dir, "nope"), InstalledDir: dir})
	assert.Error(t, err)
}
