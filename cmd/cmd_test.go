package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/nsf/jsondiff"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/pwdigest/internal/pwhash"
)

const digest12345 = "460e0af6c1828a93fe887cbe103d6ca6ab97a0e4"

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// execute runs the root command with args and stdin, isolated from any
// config file in the user's home directory
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	color.NoColor = true

	for _, c := range rootCmd.Commands() {
		resetFlags(c)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHashCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "argument",
			args: []string{"hash", "--quiet", "12345"},
			want: digest12345 + "\n",
		},
		{
			name: "uppercase argument",
			args: []string{"hash", "--quiet", "PassWord"},
			want: "1d0dc8ecc058e776258cdab9ff6a10ff1629248e\n",
		},
		{
			name: "default output masks password",
			args: []string{"hash", "12345"},
			want: digest12345 + "  1****\n",
		},
		{
			name:  "stdin lines",
			stdin: "12345\r\n\npassword\n",
			args:  []string{"hash", "--quiet"},
			want:  digest12345 + "\n1d0dc8ecc058e776258cdab9ff6a10ff1629248e\n",
		},
		{
			name: "base64",
			args: []string{"hash", "--quiet", "-e", "base64", "12345"},
			want: "Rg4K9sGCipP+iHy+ED1spquXoOQ=\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHashCommandErrors(t *testing.T) {
	_, err := execute(t, "", "hash", "")
	assert.ErrorIs(t, err, pwhash.ErrInvalidData)

	_, err = execute(t, strings.Repeat("a", pwhash.MaxPasswordLen+1)+"\n", "hash")
	assert.ErrorIs(t, err, pwhash.ErrInvalidData)

	_, err = execute(t, "", "hash")
	assert.Error(t, err)

	_, err = execute(t, "", "hash", "--encoding", "rot13", "12345")
	assert.Error(t, err)
}

func TestHashCommandProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nprofiles:\n  b58:\n    encoding: base58\n    quiet: true\n"), 0o644))

	got, err := execute(t, "", "hash", "--config", path, "-P", "b58", "12345")
	require.NoError(t, err)
	want, err := execute(t, "", "hash", "--quiet", "-e", "base58", "12345")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// flags override the profile
	got, err = execute(t, "", "hash", "--config", path, "-P", "b58", "-e", "hex", "12345")
	require.NoError(t, err)
	assert.Equal(t, digest12345+"\n", got)
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "", "check", "--quiet", digest12345, "12345")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, err = execute(t, "", "check", "--quiet", strings.ToUpper(digest12345), "12345")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	_, err = execute(t, "12345\n", "check", "Rg4K9sGCipP+iHy+ED1spquXoOQ=")
	require.NoError(t, err)

	out, err = execute(t, "", "check", "--quiet", digest12345, "54321")
	assert.True(t, errors.Is(err, errMismatch))
	assert.True(t, strings.HasPrefix(out, "FAILED\n"), out)

	_, err = execute(t, "", "check", "not-a-digest", "12345")
	assert.Error(t, err)

	_, err = execute(t, "", "check", "-e", "base64", digest12345, "12345")
	assert.Error(t, err)
}

func TestInspectJSON(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "inspect-12345.json"))
	require.NoError(t, err)

	got, err := execute(t, "", "inspect", "-f", "json", "12345")
	require.NoError(t, err)

	opts := jsondiff.DefaultConsoleOptions()
	diff, explanation := jsondiff.Compare([]byte(got), want, &opts)
	if diff != jsondiff.FullMatch {
		t.Errorf("inspect JSON mismatch:\n%s", explanation)
	}
}

func TestInspectJSONVerbose(t *testing.T) {
	got, err := execute(t, "", "inspect", "-f", "json", "-v", strings.Repeat("k", 70))
	require.NoError(t, err)

	subset := []byte(`{"input_size": 70, "normalized_size": 70, "seed_bytes": 64, "ignored_bytes": 6}`)
	opts := jsondiff.DefaultConsoleOptions()
	diff, explanation := jsondiff.Compare([]byte(got), subset, &opts)
	if diff != jsondiff.SupersetMatch {
		t.Errorf("inspect JSON is not a superset:\n%s", explanation)
	}
	assert.Contains(t, got, `"rounds"`)
}

func TestInspectText(t *testing.T) {
	got, err := execute(t, "", "inspect", "12345")
	require.NoError(t, err)
	assert.Contains(t, got, "Message schedule:")
	assert.Contains(t, got, digest12345)

	_, err = execute(t, "", "inspect", "-f", "yaml", "12345")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
jobs:
  - name: first
    password: "12345"
    expect: `+digest12345+`
  - name: second
    password: PassWord
`), 0o644))

	out, err := execute(t, "", "batch", "--quiet", "-w", "2", path)
	require.NoError(t, err)
	assert.Equal(t, digest12345+"  first\n1d0dc8ecc058e776258cdab9ff6a10ff1629248e  second\n", out)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: 1\njobs:\n  - password: a\n    expect: "+digest12345+"\n"), 0o644))
	_, err = execute(t, "", "batch", "--quiet", bad)
	assert.EqualError(t, err, "1 of 1 jobs failed")

	_, err = execute(t, "", "batch", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestHashVerboseLowercasedSize(t *testing.T) {
	// "İ" is two bytes but lowercases to three
	password := strings.Repeat("İ", 40)

	out, err := execute(t, "", "hash", "-v", password)
	require.NoError(t, err)
	assert.Contains(t, out, "120 B")
	assert.Contains(t, out, "56 bytes past offset 64")
	assert.NotContains(t, out, "80 B")

	out, err = execute(t, "", "inspect", "-f", "json", password)
	require.NoError(t, err)
	assert.Contains(t, out, `"ignored_bytes": 56`)
}

func TestBatchCommandEncoding(t *testing.T) {
	dir := t.TempDir()
	batchPath := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(batchPath, []byte("version: 1\nencoding: base64\njobs:\n  - name: a\n    password: \"12345\"\n"), 0o644))
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`version: 1
profiles:
  fast:
    workers: 2
  legacy:
    encoding: hex
`), 0o644))

	const base64Digest = "Rg4K9sGCipP+iHy+ED1spquXoOQ="
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "batch file encoding",
			args: []string{"batch", "--quiet", batchPath},
			want: base64Digest,
		},
		{
			name: "profile without encoding keeps the file encoding",
			args: []string{"batch", "--quiet", "--config", configPath, "-P", "fast", batchPath},
			want: base64Digest,
		},
		{
			name: "profile encoding overrides the file",
			args: []string{"batch", "--quiet", "--config", configPath, "-P", "legacy", batchPath},
			want: digest12345,
		},
		{
			name: "flag overrides profile and file",
			args: []string{"batch", "--quiet", "--config", configPath, "-P", "legacy", "-e", "base64", batchPath},
			want: base64Digest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"  a\n", out)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("v1.2.3", "unknown")
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "pwdigest version: v1.2.3\n", out)
}
