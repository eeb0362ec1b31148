package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/modelflow"
	"github.com/tordrt/modelflow/internal/erdl"
)

// run executes the CLI in an empty working directory and returns its
// stdout, stderr and error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runWithInput(t, "", args...)
}

// runWithInput is run with stdin reading from input.
func runWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSampleCommand(t *testing.T) {
	stdout, _, err := run(t, "sample")
	require.NoError(t, err)
	assert.Equal(t, erdl.Sample+"\n", stdout)
}

func TestParseCommand(t *testing.T) {
	sample := writeFile(t, "sample.erdl", erdl.Sample)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "text",
			args: []string{"parse", sample},
			want: []string{"TABLE Customer (PK: CustomerID)", "TABLE OrderItem"},
		},
		{
			name: "markdown",
			args: []string{"parse", sample, "--format", "markdown"},
			want: []string{"# Data Model", "## Order", "- **TotalAmount:** DECIMAL(10,2), NOT NULL"},
		},
		{
			name: "json",
			args: []string{"parse", sample, "-f", "json"},
			want: []string{`"name": "Customer"`, `"isForeignKey": true`},
		},
		{
			name: "yaml",
			args: []string{"parse", sample, "-f", "yaml"},
			want: []string{"name: OrderItem", "type: VARCHAR(255)"},
		},
		{
			name: "erdl",
			args: []string{"parse", sample, "-f", "erdl"},
			want: []string{"Customer-\nCustomerID INT\nName VARCHAR(100)\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Empty(t, stderr)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestParseCommandStdin(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "dash", args: []string{"parse", "-", "-f", "erdl"}},
		{name: "no argument", args: []string{"parse", "-f", "erdl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runWithInput(t, "sales.Customer-\nName string\n", tt.args...)
			require.NoError(t, err)
			assert.Empty(t, stderr)
			assert.Equal(t, "sales.Customer-\nName VARCHAR(255)\n", stdout)
		})
	}
}

func TestParseCommandReportsErrors(t *testing.T) {
	path := writeFile(t, "broken.erdl", "???\nCustomer-\nName string\nOnlyName\n")

	stdout, stderr, err := run(t, "parse", path)
	require.ErrorIs(t, err, modelflow.ErrParseFailed)

	assert.Contains(t, stderr, `line 1: unrecognized syntax "???"`)
	assert.Contains(t, stderr, `line 4: unrecognized syntax "OnlyName"`)
	assert.Contains(t, stdout, "TABLE Customer")
}

func TestParseCommandOutputFile(t *testing.T) {
	sample := writeFile(t, "sample.erdl", erdl.Sample)
	out := filepath.Join(t.TempDir(), "model.md")

	stdout, _, err := run(t, "parse", sample, "-f", "markdown", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Data Model"))
}

func TestParseCommandOutputDir(t *testing.T) {
	sample := writeFile(t, "sample.erdl", erdl.Sample)

	tests := []struct {
		name      string
		threshold string
		wantSplit bool
	}{
		{name: "no threshold", threshold: "0", wantSplit: true},
		{name: "below threshold", threshold: "5", wantSplit: false},
		{name: "above threshold", threshold: "2", wantSplit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "model")

			stdout, _, err := run(t, "parse", sample, "-d", dir, "--split-threshold", tt.threshold)
			require.NoError(t, err)

			_, statErr := os.Stat(filepath.Join(dir, "Customer.txt"))
			if tt.wantSplit {
				assert.NoError(t, statErr)
				assert.Empty(t, stdout)
			} else {
				assert.True(t, os.IsNotExist(statErr))
				assert.Contains(t, stdout, "TABLE Customer")
			}
		})
	}
}

func TestParseCommandConfigFile(t *testing.T) {
	sample := writeFile(t, "sample.erdl", erdl.Sample)
	cfg := writeFile(t, "modelflow.yaml", "output:\n  format: erdl\n")

	stdout, _, err := run(t, "--config", cfg, "parse", sample)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Customer-\n"))

	stdout, _, err = run(t, "--config", cfg, "parse", sample, "-f", "text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "TABLE Customer"), "flags override the config file")
}

func TestInvalidSettings(t *testing.T) {
	sample := writeFile(t, "sample.erdl", erdl.Sample)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "format", args: []string{"parse", sample, "-f", "html"}, wantErr: "invalid format"},
		{name: "log level", args: []string{"parse", sample, "--log-level", "loud"}, wantErr: "invalid log level"},
		{name: "output conflict", args: []string{"parse", sample, "-o", "a.txt", "-d", "docs"}, wantErr: "cannot use both"},
		{name: "missing config", args: []string{"--config", "missing.yaml", "sample"}, wantErr: "failed to read config file"},
		{name: "missing file", args: []string{"parse", "missing.erdl"}, wantErr: "failed to open"},
		{name: "import without url", args: []string{"import"}, wantErr: "--db-url"},
		{name: "import bad url", args: []string{"import", "--db-url", "oracle://x"}, wantErr: "invalid database URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
