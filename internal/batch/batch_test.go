package batch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weirlive/panw-object/internal/batch"
	"github.com/weirlive/panw-object/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	want := &domain.Request{
		Zone:       "DMZ",
		Operation:  domain.OperationCreate,
		ObjectType: domain.TypeAuto,
		Tag:        "web",
		DeclareTag: true,
		Group:      &domain.GroupSpec{Suffix: "Web Servers", DeclareTag: true},
		Entries:    []string{"10.0.0.1", "10.0.1.0/24", "multi", "line"},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "req.yaml",
			content: `zone: DMZ
operation: create
object_type: AUTO
tag: web
declare_tag: true
group:
  suffix: Web Servers
  declare_tag: true
entries:
  - 10.0.0.1
  - "  10.0.1.0/24  "
  - ""
  - |
    multi
    line
`,
		},
		{
			name: "toml",
			file: "req.toml",
			content: `zone = "DMZ"
operation = "create"
object_type = "AUTO"
tag = "web"
declare_tag = true
entries = ["10.0.0.1", "10.0.1.0/24", "", "multi\nline"]

[group]
suffix = "Web Servers"
declare_tag = true
`,
		},
		{
			name: "json",
			file: "req.JSON",
			content: `{"zone":"DMZ","operation":"create","object_type":"AUTO","tag":"web","declare_tag":true,
"group":{"suffix":"Web Servers","declare_tag":true},
"entries":["10.0.0.1","10.0.1.0/24","","multi\r\nline"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := batch.Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := batch.Load(writeFile(t, "req.txt", "zone: DMZ"))
	assert.True(t, errors.Is(err, batch.ErrUnknownFormat))

	_, err = batch.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = batch.Load(writeFile(t, "bad.toml", "zone = \"DMZ\"\noperation = \n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = batch.Load(writeFile(t, "bad.json", `{"zone":"DMZ","unknown":1}`))
	assert.Error(t, err)
}

func TestSplitEntries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank lines", "\n  \n\t\n", []string{}},
		{"unix", "a\nb\n", []string{"a", "b"}},
		{"windows", "a\r\n b \r\n\r\nc", []string{"a", "b", "c"}},
		{"order kept with duplicates", "b\na\nb", []string{"b", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, batch.SplitEntries(tt.text))
		})
	}
}
