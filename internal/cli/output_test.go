package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tweetscrape/internal/model"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(CodeDuplicate, "topic/query already exists, ID=1", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E002", resp.Error.Code)
	assert.Equal(t, "topic/query already exists, ID=1", resp.Error.Message)
}

func TestOutputFormatter_YAMLSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "yaml",
		Writer: buf,
	}

	err := formatter.Success(topicTable{Topics: []model.Topic{
		{ID: 1, Topic: "Movies", Query: "#film", Active: true},
	}})
	require.NoError(t, err)

	var resp struct {
		Status string     `yaml:"status"`
		Data   topicTable `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Topics, 1)
	assert.Equal(t, "#film", resp.Data.Topics[0].Query)
	assert.True(t, resp.Data.Topics[0].Active)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("nothing to do")
	require.NoError(t, err)
	assert.Equal(t, "nothing to do\n", buf.String())
}

func TestOutputFormatter_TextUsesRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success(runSummary{Topics: 2, Fetched: 5, Inserted: 3})
	require.NoError(t, err)
	assert.Equal(t, "Fetched 5, inserted 3 across 2 topics.\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error(CodeStorage, "storage failed", map[string]string{"path": "ts.db"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E004]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_DiagnosticsGoToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: errOut,
	}

	formatter.Diagnostic("Remove successful, ID=%d", 3)
	formatter.VerboseLog("hidden")
	assert.Empty(t, out.String())
	assert.Equal(t, "Remove successful, ID=3\n", errOut.String())

	formatter.Verbose = true
	formatter.VerboseLog("Processing %s", "ts.db")
	assert.Contains(t, errOut.String(), "Processing ts.db")
}

func TestToExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{name: "usage", err: model.NewUsageError("bad id"), wantCode: ExitFailure, wantKind: CodeUsage},
		{name: "duplicate", err: &model.DuplicateError{ExistingID: 4}, wantCode: ExitFailure, wantKind: CodeDuplicate},
		{name: "config", err: &configError{err: errors.New("page_size")}, wantCode: ExitCommandError, wantKind: CodeConfig},
		{name: "remote", err: &model.RemoteError{Query: "#film", Err: errors.New("503")}, wantCode: ExitCommandError, wantKind: CodeRemote},
		{name: "storage", err: &model.StorageError{Op: "insert result", Err: errors.New("disk full")}, wantCode: ExitCommandError, wantKind: CodeStorage},
		{name: "wrapped storage", err: fmt.Errorf("list topics: %w", errors.New("no such table")), wantCode: ExitCommandError, wantKind: CodeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toExitError(tt.err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Equal(t, tt.wantKind, errorCode(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, toExitError(nil))

	// Errors cobra raises itself never reach toExitError.
	cobraErr := errors.New("unknown shorthand flag: 'x' in -x")
	assert.Equal(t, ExitFailure, GetExitCode(cobraErr))
	assert.Equal(t, CodeUsage, errorCode(cobraErr))
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "usage",
			err:  model.NewUsageError("Command requires one argument."),
			want: "Error: Command requires one argument.\nFor help use --help.\n",
		},
		{
			name: "duplicate",
			err:  &model.DuplicateError{ExistingID: 7},
			want: "Topic/Query already exists, ID=7\n",
		},
		{
			name: "fatal",
			err:  WrapExitError(ExitCommandError, "search failed", errors.New("timeout")),
			want: "Error: search failed: timeout\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			ReportError(buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
