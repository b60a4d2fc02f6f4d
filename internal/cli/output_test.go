package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success(RenderResult{SQL: "SELECT * FROM `a`", Args: []any{}}))
	assert.Equal(t, "SELECT * FROM `a`\n-- args: []\n", buf.String())
}

func TestOutputFormatter_JSONFail(t *testing.T) {
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag}

	err := formatter.Fail(ExitFailure, ErrCodeBuild, errors.New("bad chain"))
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Empty(t, diag.String())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBuild, resp.Error.Code)
	assert.Equal(t, "bad chain", resp.Error.Message)
}

func TestOutputFormatter_TextFail(t *testing.T) {
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: out, ErrWriter: diag}

	err := formatter.Fail(ExitCommandError, ErrCodeDefinition, errors.New("no such file"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, out.String())
	assert.Equal(t, "Error [E001]: no such file\n", diag.String())
}

func TestOutputFormatter_TextFailWithoutErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: out}

	_ = formatter.Fail(ExitFailure, ErrCodeQuery, errors.New("boom"))
	assert.Equal(t, "Error [E004]: boom\n", out.String())
}

func TestExitError(t *testing.T) {
	cause := errors.New("cause")
	err := WrapExitError(ExitCommandError, "failed to load configuration", cause)

	assert.Equal(t, "failed to load configuration: cause", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", NewExitError(ExitFailure, "plain").Error())
	assert.False(t, IsReported(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("unknown flag")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "x"))))
}

func TestPrintError(t *testing.T) {
	buf := &bytes.Buffer{}
	PrintError(buf, errors.New("something broke"))
	assert.Equal(t, "Error: something broke\n", buf.String())
}
