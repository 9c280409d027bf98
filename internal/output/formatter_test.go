package output_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/fwver/internal/output"
)

type fakeResult struct {
	Version string `json:"version"`
}

func (f *fakeResult) WriteText(w io.Writer) error {
	_, err := w.Write([]byte("text:" + f.Version))
	return err
}

func (f *fakeResult) WritePlain(w io.Writer) error {
	_, err := w.Write([]byte("plain:" + f.Version))
	return err
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.FormatJSON, &fakeResult{Version: "1.2.3"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"version"`)
	assert.Contains(t, buf.String(), `"1.2.3"`)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.FormatText, &fakeResult{Version: "0.9.0"})
	require.NoError(t, err)
	assert.Equal(t, "text:0.9.0", buf.String())
}

func TestWrite_Text_NotFormattable(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.FormatText, struct{ X int }{X: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support text output")
}

func TestWrite_Plain(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.FormatPlain, &fakeResult{Version: "0.9.0"})
	require.NoError(t, err)
	assert.Equal(t, "plain:0.9.0", buf.String())
}

func TestWrite_Plain_NotFormattable(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.FormatPlain, struct{ X int }{X: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support plain output")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "plain"} {
		f, err := output.ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, output.Format(s), f)
	}
	_, err := output.ParseFormat("table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.Format("xml"), struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
