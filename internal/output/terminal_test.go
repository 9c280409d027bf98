package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalWidth_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, defaultTermWidth, TerminalWidth(&buf))
}

func TestNewWrappingTable_Renders(t *testing.T) {
	var buf bytes.Buffer
	table := NewWrappingTable(&buf, 20, 10)
	table.Header([]string{"DIR", "VERSION"})
	require.NoError(t, table.Bulk([][]string{{"app", "1.2.3"}}))
	require.NoError(t, table.Render())

	assert.Contains(t, buf.String(), "1.2.3")
	assert.Contains(t, buf.String(), "app")
}
