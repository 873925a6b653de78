package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintBuildData(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.0"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	require.Equal(t, "Build version: v1.2.0\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
}
