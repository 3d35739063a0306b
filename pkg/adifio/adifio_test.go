package adifio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "<ADIF_VER:3>3.1<EOH>\n<CALL:5>K1ABC<QSO_DATE:8>20240101<TIME_ON:4>1200<EOR>\n"

func roundTripFile(t *testing.T, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	w, err := Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, sampleDoc)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, got)
}

func TestRoundTripPlain(t *testing.T) {
	roundTripFile(t, "log.adi")
}

func TestRoundTripGzip(t *testing.T) {
	roundTripFile(t, "log.adi.gz")
}

func TestRoundTripZstd(t *testing.T) {
	roundTripFile(t, "log.adi.zst")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.adi"))
	assert.Error(t, err)
}

func TestOpenCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.adi.gz")
	require.NoError(t, os.WriteFile(path, []byte("not a gzip stream"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}
