package seriesio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadCSV_SingleColumnNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	writeFile(t, path, "1.5\n2.5\n-3.0\n")

	values, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, -3.0}, values)
}

func TestReadCSV_SingleColumnWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	writeFile(t, path, "value\n1\n2\n3\n")

	values, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, values)
}

func TestReadCSV_MultiColumnValueHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	writeFile(t, path, "ts,value,flag\n0,1.1,x\n1,2.2,y\n")

	values, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.1, 2.2}, values)
}

func TestReadCSV_MultiColumnWithoutValueHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	writeFile(t, path, "ts,reading\n0,1.1\n")

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestReadCSV_MultiColumnNumericFirstRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	writeFile(t, path, "1,2\n3,4\n")

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestReadCSV_MalformedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	writeFile(t, path, "value\n1\noops\n")

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestLoadDir_RecursiveWithFiltering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.csv"), "1\n2\n3\n4\n")
	writeFile(t, filepath.Join(dir, "nested", "two.csv"), "5\n6\n7\n")
	writeFile(t, filepath.Join(dir, "short.csv"), "1\n")
	writeFile(t, filepath.Join(dir, "broken.csv"), "value\nnot-a-number\n")
	writeFile(t, filepath.Join(dir, "ignored.txt"), "9\n9\n9\n")

	series, err := LoadDir(dir, 3)
	require.NoError(t, err)

	assert.Len(t, series, 2)
	assert.Equal(t, []float64{1, 2, 3, 4}, series["one"])
	assert.Equal(t, []float64{5, 6, 7}, series["two"])
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	series, err := LoadDir(filepath.Join(t.TempDir(), "nope"), 1)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestSynthetic_ShapeAndDeterminism(t *testing.T) {
	first := Synthetic(10, 64, 7)
	require.Len(t, first, 10)
	assert.Contains(t, first, "synth_0000")
	assert.Contains(t, first, "synth_0009")
	for id, x := range first {
		assert.Len(t, x, 64, "series %s", id)
	}

	second := Synthetic(10, 64, 7)
	assert.Equal(t, first, second, "same seed should reproduce the demo set")

	other := Synthetic(10, 64, 8)
	assert.NotEqual(t, first, other, "different seed should change the noise")
}

func TestSynthetic_DegenerateArgs(t *testing.T) {
	assert.Empty(t, Synthetic(0, 64, 1))
	assert.Empty(t, Synthetic(5, 1, 1))
}
