package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KaramelBytes/housedash/internal/artifacts"
	"github.com/KaramelBytes/housedash/internal/columns"
	"github.com/KaramelBytes/housedash/internal/parser"
)

const listingsCSV = "Area,Bedroom,price\nBrera,2,500000\nNavigli,1,300000\nBrera,3,900000\n"

func writeCSV(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(p, []byte(listingsCSV), 0o644))
	return p
}

func TestLoadMemoizes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewLoader(parser.Options{}, zap.New(core))
	path := writeCSV(t)

	first, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Table.Len())
	assert.Equal(t, "Area", first.Bindings[columns.Area])
	assert.Equal(t, "Bedroom", first.Bindings[columns.Bedrooms])
	assert.NotContains(t, first.Bindings, columns.Energy)

	// Changing the file after the first load has no effect for this process.
	require.NoError(t, os.WriteFile(path, []byte("Area\nIsola\n"), 0o644))
	second, err := l.Load(filepath.Join(filepath.Dir(path), ".", "data.csv"))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.EqualValues(t, 1, l.Reads())
	assert.Equal(t, 1, logs.FilterMessage("dataset loaded").Len())
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader(parser.Options{}, nil)
	path := filepath.Join(t.TempDir(), "data_final.xlsx")
	_, err := l.Load(path)
	var missing *artifacts.MissingFileError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, "data file not found: "+path, err.Error())
	assert.EqualValues(t, 0, l.Reads())

	// A failed load is not cached.
	require.NoError(t, os.WriteFile(path+".csv", []byte(listingsCSV), 0o644))
	_, err = l.Load(path + ".csv")
	require.NoError(t, err)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	l := NewLoader(parser.Options{}, nil)
	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, os.WriteFile(path, []byte("PAR1"), 0o644))
	_, err := l.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnsupported)
}

func TestLoadConcurrentFirstUseReadsOnce(t *testing.T) {
	l := NewLoader(parser.Options{}, nil)
	path := writeCSV(t)

	var wg sync.WaitGroup
	results := make([]*Dataset, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := l.Load(path)
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()
	for _, ds := range results[1:] {
		assert.Same(t, results[0], ds)
	}
	assert.EqualValues(t, 1, l.Reads())
}
