package zio

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(Te *testing.T) {
	f, base := FormatOf("1ubq.pdb.gz")
	assert.Equal(Te, Gzip, f)
	assert.Equal(Te, "1ubq.pdb", base)
	f, base = FormatOf("Protein_A.itp.ZST")
	assert.Equal(Te, Zstd, f)
	assert.Equal(Te, "Protein_A.itp", base)
	f, base = FormatOf("cg.gro")
	assert.Equal(Te, Plain, f)
	assert.Equal(Te, "cg.gro", base)
}

func TestRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	content := "[ moleculetype ]\nProtein_A 1\n"
	for _, name := range []string{"a.itp", "a.itp.gz", "a.itp.zst"} {
		path := filepath.Join(dir, name)
		w, err := Create(path)
		require.NoError(Te, err)
		_, err = io.WriteString(w, content)
		require.NoError(Te, err)
		require.NoError(Te, w.Close())

		r, err := Open(path)
		require.NoError(Te, err)
		b, err := io.ReadAll(r)
		require.NoError(Te, err)
		require.NoError(Te, r.Close())
		assert.Equal(Te, content, string(b), name)
	}
}
