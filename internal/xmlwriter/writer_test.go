package xmlwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/depspec/internal/types"
)

const geoschemXML = `<?xml version="1.0"?>
<!-- GEOS-Chem use case -->
<namelist_defaults>
  <!-- gas-phase dry deposition -->
  <drydep_list>
    'OLD',
  </drydep_list>
  <aer_drydep_list/>
  <gas_wetdep_list>'OLD',</gas_wetdep_list>
  <aer_wetdep_list></aer_wetdep_list>
  <start_ymd>20000101</start_ymd>
  <chem_opts mode="full" resolution="4x5">keep &amp; carry</chem_opts>
</namelist_defaults>
`

func TestFormatList(t *testing.T) {
	assert.Equal(t, "\n  'O3','CO',\n", FormatList([]string{"O3", "CO"}))
	assert.Equal(t, "\n  'SO4_A1',\n", FormatList([]string{"so4_a1"}))
	assert.Equal(t, "\n  \n", FormatList(nil))
	assert.Equal(t, "\n  \n", FormatList([]string{}))
}

func TestInject_Scenario(t *testing.T) {
	doc, err := Parse([]byte(`<x><drydep_list></drydep_list></x>`))
	require.NoError(t, err)

	report := doc.Inject(types.DepositionLists{GasDry: []string{"O3", "CO"}})

	text, ok := doc.Text("drydep_list")
	require.True(t, ok)
	assert.Equal(t, "\n  'O3','CO',\n", text)
	assert.Equal(t, 1, report.Updated[types.GasDry])
	assert.ElementsMatch(t, []types.Category{types.GasWet, types.AerDry, types.AerWet}, report.Missing)

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "<drydep_list>\n  'O3','CO',\n</drydep_list>")
}

func TestInject_AllTargets(t *testing.T) {
	doc, err := Parse([]byte(geoschemXML))
	require.NoError(t, err)

	lists := types.DepositionLists{
		GasDry: []string{"O3"},
		GasWet: []string{"hno3", "SO2"},
		AerDry: []string{"dst_a1"},
		AerWet: []string{},
	}
	report := doc.Inject(lists)

	assert.Equal(t, 4, report.UpdatedTotal())
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Skipped)

	for tag, want := range map[string]string{
		"drydep_list":     "\n  'O3',\n",
		"gas_wetdep_list": "\n  'HNO3','SO2',\n",
		"aer_drydep_list": "\n  'DST_A1',\n",
		"aer_wetdep_list": "\n  \n",
	} {
		got, ok := doc.Text(tag)
		require.True(t, ok, tag)
		assert.Equal(t, want, got, tag)
	}
}

func TestInject_RoundTripPreservesCommentsAndOtherElements(t *testing.T) {
	doc, err := Parse([]byte(geoschemXML))
	require.NoError(t, err)

	doc.Inject(types.DepositionLists{})

	out, err := doc.Bytes()
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "<!-- GEOS-Chem use case -->")
	assert.Contains(t, s, "<!-- gas-phase dry deposition -->")
	assert.Contains(t, s, "<start_ymd>20000101</start_ymd>")
	assert.Contains(t, s, `<chem_opts mode="full" resolution="4x5">keep &amp; carry</chem_opts>`)
	assert.NotContains(t, s, "OLD")

	reparsed, err := Parse(out)
	require.NoError(t, err)
	text, ok := reparsed.Text("chem_opts")
	require.True(t, ok)
	assert.Equal(t, "keep & carry", text)
}

func TestInject_Idempotent(t *testing.T) {
	lists := types.DepositionLists{GasDry: []string{"O3", "CO"}, AerWet: []string{"SO4_a1"}}

	doc, err := Parse([]byte(geoschemXML))
	require.NoError(t, err)
	doc.Inject(lists)
	first, err := doc.Bytes()
	require.NoError(t, err)

	again, err := Parse(first)
	require.NoError(t, err)
	again.Inject(lists)
	second, err := again.Bytes()
	require.NoError(t, err)

	for _, category := range types.Categories {
		a, _ := doc.Text(category.Tag())
		b, _ := again.Text(category.Tag())
		assert.Equal(t, a, b, category.Tag())
	}
	assert.Equal(t, string(first), string(second))
}

func TestInject_SkipsElementsWithChildren(t *testing.T) {
	doc, err := Parse([]byte(`<x><drydep_list><item>O3</item></drydep_list><aer_drydep_list/></x>`))
	require.NoError(t, err)

	report := doc.Inject(types.DepositionLists{GasDry: []string{"CO"}, AerDry: []string{"DST1"}})

	assert.Equal(t, []string{"drydep_list"}, report.Skipped)
	assert.Equal(t, 0, report.Updated[types.GasDry])
	assert.Equal(t, 1, report.Updated[types.AerDry])

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "<item>O3</item>")
	assert.NotContains(t, string(out), "'CO'")
}

func TestInject_FindsNestedTargets(t *testing.T) {
	doc, err := Parse([]byte(`<a><b><c><aer_wetdep_list>x</aer_wetdep_list></c></b></a>`))
	require.NoError(t, err)

	report := doc.Inject(types.DepositionLists{AerWet: []string{"NUM_A1"}})
	assert.Equal(t, 1, report.Updated[types.AerWet])

	text, _ := doc.Text("aer_wetdep_list")
	assert.Equal(t, "\n  'NUM_A1',\n", text)
}

func TestBytes_AddsDeclarationOnce(t *testing.T) {
	doc, err := Parse([]byte(`<x><drydep_list/></x>`))
	require.NoError(t, err)

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8"?>`+"\n<x>"))

	out, err = doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "<?xml"))
}

func TestBytes_KeepsExistingDeclaration(t *testing.T) {
	doc, err := Parse([]byte(geoschemXML))
	require.NoError(t, err)

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<?xml version="1.0"?>`))
	assert.Equal(t, 1, strings.Count(string(out), "<?xml"))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`<x><drydep_list></x>`))
	assert.Error(t, err)

	_, err = Parse([]byte(""))
	assert.Error(t, err)
}

func TestOpenAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoschem.xml")
	require.NoError(t, os.WriteFile(path, []byte(geoschemXML), 0o640))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)

	doc.Inject(types.DepositionLists{GasDry: []string{"O3"}})
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<drydep_list>\n  'O3',\n</drydep_list>")
	assert.Contains(t, string(data), "<!-- GEOS-Chem use case -->")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestSave_WritesThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.xml")
	link := filepath.Join(dir, "geoschem.xml")
	require.NoError(t, os.WriteFile(target, []byte(`<x><drydep_list/></x>`), 0o644))
	require.NoError(t, os.Symlink(target, link))

	doc, err := Open(link)
	require.NoError(t, err)
	doc.Inject(types.DepositionLists{GasDry: []string{"O3"}})
	require.NoError(t, doc.Save())

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link replaced by a regular file")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<drydep_list>\n  'O3',\n</drydep_list>")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp file left behind")
}

func TestSaveAs_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.xml")

	doc, err := Parse([]byte(`<x/>`))
	require.NoError(t, err)
	require.NoError(t, doc.SaveAs(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_WithoutPath(t *testing.T) {
	doc, err := Parse([]byte(`<x/>`))
	require.NoError(t, err)
	assert.Error(t, doc.Save())
}
