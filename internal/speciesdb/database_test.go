package speciesdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDatabase = `
ACET_PROP: &ACETproperties
  Is_Gas: true
  Is_DryDep: true
  MW_g: 58.09
ACET:
  << : *ACETproperties
  Is_WetDep: true
O3:
  Is_Gas: true
  Is_DryDep: true
SO4_a1:
  Is_Gas: false
  Is_WetDep: true
CH4:
  MW_g: 16.04
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_PreservesDocumentOrder(t *testing.T) {
	db, err := Parse([]byte(sampleDatabase))
	require.NoError(t, err)

	assert.Equal(t, []string{"ACET_PROP", "ACET", "O3", "SO4_a1", "CH4"}, db.Names())
	assert.Equal(t, 5, db.Len())
}

func TestParse_ResolvesMergeKeys(t *testing.T) {
	db, err := Parse([]byte(sampleDatabase))
	require.NoError(t, err)

	acet := db.Record("ACET")
	require.NotNil(t, acet)
	assert.True(t, acet.Flag(PropIsGas))
	assert.True(t, acet.Flag(PropIsDryDep))
	assert.True(t, acet.Flag(PropIsWetDep))
	assert.Equal(t, 58.09, acet.Properties["MW_g"])
}

func TestRecord_Flag(t *testing.T) {
	db, err := Parse([]byte(`
X:
  Is_Gas: 1
  Is_DryDep: "true"
  Is_WetDep: false
Y:
  Is_Gas: true
`))
	require.NoError(t, err)

	x := db.Record("X")
	assert.False(t, x.Flag(PropIsGas), "integer 1 is not boolean true")
	assert.False(t, x.Flag(PropIsDryDep), "string \"true\" is not boolean true")
	assert.False(t, x.Flag(PropIsWetDep))

	y := db.Record("Y")
	assert.True(t, y.Flag(PropIsGas))
	assert.False(t, y.Flag(PropIsDryDep), "absent property is false")

	var missing *Record
	assert.False(t, missing.Flag(PropIsGas))
}

func TestIsMetadataKey(t *testing.T) {
	assert.True(t, IsMetadataKey("ACET_PROP"))
	assert.True(t, IsMetadataKey("X_PROPERTIES"))
	assert.False(t, IsMetadataKey("PROP"))
	assert.False(t, IsMetadataKey("O3"))
}

func TestParse_SkipsNonMappingEntries(t *testing.T) {
	db, err := Parse([]byte(`
O3:
  Is_Gas: true
VERSION: 14.1
EMPTY:
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"O3"}, db.Names())
	assert.Equal(t, []string{"VERSION", "EMPTY"}, db.Skipped)
}

func TestParse_MalformedDocument(t *testing.T) {
	db, err := Parse([]byte("O3: [unclosed\n  Is_Gas: true"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.NotNil(t, db)
	assert.Equal(t, 0, db.Len())
}

func TestParse_RootNotMapping(t *testing.T) {
	db, err := Parse([]byte("- O3\n- CO\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotMapping)
	assert.Equal(t, 0, db.Len())
}

func TestParse_EmptyDocument(t *testing.T) {
	db, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, db.Len())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "species_database.yml", sampleDatabase)

	db, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, db.Len())
}

func TestLoad_MissingFileIsNotParseError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ParseErrorCarriesPath(t *testing.T) {
	path := writeFile(t, "bad.yml", "O3: {Is_Gas: true\n")

	db, err := Load(path)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, 0, db.Len())
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.yml", "")

	db, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, db.Len())
}

func TestDatabase_AddKeepsFirstPosition(t *testing.T) {
	db := New()
	db.Add("O3", map[string]interface{}{"Is_Gas": false})
	db.Add("CO", map[string]interface{}{"Is_Gas": true})
	db.Add("O3", map[string]interface{}{"Is_Gas": true})

	assert.Equal(t, []string{"O3", "CO"}, db.Names())
	assert.True(t, db.Record("O3").Flag(PropIsGas))

	records := db.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "O3", records[0].Name)
}

func TestParse_RepeatedPropertyKeepsLastValue(t *testing.T) {
	db, err := Parse([]byte(`
O3:
  Is_Gas: true
  Is_DryDep: false
  Is_DryDep: true
CO:
  Is_Gas: true
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"O3", "CO"}, db.Names())
	assert.Empty(t, db.Skipped)
	assert.True(t, db.Record("O3").Flag(PropIsDryDep))
}

func TestParse_MergeDoesNotOverrideOwnKeys(t *testing.T) {
	db, err := Parse([]byte(`
BASE_PROP: &base
  Is_Gas: true
  Is_DryDep: true
WET_PROP: &wet
  Is_Gas: false
  Is_WetDep: true
HNO3:
  Is_DryDep: false
  << : *base
SO4:
  << : [*wet, *base]
`))
	require.NoError(t, err)

	hno3 := db.Record("HNO3")
	assert.True(t, hno3.Flag(PropIsGas))
	assert.False(t, hno3.Flag(PropIsDryDep), "own key wins over merged key")

	so4 := db.Record("SO4")
	assert.False(t, so4.Flag(PropIsGas), "earlier merge source wins")
	assert.True(t, so4.Flag(PropIsDryDep))
	assert.True(t, so4.Flag(PropIsWetDep))
}

func TestRecord_NonBoolFlags(t *testing.T) {
	db, err := Parse([]byte(`
X:
  Is_Gas: 1
  Is_DryDep: yes
  Is_WetDep: true
  MW_g: 12.0
`))
	require.NoError(t, err)

	assert.Equal(t, []string{PropIsGas, PropIsDryDep}, db.Record("X").NonBoolFlags())

	var missing *Record
	assert.Empty(t, missing.NonBoolFlags())
}
