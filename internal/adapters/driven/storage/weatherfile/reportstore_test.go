package weatherfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

func TestReportStore_ImplementsInterface(t *testing.T) {
	var _ driven.ReportStore = (*ReportStore)(nil)
}

func TestNewReportStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewReportStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewReportStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "weather")

	store, err := NewReportStore(dir)

	require.NoError(t, err)
	require.NotNil(t, store)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewReportStore_ErrorHandling(t *testing.T) {
	_, err := NewReportStore("/invalid\x00path")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating weather data directory")
}

func TestReportStore_SaveAndLoad(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	content := "Weather Forecast\nTemperature: 22°C\n"
	require.NoError(t, store.Save("Canada", content))

	loaded, err := store.Load("Canada")
	require.NoError(t, err)
	assert.Equal(t, content, loaded)
}

func TestReportStore_Save_WritesExpectedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("Japan", "report"))

	data, err := os.ReadFile(filepath.Join(dir, "japan_weather.txt"))
	require.NoError(t, err)
	assert.Equal(t, "report", string(data))
}

func TestReportStore_Save_ReplacesPrevious(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("india", "first"))
	require.NoError(t, store.Save("india", "second"))

	loaded, err := store.Load("india")
	require.NoError(t, err)
	assert.Equal(t, "second", loaded)
}

func TestReportStore_Load_CaseInsensitive(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("BRAZIL", "report"))

	loaded, err := store.Load("Brazil")
	require.NoError(t, err)
	assert.Equal(t, "report", loaded)

	loaded, err = store.Load("brazil")
	require.NoError(t, err)
	assert.Equal(t, "report", loaded)
}

func TestReportStore_Load_NotFound(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("atlantis")

	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestReportStore_Save_EmptyCountry(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	err = store.Save("", "report")
	assert.Error(t, err)

	err = store.Save("   ", "report")
	assert.Error(t, err)
}

func TestReportStore_Save_RejectsPathSeparators(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	for _, country := range []string{"../escape", "a/b", `a\b`} {
		err := store.Save(country, "report")
		assert.Error(t, err, "expected error for country %q", country)
	}
}

func TestReportStore_List(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("Japan", "report"))
	require.NoError(t, store.Save("Brazil", "report"))
	require.NoError(t, store.Save("Canada", "report"))

	countries, err := store.List()

	require.NoError(t, err)
	assert.Equal(t, []string{"brazil", "canada", "japan"}, countries)
}

func TestReportStore_List_Empty(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	countries, err := store.List()

	require.NoError(t, err)
	assert.Empty(t, countries)
}

func TestReportStore_List_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("canada", "report"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive_weather.txt"), 0700))

	countries, err := store.List()

	require.NoError(t, err)
	assert.Equal(t, []string{"canada"}, countries)
}

func TestReportStore_SpacesInCountryName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("United Kingdom", "report"))

	loaded, err := store.Load("united kingdom")
	require.NoError(t, err)
	assert.Equal(t, "report", loaded)

	countries, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"united kingdom"}, countries)
}
