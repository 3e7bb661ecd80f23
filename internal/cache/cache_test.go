package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/justadataconstruct/xivquote/internal/lore"
	loremock "github.com/justadataconstruct/xivquote/internal/lore/mock"
)

const testAppDir = "justadataconstruct.xiv_quote"

func totalResponse(total uint16) *lore.Response {
	return &lore.Response{Pagination: lore.Pagination{ResultsTotal: total}}
}

func TestLocatePath(t *testing.T) {
	root := t.TempDir()

	path, err := LocatePath(root, testAppDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, testAppDir, "cache.json"), path)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Existing directory is fine.
	again, err := LocatePath(root, testAppDir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestLocatePath_DefaultsToUserCacheDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)
	t.Setenv("HOME", tmp)
	t.Setenv("LocalAppData", tmp)

	base, err := os.UserCacheDir()
	require.NoError(t, err)

	path, err := LocatePath("", testAppDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, testAppDir, FileName), path)
}

func TestLocatePath_CreateFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := LocatePath(blocker, testAppDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create cache directory")
}

func TestNeedsRefresh(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.json")
	require.NoError(t, os.WriteFile(present, []byte(`{}`), 0o600))
	absent := filepath.Join(dir, "absent.json")

	tests := []struct {
		name string
		path string
		arg  string
		want bool
	}{
		{name: "absent, no arg", path: absent, arg: "", want: true},
		{name: "absent, other arg", path: absent, arg: "please", want: true},
		{name: "absent, refresh", path: absent, arg: "refresh", want: true},
		{name: "present, no arg", path: present, arg: "", want: false},
		{name: "present, other arg", path: present, arg: "mount", want: false},
		{name: "present, refresh", path: present, arg: "refresh", want: true},
		{name: "present, near miss", path: present, arg: "Refresh", want: false},
		{name: "present, padded", path: present, arg: " refresh", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsRefresh(tt.path, tt.arg))
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := CategoryCounts{NPCYell: 500, Minion: 10, Mount: 65535}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestSave_PrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, CategoryCounts{NPCYell: 1, Minion: 2, Mount: 3}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"npc_yell\": 1,\n  \"minion\": 2,\n  \"mount\": 3\n}", string(data))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, ErrCacheNotFound)
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "npc_yell=3"},
		{name: "missing field", body: `{"npc_yell": 1, "minion": 2}`},
		{name: "negative", body: `{"npc_yell": -1, "minion": 2, "mount": 3}`},
		{name: "overflow", body: `{"npc_yell": 70000, "minion": 2, "mount": 3}`},
		{name: "wrong type", body: `{"npc_yell": "1", "minion": 2, "mount": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedCache)
		})
	}
}

func TestCategoryCounts_For(t *testing.T) {
	counts := CategoryCounts{NPCYell: 500, Minion: 10, Mount: 0}

	for category, want := range map[lore.Category]uint16{
		lore.NPCYell: 500,
		lore.Minion:  10,
		lore.Mount:   0,
	} {
		got, err := counts.For(category)
		require.NoError(t, err)
		assert.Equal(t, want, got, category.Key)
	}

	_, err := counts.For(lore.Category{Key: "fish"})
	assert.ErrorIs(t, err, lore.ErrUnknownCategory)
}

func TestRefresh_QueriesEveryCategoryInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := loremock.NewMockFetcher(ctrl)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)

	gomock.InOrder(
		fetcher.EXPECT().Fetch(ctx, lore.NPCYell, uint16(0)).Return(totalResponse(4210), nil),
		fetcher.EXPECT().Fetch(ctx, lore.Minion, uint16(0)).Return(totalResponse(480), nil),
		fetcher.EXPECT().Fetch(ctx, lore.Mount, uint16(0)).Return(totalResponse(302), nil),
	)

	counts, err := Refresh(ctx, path, fetcher)
	require.NoError(t, err)
	want := CategoryCounts{NPCYell: 4210, Minion: 480, Mount: 302}
	assert.Equal(t, want, counts)

	onDisk, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, onDisk)
}

func TestRefresh_FailureKeepsExistingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := loremock.NewMockFetcher(ctrl)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)

	old := CategoryCounts{NPCYell: 1, Minion: 2, Mount: 3}
	require.NoError(t, Save(path, old))

	gomock.InOrder(
		fetcher.EXPECT().Fetch(ctx, lore.NPCYell, uint16(0)).Return(totalResponse(99), nil),
		fetcher.EXPECT().Fetch(ctx, lore.Minion, uint16(0)).Return(nil, errors.New("connection reset")),
	)

	_, err := Refresh(ctx, path, fetcher)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refreshing minion total")
	assert.Contains(t, err.Error(), "connection reset")

	onDisk, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, old, onDisk)
}
