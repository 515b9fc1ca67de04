package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `ObjectID,Title,Genres,Tags,Size_GB
g1,Stardew Valley,Simulation;RPG,"coop, Farming",0.5
,Hades,Roguelike,,15
g3,,RPG,Open World,10
g4,Celeste,Platformer,pixel art|indie,not-a-number
`
	result, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Rows, 3)

	first := result.Rows[0]
	assert.Equal(t, "g1", first.ObjectID)
	assert.Equal(t, "Stardew Valley", first.Name)
	assert.Equal(t, []string{"Simulation", "RPG"}, first.Genre)
	assert.Equal(t, []string{"coop", "Farming"}, first.Tags)
	assert.Equal(t, 0.5, first.SizeGB)
	assert.Equal(t, 2, first.Line)

	hades := result.Rows[1]
	assert.Equal(t, ObjectID("Hades"), hades.ObjectID)
	assert.Nil(t, hades.Tags)
	assert.Equal(t, 15.0, hades.SizeGB)

	celeste := result.Rows[2]
	assert.Equal(t, []string{"pixel art", "indie"}, celeste.Tags)
	assert.Zero(t, celeste.SizeGB)
}

func TestReadHeaderAliases(t *testing.T) {
	result, err := Read(strings.NewReader("id,name,genre,tags,estimatedSize\nx,Doom,FPS,,40\n"))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "x", result.Rows[0].ObjectID)
	assert.Equal(t, 40.0, result.Rows[0].SizeGB)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("id,tags\n1,coop\n"))
	assert.Error(t, err, "a header without a name column should be rejected")

	result, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Rows)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffname,tags\nPortal 2,Co-op\n"), 0o644))

	result, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Portal 2", result.Rows[0].Name)
}

func TestObjectID(t *testing.T) {
	assert.Equal(t, ObjectID("Hades"), ObjectID("  hades "))
	assert.NotEqual(t, ObjectID("Hades"), ObjectID("Hades II"))
	assert.Len(t, ObjectID("Hades"), 36)
}

func TestRowGame(t *testing.T) {
	row := Row{ObjectID: "g1", Name: "Hades", Genre: []string{"Roguelike"}, SizeGB: 15}
	game := row.Game([]string{"Story Rich"})
	assert.Equal(t, "g1", game.ObjectID)
	assert.Equal(t, []string{"Story Rich"}, game.Tags)
	assert.Equal(t, 15.0, game.SizeGB)
}

func TestReadIDs(t *testing.T) {
	result, err := ReadIDs(strings.NewReader("objectID\nabc123\ndef456\n"))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "abc123", result.Rows[0].ObjectID)
	assert.Equal(t, "def456", result.Rows[1].ObjectID)

	result, err = ReadIDs(strings.NewReader("id,title\nx,\n,Doom\n,\n"))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "x", result.Rows[0].ObjectID)
	assert.Equal(t, ObjectID("Doom"), result.Rows[1].ObjectID)
	assert.Equal(t, 1, result.Skipped)

	_, err = ReadIDs(strings.NewReader("tags,size\ncoop,1\n"))
	assert.Error(t, err)
}
