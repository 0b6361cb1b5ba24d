package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/outfit-backend/internal/outfit"
)

// writeFixtures stores a catalog of four products per category (ids 1-4
// tops, 5-8 bottoms, 9-12 shoes) and a work profile.
func writeFixtures(t *testing.T) (catalog, profile string) {
	t.Helper()
	dir := t.TempDir()

	var raws []map[string]any
	id := 1
	for _, c := range []string{"top", "bottom", "shoes"} {
		for i := 1; i <= 4; i++ {
			raws = append(raws, map[string]any{
				"id":       id,
				"name":     fmt.Sprintf("%s %d", c, i),
				"category": c,
				"price":    fmt.Sprintf("$%d.00", 20*i),
				"image":    fmt.Sprintf("https://cdn.example.com/%d.jpg", id),
			})
			id++
		}
	}
	data, err := json.Marshal(raws)
	require.NoError(t, err)

	catalog = filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalog, data, 0o644))

	profile = filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`occasion: work
price_range:
  min: 0
  max: 300
style_keywords: [minimal]
`), 0o644))
	return catalog, profile
}

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset package-level flag variables to their defaults.
	catalogPath = "catalog.json"
	profilePath = "profile.yaml"
	batchSize = outfit.DefaultBatchSize
	verbose = false
	promptJSON = false
	proposalsPath = "proposals.json"

	outBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetArgs(nil)
	return outBuf.String(), err
}

func TestPrompt_Text(t *testing.T) {
	catalog, profile := writeFixtures(t)

	out, err := executeCmd(t, "prompt", "--catalog", catalog, "--profile", profile, "--batch", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "# system")
	assert.Contains(t, out, "# user")
	assert.Contains(t, out, "top 4")
	assert.Contains(t, out, "minimal")
}

func TestPrompt_JSON(t *testing.T) {
	catalog, profile := writeFixtures(t)

	out, err := executeCmd(t, "prompt", "--catalog", catalog, "--profile", profile, "--json")
	require.NoError(t, err)

	var got struct {
		Pool         outfit.CandidatePool `json:"pool"`
		LowInventory []outfit.Category    `json:"low_inventory"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Pool.Tops, 4)
	assert.Len(t, got.Pool.Shoes, 4)
	assert.Len(t, got.LowInventory, 3)
}

func TestRepair(t *testing.T) {
	catalog, profile := writeFixtures(t)
	proposals := filepath.Join(t.TempDir(), "proposals.json")
	require.NoError(t, os.WriteFile(proposals, []byte("```json\n"+`{"outfits":[
		{"name":"A","top":{"id":1},"bottom":{"id":5},"shoes":{"id":9}},
		{"name":"B","top":{"id":1},"bottom":{"id":6},"shoes":{"id":10}},
		{"name":"C","top":{"id":2},"bottom":{"id":7},"shoes":{"id":"999"}}
	]}`+"\n```"), 0o644))

	out, err := executeCmd(t, "repair", "--catalog", catalog, "--profile", profile, "--batch", "3", "--proposals", proposals)
	require.NoError(t, err)

	var got struct {
		Outfits []outfit.EnrichedOutfit `json:"outfits"`
		Repair  outfit.RepairReport     `json:"repair"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Outfits, 3)
	assert.Equal(t, 1, got.Repair.Duplicates)
	assert.Equal(t, 1, got.Repair.Replaced)
	assert.NotEqual(t, got.Outfits[0].Items[0].ID, got.Outfits[1].Items[0].ID)
	assert.True(t, got.Outfits[2].Fallback)
}

func TestRepair_WrongBatchSize(t *testing.T) {
	catalog, profile := writeFixtures(t)
	proposals := filepath.Join(t.TempDir(), "proposals.json")
	require.NoError(t, os.WriteFile(proposals, []byte(`{"outfits":[]}`), 0o644))

	_, err := executeCmd(t, "repair", "--catalog", catalog, "--profile", profile, "--batch", "3", "--proposals", proposals)

	assert.ErrorIs(t, err, outfit.ErrMalformedResponse)
}

func TestLoadProfile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("occasion: \"\"\n"), 0o644))

	_, err := loadProfile(path)
	assert.ErrorContains(t, err, "invalid profile")

	require.NoError(t, os.WriteFile(path, []byte("occasion: brunch\n"), 0o644))
	profile, err := loadProfile(path)
	require.NoError(t, err)
	assert.True(t, profile.PriceRange.IsUnlimited)
}
