package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordfix/pkg/distance"
	"github.com/bastiangx/wordfix/pkg/phonetic"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, distance.DefaultThreshold, c.Engine.Threshold)
	assert.Len(t, c.Dictionaries, 2)
	assert.True(t, c.Dictionaries[1].Writable)
	assert.NoError(t, c.Validate())

	opts, err := c.Engine.Options()
	require.NoError(t, err)
	assert.IsType(t, &phonetic.Folding{}, opts.Provider)
	assert.Equal(t, 160, opts.Threshold)
	assert.True(t, opts.StripNonLetters)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	c, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[engine]
hash = "metaphone"
distance = "osa"
threshold = 100
encoding = "windows-1252"

[[dictionaries]]
path = "/usr/share/dict/words"

[server]
max_proposals = 5
watch = false
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "metaphone", c.Engine.Hash)
	assert.Equal(t, "osa", c.Engine.Distance)
	assert.Equal(t, 100, c.Engine.Threshold)
	assert.Equal(t, 300, c.Engine.MaxBucketScan)
	require.Len(t, c.Dictionaries, 1)
	assert.Equal(t, "/usr/share/dict/words", c.Dictionaries[0].Path)
	assert.Equal(t, "windows-1252", c.Engine.EncodingLabel(c.Dictionaries[0]))
	assert.Equal(t, 5, c.Server.MaxProposals)
	assert.False(t, c.Server.Watch)
	assert.Equal(t, 64, c.Server.MaxWordLen)

	opts, err := c.Engine.Options()
	require.NoError(t, err)
	assert.Equal(t, distance.OSA{}, opts.Distance)
}

func TestLoadConfigKeepsDefaultDictionaries(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "[cli]\ndefault_limit = 3\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Dictionaries, c.Dictionaries)
	assert.Equal(t, 3, c.CLI.DefaultLimit)
}

func TestLoadConfigSanitizes(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, `
[engine]
hash = "soundex"
threshold = -4
`))
	require.NoError(t, err)
	assert.Equal(t, phonetic.NameFolding, c.Engine.Hash)
	assert.Equal(t, distance.DefaultThreshold, c.Engine.Threshold)
}

func TestPartialParse(t *testing.T) {
	// threshold has the wrong type, so the strict decode fails
	c, err := LoadConfig(writeConfig(t, `
[engine]
hash = "metaphone"
threshold = "high"

[[dictionaries]]
path = "main.txt"
encoding = "auto"

[[dictionaries]]
writable = true

[server]
max_word_len = 32
`))
	require.NoError(t, err)
	assert.Equal(t, "metaphone", c.Engine.Hash)
	assert.Equal(t, distance.DefaultThreshold, c.Engine.Threshold)
	require.Len(t, c.Dictionaries, 1)
	assert.Equal(t, "main.txt", c.Dictionaries[0].Path)
	assert.Equal(t, "auto", c.Dictionaries[0].Encoding)
	assert.Equal(t, 32, c.Server.MaxWordLen)
}

func TestUnparsableConfig(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "[engine\nthreshold = = 3"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfigWithPriority(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_limit = 7\n")
	c, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 7, c.CLI.DefaultLimit)
	assert.Equal(t, path, GetActiveConfigPath(path))
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Engine.Distance = "hamming"
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.Engine.Encoding = "klingon"
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.Engine.Encoding = "auto"
	assert.NoError(t, c.Validate())

	c = DefaultConfig()
	c.Dictionaries = append(c.Dictionaries, DictionaryConfig{})
	assert.Error(t, c.Validate())
}

func TestBuildCollection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("weird\nreceive\n"), 0o644))

	c := DefaultConfig()
	coll, err := c.BuildCollection(func(p string) string { return filepath.Join(dir, p) })
	require.NoError(t, err)
	require.Len(t, coll.Members(), 2)
	assert.False(t, coll.Members()[0].AcceptsWords())
	assert.True(t, coll.Members()[1].AcceptsWords())

	assert.True(t, coll.IsCorrect("receive"))
	require.NoError(t, coll.AddWord("wordfix"))
	data, err := os.ReadFile(filepath.Join(dir, "user.txt"))
	require.NoError(t, err)
	assert.Equal(t, "wordfix\n", string(data))

	c.Dictionaries[0].Encoding = "klingon"
	_, err = c.BuildCollection(nil)
	assert.Error(t, err)
}
