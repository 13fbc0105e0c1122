// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kwallet-extract/internal/logger"
	"github.com/pdiddy/kwallet-extract/internal/wallet"
	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// --- test helpers ---

func parseWallet(t *testing.T, passwords string) *wallet.Wallet {
	t.Helper()
	doc := `<wallet name="kdewallet"><folder name="Passwords">` + passwords + `</folder></wallet>`
	w, err := wallet.Parse(bytes.NewReader([]byte(doc)))
	require.NoError(t, err)
	return w
}

func testConfig(t *testing.T) types.ExtractConfig {
	t.Helper()
	cfg := types.DefaultExtractConfig()
	cfg.OutDir = t.TempDir()
	return cfg
}

func readOut(t *testing.T, dir, key string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	return string(data)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// --- Run ---

func TestRun_CollidingKeysLastWins(t *testing.T) {
	w := parseWallet(t, `<password name="my site">secret1</password><password name="my/site">secret2</password>`)
	cfg := testConfig(t)
	var out bytes.Buffer

	summary, err := Run(context.Background(), w, cfg, &out, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "my_site\nmy_site\n", out.String())
	assert.Equal(t, []string{"my_site"}, listDir(t, cfg.OutDir))
	assert.Equal(t, "secret2", readOut(t, cfg.OutDir, "my_site"))

	assert.Equal(t, 2, summary.Written)
	assert.Equal(t, 1, summary.Overwritten)
	assert.Equal(t, 1, summary.Keys())
	require.Len(t, summary.Records, 2)
	assert.True(t, summary.Records[0].Overwritten)
	assert.False(t, summary.Records[1].Overwritten)
}

func TestRun_WritesContentVerbatim(t *testing.T) {
	tests := []struct {
		name    string
		element string
		key     string
		want    string
	}{
		{
			name:    "plain secret",
			element: `<password name="bank">p@ss</password>`,
			key:     "bank",
			want:    "p@ss",
		},
		{
			name:    "surrounding whitespace and newlines kept",
			element: "<password name=\"multi line\">  a\nb\n</password>",
			key:     "multi_line",
			want:    "  a\nb\n",
		},
		{
			name:    "entities decoded",
			element: `<password name="ent">&lt;&amp;&gt;&quot;</password>`,
			key:     "ent",
			want:    `<&>"`,
		},
		{
			name:    "non-ascii preserved",
			element: `<password name="intl">pässwörd✓</password>`,
			key:     "intl",
			want:    "pässwörd✓",
		},
		{
			name:    "empty element writes placeholder",
			element: `<password name="none"></password>`,
			key:     "none",
			want:    "None",
		},
		{
			name:    "self-closing element writes placeholder",
			element: `<password name="none/too"/>`,
			key:     "none_too",
			want:    "None",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := parseWallet(t, tt.element)
			cfg := testConfig(t)
			var out bytes.Buffer

			_, err := Run(context.Background(), w, cfg, &out, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.key+"\n", out.String())
			assert.Equal(t, tt.want, readOut(t, cfg.OutDir, tt.key))
		})
	}
}

func TestRun_CustomMissingText(t *testing.T) {
	w := parseWallet(t, `<password name="blank"/>`)
	cfg := testConfig(t)
	cfg.MissingText = ""

	_, err := Run(context.Background(), w, cfg, &bytes.Buffer{}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "", readOut(t, cfg.OutDir, "blank"))
}

func TestRun_TruncatesExistingFile(t *testing.T) {
	w := parseWallet(t, `<password name="k">new</password>`)
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OutDir, "k"), []byte("an older, longer secret"), 0o600))

	_, err := Run(context.Background(), w, cfg, &bytes.Buffer{}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "new", readOut(t, cfg.OutDir, "k"))
}

func TestRun_NoEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty folder", doc: `<wallet><folder name="Passwords"/></wallet>`},
		{name: "no passwords folder", doc: `<wallet><folder name="Form Data"><password name="x">y</password></folder></wallet>`},
		{name: "empty wallet", doc: `<wallet/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := wallet.Parse(bytes.NewReader([]byte(tt.doc)))
			require.NoError(t, err)
			cfg := testConfig(t)
			var out bytes.Buffer

			summary, err := Run(context.Background(), w, cfg, &out, logger.Nop())
			require.NoError(t, err)
			assert.Empty(t, out.String())
			assert.Empty(t, listDir(t, cfg.OutDir))
			assert.Zero(t, summary.Written)
		})
	}
}

func TestRun_MissingNameAborts(t *testing.T) {
	w := parseWallet(t, `<password name="first">1</password><password>2</password><password name="third">3</password>`)
	cfg := testConfig(t)
	var out bytes.Buffer

	summary, err := Run(context.Background(), w, cfg, &out, logger.Nop())
	require.ErrorIs(t, err, wallet.ErrMissingName)

	assert.Equal(t, "first\n", out.String())
	assert.Equal(t, []string{"first"}, listDir(t, cfg.OutDir))
	assert.Equal(t, 1, summary.Written)
}

func TestRun_WriteFailureAborts(t *testing.T) {
	w := parseWallet(t, `<password name="ok">1</password><password name="blocked">2</password><password name="later">3</password>`)
	cfg := testConfig(t)
	// A directory with the key's name makes the open fail.
	require.NoError(t, os.Mkdir(filepath.Join(cfg.OutDir, "blocked"), 0o755))

	summary, err := Run(context.Background(), w, cfg, &bytes.Buffer{}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")

	_, statErr := os.Stat(filepath.Join(cfg.OutDir, "later"))
	assert.True(t, os.IsNotExist(statErr), "entries after the failure must not be written")
	assert.Equal(t, 1, summary.Written)
}

func TestRun_DryRun(t *testing.T) {
	w := parseWallet(t, `<password name="a b">1</password><password name="c">2</password>`)
	cfg := testConfig(t)
	cfg.DryRun = true
	var out bytes.Buffer

	summary, err := Run(context.Background(), w, cfg, &out, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "a_b\nc\n", out.String())
	assert.Empty(t, listDir(t, cfg.OutDir))
	assert.Zero(t, summary.Written)
	assert.Len(t, summary.Records, 2)
}

func TestRun_CustomFolder(t *testing.T) {
	doc := `<wallet><folder name="Passwords"><password name="p">1</password></folder><folder name="Legacy"><password name="l">2</password></folder></wallet>`
	w, err := wallet.Parse(bytes.NewReader([]byte(doc)))
	require.NoError(t, err)
	cfg := testConfig(t)
	cfg.Folder = "Legacy"
	var out bytes.Buffer

	_, err = Run(context.Background(), w, cfg, &out, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "l\n", out.String())
	assert.Equal(t, []string{"l"}, listDir(t, cfg.OutDir))
}

func TestRun_CancelledContext(t *testing.T) {
	w := parseWallet(t, `<password name="a">1</password>`)
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, w, cfg, &bytes.Buffer{}, logger.Nop())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, listDir(t, cfg.OutDir))
}

func TestRun_RecordsSizes(t *testing.T) {
	w := parseWallet(t, `<password name="a">12345</password><password name="b"/>`)
	cfg := testConfig(t)

	summary, err := Run(context.Background(), w, cfg, &bytes.Buffer{}, logger.Nop())
	require.NoError(t, err)
	require.Len(t, summary.Records, 2)
	assert.Equal(t, 5, summary.Records[0].Size)
	assert.Equal(t, len(types.DefaultMissingText), summary.Records[1].Size)
	assert.False(t, summary.Records[1].HasText)
}

// --- Plan ---

func TestPlan(t *testing.T) {
	w := parseWallet(t, `<password name="x y">1</password><password name="z">22</password><password name="x/y">333</password>`)

	records, err := Plan(w, "Passwords", types.DefaultMissingText)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "x_y", records[0].Key)
	assert.True(t, records[0].Overwritten)
	assert.False(t, records[1].Overwritten)
	assert.False(t, records[2].Overwritten)
	assert.Equal(t, 3, records[2].Size)
}

func TestPlan_MissingName(t *testing.T) {
	w := parseWallet(t, `<password>1</password>`)
	_, err := Plan(w, "Passwords", types.DefaultMissingText)
	assert.ErrorIs(t, err, wallet.ErrMissingName)
}
