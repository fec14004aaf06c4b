package ioharvest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/ioharvest"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/canerbagci/bgcatlas/pkg/region"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regionsJS = `var recordData = [
{"length": 30000, "seq_id": "A1_c1", "regions": [
  {"anchor": "r1c1", "start": 1, "end": 12000, "type": "NRPS",
   "products": ["NRPS"], "product_categories": ["NRPS"]},
  {"anchor": "r1c2", "start": 15000, "end": 25000, "type": "terpene",
   "products": ["terpene"], "product_categories": ["terpene"]}
]},
{"length": "bad", "seq_id": "A1_c2", "regions": []}
];
var all_regions = {};
`

const regionGbk = `ACCESSION   A1_c1
     protocluster    1..12000
                     /category="NRPS"
                     /contig_edge="True"
                     /product="NRPS"
                     /protocluster_number="1"
     proto_core      1..6000
//
`

type memSink struct {
	mu      sync.Mutex
	batches map[string]ioharvest.Batch
	fail    bool
}

func (s *memSink) Save(_ context.Context, b ioharvest.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("disk full")
	}
	s.batches[b.Assembly] = b
	return nil
}

func (s *memSink) Close() error { return nil }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// analysisDir has one good assembly, one without results and one with a
// broken regions.js.
func analysisDir(t *testing.T) string {
	dir := t.TempDir()
	asDir := config.DetectorDir(dir, "A1")
	writeFile(t, filepath.Join(asDir, "regions.js"), regionsJS)
	writeFile(t, filepath.Join(asDir, "A1_c1.region001.gbk"), regionGbk)
	// full record file repeats protoclusters and must be ignored
	writeFile(t, filepath.Join(asDir, "A1.gbk"), regionGbk)

	require.NoError(t, os.MkdirAll(config.AssemblyDir(dir, "A2"), 0755))
	writeFile(t, config.RegionsJSPath(dir, "A3"), "var recordData = [{")
	return dir
}

func newConfig(dir string) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptPipelineAnalysisDir(dir),
		config.OptJobsNumber(2),
	})
	return cfg
}

func TestHarvest(t *testing.T) {
	assert := assert.New(t)
	dir := analysisDir(t)
	sink := &memSink{batches: make(map[string]ioharvest.Batch)}

	h := ioharvest.New(newConfig(dir), sink)
	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	assert.Equal(ioharvest.Summary{
		Assemblies:    3,
		Harvested:     1,
		NoResults:     1,
		Failed:        1,
		Regions:       2,
		Protoclusters: 1,
		Skipped:       1,
	}, res)

	require.Contains(t, sink.batches, "A1")
	b := sink.batches["A1"]
	assert.Equal("c1", b.Regions[0].Contig)
	assert.Equal("A1_c1.region001", b.Regions[0].Key())
	assert.Equal("A1_c1.region002", b.Regions[1].Key())
	assert.Equal("A1_c1.region001", b.Protoclusters[0].RegionKey)
	assert.Equal("c1", b.Protoclusters[0].Contig)
}

func TestHarvestNoResults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(config.AssemblyDir(dir, "A2"), 0755))
	sink := &memSink{batches: make(map[string]ioharvest.Batch)}

	_, err := ioharvest.New(newConfig(dir), sink).Harvest(context.Background())
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.HarvestNoResultsError, gnErr.Code)
}

func TestHarvestCancelled(t *testing.T) {
	dir := analysisDir(t)
	sink := &memSink{batches: make(map[string]ioharvest.Batch)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ioharvest.New(newConfig(dir), sink).Harvest(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHarvestSaveFails(t *testing.T) {
	dir := analysisDir(t)
	sink := &memSink{batches: make(map[string]ioharvest.Batch), fail: true}

	_, err := ioharvest.New(newConfig(dir), sink).Harvest(context.Background())
	assert.EqualError(t, err, "disk full")
}

func TestTSVSink(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	regPath := filepath.Join(dir, "regions.tsv")
	pcPath := filepath.Join(dir, "protoclusters.tsv")

	sink, err := ioharvest.NewTSVSink(regPath, pcPath)
	require.NoError(t, err)

	err = sink.Save(context.Background(), ioharvest.Batch{
		Assembly: "A1",
		Regions: []region.Region{{
			Assembly:          "A1",
			Contig:            "c1",
			ContigLen:         30000,
			ProductCategories: []string{"NRPS", "PKS"},
			Anchor:            "r1c1",
			Start:             1,
			End:               12000,
			ContigEdge:        true,
			Type:              "NRPS",
			Products:          []string{"NRPS", "T1PKS"},
			Number:            1,
		}},
		Protoclusters: []region.Protocluster{{
			Assembly:   "A1",
			Contig:     "c1",
			RegionKey:  "A1_c1.region001",
			Category:   "NRPS",
			ContigEdge: "True",
			Product:    "NRPS",
			Number:     1,
		}},
	})
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	lines := readLines(t, regPath)
	require.Len(t, lines, 2)
	assert.Equal(strings.Join(region.RegionColumns, "\t"), lines[0])
	assert.Equal(
		"A1\tc1\t30000\t{NRPS,PKS}\tr1c1\t1\t12000\ttrue\tNRPS\t{NRPS,T1PKS}\t1",
		lines[1],
	)

	lines = readLines(t, pcPath)
	require.Len(t, lines, 2)
	assert.Equal("A1\tc1\tA1_c1.region001\tNRPS\tTrue\tNRPS\t1", lines[1])
}

func TestTSVSinkBadPath(t *testing.T) {
	dir := t.TempDir()
	_, err := ioharvest.NewTSVSink(
		filepath.Join(dir, "none", "regions.tsv"),
		filepath.Join(dir, "protoclusters.tsv"),
	)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.WriteFileError, gnErr.Code)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	res := strings.Split(strings.TrimSpace(string(data)), "\n")
	return res
}
