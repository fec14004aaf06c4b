package ioreconcile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/canerbagci/bgcatlas/internal/ioreconcile"
	"github.com/canerbagci/bgcatlas/pkg/bigslice"
	"github.com/canerbagci/bgcatlas/pkg/config"
	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/canerbagci/bgcatlas/pkg/reconcile"
	"github.com/canerbagci/bgcatlas/pkg/region"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInputs() ioreconcile.Inputs {
	return ioreconcile.Inputs{
		Regions: []region.Region{
			{ID: 1, Assembly: "A1", Contig: "c1", Number: 1,
				Products: []string{"NRPS"}, LongestBiome: "root:Aquatic"},
			{ID: 2, Assembly: "A1", Contig: "c1", Number: 2,
				Products: []string{"NRPS", "T1PKS"}, LongestBiome: "root:Aquatic"},
			{ID: 3, Assembly: "A2", Contig: "c9", Number: 1,
				Products: []string{"terpene"}, LongestBiome: "root:Soil"},
		},
		Bgcs: []bigslice.Bgc{
			{ID: 10, OrigFilename: "A1_c1.region001.gbk"},
			{ID: 11, OrigFilename: "A1_c1.region002.gbk"},
		},
		Memberships: []bigslice.Membership{
			{GcfID: 5, BgcID: 11, Value: 0.3},
			{GcfID: 5, BgcID: 10, Value: 0.2},
		},
		Search: []bigslice.SearchHit{
			// core membership wins
			{Membership: bigslice.Membership{GcfID: 8, Value: 0.9},
				Bgc: bigslice.Bgc{OrigFilename: "A1_c1.region001.gbk"}},
			{Membership: bigslice.Membership{GcfID: 5, Value: 0.7},
				Bgc: bigslice.Bgc{OrigFilename: "A2_c9.region001.gbk"}},
		},
	}
}

func reconcileConfig() config.ReconcileConfig {
	return config.ReconcileConfig{Threshold: 0.4, BiomePrefix: "root:"}
}

func TestReconcile(t *testing.T) {
	assert := assert.New(t)
	res, err := ioreconcile.Reconcile(testInputs(), reconcileConfig())
	require.NoError(t, err)

	require.Len(t, res.Memberships, 3)
	for i, v := range res.Memberships {
		assert.Equal(i+1, v.RegionID)
	}
	assert.False(res.Memberships[0].FromSearch)
	assert.Equal(5, res.Memberships[0].GcfID)
	assert.True(res.Memberships[2].FromSearch)
	assert.Equal(0, res.Memberships[2].BgcID)

	assert.Equal(1, res.SearchStats.Added)
	assert.Equal(1, res.SearchStats.Kept)

	require.Len(t, res.Aggregates, 1)
	a := res.Aggregates[0]
	assert.Equal(2, a.CoreCount)
	assert.Equal(3, a.AllCount)
	assert.Equal("Aquatic (2),Soil (1)", reconcile.FormatFreqs(a.AllBiomes))
	assert.Len(res.Regions, 3)
}

func TestReconcileNoRegions(t *testing.T) {
	_, err := ioreconcile.Reconcile(ioreconcile.Inputs{}, reconcileConfig())
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ReconcileNoRegionsError, gnErr.Code)
}

func TestTSVWriter(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")

	res, err := ioreconcile.Reconcile(testInputs(), reconcileConfig())
	require.NoError(t, err)
	require.NoError(t, ioreconcile.NewTSVWriter(dir).Write(ctx, res))

	lines := readLines(t, filepath.Join(dir, ioreconcile.MembershipOutFile))
	assert.Equal([]string{
		"region_key\tregion_id\tbgc_id\tgcf_id\tmembership_value\tthreshold\tgcf_from_search",
		"A1_c1.region001\t1\t10\t5\t0.2\t0.4\tfalse",
		"A1_c1.region002\t2\t11\t5\t0.3\t0.4\tfalse",
		"A2_c9.region001\t3\t\t5\t0.7\t0.4\ttrue",
	}, lines)

	lines = readLines(t, filepath.Join(dir, ioreconcile.GcfOutFile))
	require.Len(t, lines, 2)
	assert.Equal(
		"5\t2\tNRPS (2),T1PKS (1)\tAquatic (2)\t3\tNRPS (2),T1PKS (1),terpene (1)\tAquatic (2),Soil (1)",
		lines[1],
	)

	lines = readLines(t, filepath.Join(dir, ioreconcile.RegionsOutFile))
	require.Len(t, lines, 4)
	assert.True(strings.HasPrefix(lines[0], "region_id\trun\trecord"))
	assert.True(strings.HasSuffix(lines[3], "root:Soil\t\t5\t0.7\ttrue"))
}

func TestLoadRegionsTSV(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	regPath := filepath.Join(dir, "regions.tsv")
	biomePath := filepath.Join(dir, "biomes.tsv")
	writeFile(t, regPath, strings.Join(region.RegionColumns, "\t")+"\n"+
		"A1\tc1\t3000\t{NRPS}\tr1c1\t1\t900\ttrue\tNRPS\t{NRPS}\t1\n"+
		"A2\tc9\t5000\t{terpene}\tr1c1\t100\t900\tfalse\tterpene\t{terpene}\t1\n")
	writeFile(t, biomePath, "A1\troot:Aquatic\n")

	res, err := ioreconcile.LoadRegionsTSV(regPath, biomePath)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal("root:Aquatic", res[0].LongestBiome)
	assert.Equal("", res[1].LongestBiome)
	assert.Equal(2, res[1].ID)
}

func TestBigsliceSourceTSV(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	src := ioreconcile.BigsliceSource{
		BgcPath:        filepath.Join(dir, "bgc.tsv"),
		MembershipPath: filepath.Join(dir, "membership.tsv"),
		SearchPath:     filepath.Join(dir, "search.tsv"),
	}
	writeFile(t, src.BgcPath, strings.Join(bigslice.BgcColumns, "\t")+"\n"+
		"10\t1\tA1_c1.region001\tas6\t1\t900\tA1\tA1_c1.region001.gbk\n")
	writeFile(t, src.MembershipPath, "5\t10\t0.2\t0\n")
	writeFile(t, src.SearchPath,
		"5\t900\t0.7\t0\tA2_c9.region001\tas6\t0\t800\tA2\tA2_c9.region001.gbk\n")

	var in ioreconcile.Inputs
	require.NoError(t, src.Load(context.Background(), &in))
	assert.Len(in.Bgcs, 1)
	assert.Len(in.Memberships, 1)
	assert.Len(in.Search, 1)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
