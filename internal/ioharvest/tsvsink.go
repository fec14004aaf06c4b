package ioharvest

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/region"
	"github.com/gnames/gnfmt"
)

type tsvFile struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

func createTSV(path string, header []string) (*tsvFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, iofs.WriteFileError(path, err)
	}
	res := &tsvFile{path: path, f: f, w: bufio.NewWriter(f)}
	if err = res.write(header); err != nil {
		f.Close()
		return nil, err
	}
	return res, nil
}

func (t *tsvFile) write(row []string) error {
	if _, err := t.w.WriteString(gnfmt.ToCSV(row, '\t') + "\n"); err != nil {
		return iofs.WriteFileError(t.path, err)
	}
	return nil
}

func (t *tsvFile) close() error {
	if err := t.w.Flush(); err != nil {
		t.f.Close()
		return iofs.WriteFileError(t.path, err)
	}
	return t.f.Close()
}

type tsvSink struct {
	mu            sync.Mutex
	regions       *tsvFile
	protoclusters *tsvFile
}

// NewTSVSink writes regions and protoclusters to two TSV files.
// Existing files are overwritten.
func NewTSVSink(regionsPath, protoclustersPath string) (Sink, error) {
	regs, err := createTSV(regionsPath, region.RegionColumns)
	if err != nil {
		return nil, err
	}
	pcs, err := createTSV(protoclustersPath, region.ProtoclusterColumns)
	if err != nil {
		regs.close()
		return nil, err
	}
	return &tsvSink{regions: regs, protoclusters: pcs}, nil
}

func (s *tsvSink) Save(_ context.Context, b Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range b.Regions {
		err := s.regions.write([]string{
			v.Assembly,
			v.Contig,
			strconv.Itoa(v.ContigLen),
			region.FormatList(v.ProductCategories),
			v.Anchor,
			strconv.Itoa(v.Start),
			strconv.Itoa(v.End),
			strconv.FormatBool(v.ContigEdge),
			v.Type,
			region.FormatList(v.Products),
			strconv.Itoa(v.Number),
		})
		if err != nil {
			return SaveError(b.Assembly, err)
		}
	}
	for _, v := range b.Protoclusters {
		err := s.protoclusters.write([]string{
			v.Assembly,
			v.Contig,
			v.RegionKey,
			v.Category,
			v.ContigEdge,
			v.Product,
			strconv.Itoa(v.Number),
		})
		if err != nil {
			return SaveError(b.Assembly, err)
		}
	}
	return nil
}

func (s *tsvSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.regions.close(), s.protoclusters.close())
}
