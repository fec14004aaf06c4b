// Package ioparse reads antiSMASH output: protoclusters from region
// GenBank files and regions from regions.js.
//
// Malformed pieces are skipped. Every skipped piece is reported as an
// error in a separate slice, so one bad block or record never hides the
// rest of a file.
package ioparse

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/region"
)

const (
	accessionTag = "ACCESSION"
	blockStart   = "protocluster"
	blockEnd     = "proto_core"
)

// qualifiers read inside a protocluster block.
const (
	qCategory   = "/category="
	qContigEdge = "/contig_edge="
	qProduct    = "/product="
	qNumber     = "/protocluster_number="
)

type block struct {
	line   int
	fields map[string]string
}

func (b *block) protocluster(
	assembly, contig, regionKey string,
) (region.Protocluster, string) {
	var res region.Protocluster
	for _, q := range []string{qCategory, qContigEdge, qProduct, qNumber} {
		if _, ok := b.fields[q]; !ok {
			return res, "missing " + strings.Trim(q, "/=")
		}
	}
	num, err := strconv.Atoi(b.fields[qNumber])
	if err != nil {
		return res, "bad protocluster_number " + strconv.Quote(b.fields[qNumber])
	}
	res = region.Protocluster{
		Assembly:   assembly,
		Contig:     contig,
		Category:   b.fields[qCategory],
		ContigEdge: b.fields[qContigEdge],
		Product:    b.fields[qProduct],
		Number:     num,
		RegionKey:  regionKey,
	}
	return res, ""
}

// ScanGenBank reads protoclusters from an antiSMASH region file. Path is
// used only in error messages. The first returned error slice lists
// skipped blocks, the last error is a read failure.
func ScanGenBank(
	r io.Reader,
	path, assembly, regionKey string,
) ([]region.Protocluster, []error, error) {
	var res []region.Protocluster
	var skipped []error
	var contig string
	var cur *block

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())

		switch {
		case strings.HasPrefix(line, accessionTag):
			if fs := strings.Fields(line); len(fs) > 1 {
				contig = region.ContigName(assembly, fs[len(fs)-1])
			}
		case strings.HasPrefix(line, blockStart):
			if cur != nil {
				skipped = append(skipped,
					BlockError(path, cur.line, "block never closed"))
			}
			cur = &block{line: lineNum, fields: make(map[string]string)}
		case strings.HasPrefix(line, blockEnd):
			if cur == nil {
				continue
			}
			pc, reason := cur.protocluster(assembly, contig, regionKey)
			if reason != "" {
				skipped = append(skipped, BlockError(path, cur.line, reason))
			} else {
				res = append(res, pc)
			}
			cur = nil
		case cur != nil && strings.HasPrefix(line, "/"):
			for _, q := range []string{qCategory, qContigEdge, qProduct, qNumber} {
				if strings.HasPrefix(line, q) {
					cur.fields[q] = unquote(line[len(q):])
					break
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return res, skipped, iofs.ReadFileError(path, err)
	}
	if cur != nil {
		skipped = append(skipped,
			BlockError(path, cur.line, "block never closed"))
	}
	return res, skipped, nil
}

// ReadGenBank reads protoclusters from a region file. The region key is
// derived from the file name.
func ReadGenBank(
	path, assembly string,
) ([]region.Protocluster, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	key := region.KeyFromFilename(filepath.Base(path))
	return ScanGenBank(f, path, assembly, key)
}

func unquote(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}
