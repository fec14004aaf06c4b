package iofetch

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// lineWidth is the sequence line width of rewritten FASTA files.
const lineWidth = 80

// PrefixHeaders rewrites every sequence name of a gzipped FASTA file to
// {prefix}_{name}. The result is written to a "_mod" file that replaces
// the original only after it was written completely.
func PrefixHeaders(file, prefix string) error {
	tmp := file + "_mod"
	err := prefixHeaders(file, tmp, prefix)
	if err != nil {
		os.Remove(tmp)
		return RewriteError(file, err)
	}
	if err = os.Rename(tmp, file); err != nil {
		os.Remove(tmp)
		return RewriteError(file, err)
	}
	return nil
}

func prefixHeaders(src, dst, prefix string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	gzr, err := gzip.NewReader(bufio.NewReader(in))
	if err != nil {
		return err
	}
	defer gzr.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(out)
	gzw := gzip.NewWriter(bw)

	if err = rewrite(gzr, gzw, prefix); err != nil {
		return err
	}
	if err = gzw.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

func rewrite(r io.Reader, w io.Writer, prefix string) error {
	template := linear.NewSeq("", nil, alphabet.DNAredundant)
	sc := seqio.NewScanner(fasta.NewReader(r, template))
	fw := fasta.NewWriter(w, lineWidth)

	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return errors.New("unexpected sequence type")
		}
		s.ID = prefix + "_" + s.ID
		if _, err := fw.Write(s); err != nil {
			return err
		}
	}
	return sc.Error()
}
