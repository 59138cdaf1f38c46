// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package gskmer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"github.com/shenwei356/stable"
	"github.com/shenwei356/util/pathutil"
)

// Writer implements the Output Writer component of §4.E: per-item FASTA
// files under {tmpdir}/kmers and {tmpdir}/contigs, plus the aggregated
// report.md.
type Writer struct {
	TmpDir   string
	Compress bool
}

// NewWriter creates (if missing) the kmers/ and contigs/ subdirectories of
// tmpdir and returns a Writer rooted there.
func NewWriter(tmpdir string, compress bool) (*Writer, error) {
	for _, sub := range []string{"kmers", "contigs"} {
		dir := filepath.Join(tmpdir, sub)
		existed, err := pathutil.DirExists(dir)
		if err != nil {
			return nil, &IOError{Path: dir, Cause: err}
		}
		if !existed {
			if err := os.MkdirAll(dir, 0777); err != nil {
				return nil, &IOError{Path: dir, Cause: err}
			}
		}
	}
	return &Writer{TmpDir: tmpdir, Compress: compress}, nil
}

// Write persists one item's specific k-mers and specific contigs as FASTA
// files, per §3's invariant that files are written only when at least one
// specific k-mer was found (callers only invoke Write on a StatusDone
// result).
func (w *Writer) Write(result ProcessResult) error {
	if err := w.writeFASTA(filepath.Join(w.TmpDir, "kmers", result.KmerFile), kmerRecords(result.Kmers)); err != nil {
		return err
	}
	if err := w.writeFASTA(filepath.Join(w.TmpDir, "contigs", result.ContigFile), contigRecords(result.Contigs)); err != nil {
		return err
	}
	return nil
}

func kmerRecords(kmers []SpecificKmer) func(func(header, seq string)) {
	return func(emit func(header, seq string)) {
		for _, k := range kmers {
			emit(k.Header, k.Sequence)
		}
	}
}

func contigRecords(contigs []Contig) func(func(header, seq string)) {
	return func(emit func(header, seq string)) {
		for _, c := range contigs {
			emit(c.Header, c.Sequence)
		}
	}
}

func (w *Writer) writeFASTA(path string, records func(func(header, seq string))) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Cause: err}
	}
	defer f.Close()

	var out io.Writer = f
	var gz *pgzip.Writer
	if w.Compress {
		gz = pgzip.NewWriter(f)
		out = gz
	}
	bw := bufio.NewWriter(out)

	records(func(header, seq string) {
		fmt.Fprintf(bw, "%s\n%s\n", header, seq)
	})

	if err := bw.Flush(); err != nil {
		return &IOError{Path: path, Cause: err}
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return &IOError{Path: path, Cause: err}
		}
	}
	return nil
}

// WriteReport renders report.md: a title line, a stable-formatted summary
// table, then the done/failed lines sorted for byte-identical reruns
// (§8 Testable Property 9, "Idempotence").
func WriteReport(report *Report, out io.Writer) error {
	done := append([]string(nil), report.Lines[StatusDone]...)
	failed := append([]string(nil), report.Lines[StatusFailed]...)
	sortStrings(done)
	sortStrings(failed)

	if _, err := fmt.Fprintf(out, "# gskmer run report\n\n"); err != nil {
		return errors.Wrap(err, "report.md")
	}

	style := &stable.TableStyle{
		Name:      "plain",
		HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		Padding:   "",
	}
	tbl := stable.New()
	tbl.HeaderWithFormat([]stable.Column{
		{Header: "status"},
		{Header: "count", Align: stable.AlignRight},
	})
	tbl.AddRow([]interface{}{"done", humanize.Comma(int64(len(done)))})
	tbl.AddRow([]interface{}{"failed", humanize.Comma(int64(len(failed)))})
	if _, err := out.Write(tbl.Render(style)); err != nil {
		return errors.Wrap(err, "report.md")
	}

	if _, err := fmt.Fprintf(out, "\n## done\n\n"); err != nil {
		return errors.Wrap(err, "report.md")
	}
	for _, line := range done {
		if _, err := fmt.Fprintf(out, "- %s\n", line); err != nil {
			return errors.Wrap(err, "report.md")
		}
	}

	if _, err := fmt.Fprintf(out, "\n## failed\n\n"); err != nil {
		return errors.Wrap(err, "report.md")
	}
	for _, line := range failed {
		if _, err := fmt.Fprintf(out, "- %s\n", line); err != nil {
			return errors.Wrap(err, "report.md")
		}
	}
	return nil
}
