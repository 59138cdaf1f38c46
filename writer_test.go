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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWriterCreatesSubdirs(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewWriter(dir, false); err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{"kmers", "contigs"} {
		if info, err := os.Stat(filepath.Join(dir, sub)); err != nil || !info.IsDir() {
			t.Errorf("expected %s to be a directory", sub)
		}
	}
}

func TestWriterWriteFASTAContent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	result := ProcessResult{
		Kmers:      []SpecificKmer{{Position: 1, Sequence: "ACGTA", Header: ">q.kmer1"}},
		Contigs:    []Contig{{Start: 1, Sequence: "ACGTACGTAC", Header: ">q.contig1 (at position 1)"}},
		KmerFile:   "q-specific_kmers.fa",
		ContigFile: "q-specific_contigs.fa",
	}
	if err := w.Write(result); err != nil {
		t.Fatal(err)
	}

	kmerData, err := os.ReadFile(filepath.Join(dir, "kmers", result.KmerFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(kmerData) != ">q.kmer1\nACGTA\n" {
		t.Errorf("unexpected kmer FASTA content: %q", string(kmerData))
	}

	contigData, err := os.ReadFile(filepath.Join(dir, "contigs", result.ContigFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(contigData) != ">q.contig1 (at position 1)\nACGTACGTAC\n" {
		t.Errorf("unexpected contig FASTA content: %q", string(contigData))
	}
}

func TestWriteReportSortedAndIdempotent(t *testing.T) {
	report := NewReport()
	report.Add(StatusDone, "T2: 3 specific kmers, 1 contigs")
	report.Add(StatusDone, "T1: 6 specific kmers, 1 contigs")
	report.Add(StatusFailed, "T3: no specific kmers found")

	var buf1, buf2 bytes.Buffer
	if err := WriteReport(report, &buf1); err != nil {
		t.Fatal(err)
	}
	if err := WriteReport(report, &buf2); err != nil {
		t.Fatal(err)
	}
	if buf1.String() != buf2.String() {
		t.Fatal("expected WriteReport to be idempotent across runs")
	}

	out := buf1.String()
	doneIdx := strings.Index(out, "## done")
	failedIdx := strings.Index(out, "## failed")
	t1Idx := strings.Index(out, "T1:")
	t2Idx := strings.Index(out, "T2:")
	if !(doneIdx < t1Idx && t1Idx < t2Idx && t2Idx < failedIdx) {
		t.Errorf("expected sorted done lines (T1 before T2) between the done/failed headers, got:\n%s", out)
	}
	if !strings.Contains(out, "T3: no specific kmers found") {
		t.Error("expected the failed line to appear in the report")
	}
}
