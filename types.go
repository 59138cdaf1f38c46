// Copyright © 2018-2021 Wei Shen <shenwei356@gmail.com>
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

// Package gskmer implements the gene- and transcript-specific k-mer
// specificity engine: resolving query tokens to sequences, deciding which
// k-mers of each sequence are specific against a genome and transcriptome
// count oracle, stitching retained k-mers into contigs, and driving all of
// that across a worker pool.
package gskmer

// Kind is the operating mode a Item was resolved into.
type Kind int

// The four Kinds drive the per-kmer decision table of §4.C.
const (
	KindGene Kind = iota
	KindTranscript
	KindChimera
	KindUnannotated
)

func (k Kind) String() string {
	switch k {
	case KindGene:
		return "gene"
	case KindTranscript:
		return "transcript"
	case KindChimera:
		return "chimera"
	case KindUnannotated:
		return "unannotated"
	default:
		return "unknown"
	}
}

// Transcriptome maps transcript-id to nucleotide sequence. It is read-only
// after construction and safe for concurrent readers (§5 "Shared resources").
type Transcriptome map[string][]byte

// Sequence returns the sequence for a transcript-id and whether it exists.
func (t Transcriptome) Sequence(enst string) ([]byte, bool) {
	seq, ok := t[enst]
	return seq, ok
}

// GeneRecord is one gene's metadata entry (§3 GeneInfo).
type GeneRecord struct {
	Symbol      string
	Aliases     map[string]struct{}
	Transcripts map[string]struct{}
	Assembly    string
}

// GeneInfo is the gene-id -> GeneRecord mapping plus the secondary indexes
// the Resolver needs to turn a symbol/alias/transcript-id into a gene-id.
// It is read-only after construction, mirroring Transcriptome.
type GeneInfo struct {
	Genes map[string]*GeneRecord // gene-id -> record

	bySymbol     map[string]string // uppercased symbol -> gene-id
	byAlias      map[string]string // uppercased alias -> gene-id
	byTranscript map[string]string // ENST -> gene-id
}

// Item is a single resolved query, produced by the Sequence Resolver (§3).
type Item struct {
	Given  string // raw user token, preserved verbatim for reporting
	Kind   Kind
	ENSG   string
	ENST   string
	Symbol string
	Seq    []byte
	FID    string // filesystem-safe identifier, output filename stem
}

// KmerCountMap maps a k-mer string to its occurrence count in an index.
type KmerCountMap map[string]int

// SpecificKmer is one retained k-mer (§3).
type SpecificKmer struct {
	Position int // 1-based
	Sequence string
	Header   string
}

// Contig is a maximal run of positionally adjacent retained k-mers (§3, §4.C).
type Contig struct {
	Start    int // 1-based position of the first retained k-mer
	Sequence string
	Header   string
}

// Status is the outcome of processing one Item (§3 Report, §7).
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Report is the run's bag of per-item outcome lines, grouped by status (§3).
type Report struct {
	Lines map[Status][]string
}

// NewReport returns an empty Report with both statuses initialized.
func NewReport() *Report {
	return &Report{Lines: map[Status][]string{StatusDone: {}, StatusFailed: {}}}
}

// Add appends one line under status. Safe to call only from the pool
// supervisor after joining a worker (§5 "Report" is append-only by the
// supervisor, never mutated directly by workers).
func (r *Report) Add(status Status, line string) {
	r.Lines[status] = append(r.Lines[status], line)
}

// Merge folds another Report's lines into r.
func (r *Report) Merge(other *Report) {
	for status, lines := range other.Lines {
		r.Lines[status] = append(r.Lines[status], lines...)
	}
}
