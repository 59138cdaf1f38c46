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

import "testing"

func testContext(transcriptome Transcriptome, geneInfo *GeneInfo, k int, stringent bool) *Context {
	return &Context{
		Stringent:          stringent,
		MaxOnTranscriptome: 0,
		GeneInfo:           geneInfo,
		Transcriptome:      transcriptome,
		Isoforms:           NewIsoformIndex(transcriptome, k),
		K:                  k,
	}
}

// Seed scenario 1: transcript-specific trivial (§8).
func TestProcessTranscriptSpecificTrivial(t *testing.T) {
	seq := []byte("ACGTACGTAC")
	item := Item{Given: "T1", Kind: KindTranscript, ENST: "T1", Seq: seq, FID: "T1"}

	countTx := KmerCountMap{}
	countGn := KmerCountMap{}
	it, _ := NewKmerPosIterator(seq, 5)
	for {
		_, kmer, ok := it.Next()
		if !ok {
			break
		}
		countTx[string(kmer)] = 1
		countGn[string(kmer)] = 0
	}

	ctx := testContext(Transcriptome{"T1": seq}, &GeneInfo{Genes: map[string]*GeneRecord{}}, 5, false)
	result := Process(item, countTx, countGn, ctx)

	if result.Status != StatusDone {
		t.Fatalf("expected done, got %s: %s", result.Status, result.Message)
	}
	if len(result.Kmers) != 6 {
		t.Fatalf("expected 6 specific kmers, got %d", len(result.Kmers))
	}
	if len(result.Contigs) != 1 || result.Contigs[0].Sequence != "ACGTACGTAC" {
		t.Fatalf("expected one contig equal to the full sequence, got %+v", result.Contigs)
	}
}

// Seed scenario 2: gene lenient single isoform (§8).
func TestProcessGeneLenientSingleIsoform(t *testing.T) {
	seq := []byte("AAAAACCCCC")
	geneInfo := &GeneInfo{Genes: map[string]*GeneRecord{
		"ENSG1": {Transcripts: map[string]struct{}{"T1": {}}},
	}}
	transcriptome := Transcriptome{"T1": seq}
	item := Item{Given: "ENSG1", Kind: KindGene, ENSG: "ENSG1", ENST: "T1", Seq: seq, FID: "T1"}

	countTx := KmerCountMap{}
	countGn := KmerCountMap{}
	it, _ := NewKmerPosIterator(seq, 5)
	for {
		_, kmer, ok := it.Next()
		if !ok {
			break
		}
		countTx[string(kmer)] = 1
		countGn[string(kmer)] = 0
	}

	ctx := testContext(transcriptome, geneInfo, 5, false)
	result := Process(item, countTx, countGn, ctx)

	if result.Status != StatusDone {
		t.Fatalf("expected done, got %s: %s", result.Status, result.Message)
	}
	if len(result.Kmers) != 6 {
		t.Errorf("expected all 6 kmers retained, got %d", len(result.Kmers))
	}
}

// Seed scenario 3: gene stringent multi-isoform (§8).
func TestProcessGeneStringentMultiIsoform(t *testing.T) {
	t1 := []byte("AAAAAGGGGG")
	t2 := []byte("AAAAATTTTT")
	geneInfo := &GeneInfo{Genes: map[string]*GeneRecord{
		"ENSG1": {Transcripts: map[string]struct{}{"T1": {}, "T2": {}}},
	}}
	transcriptome := Transcriptome{"T1": t1, "T2": t2}
	item := Item{Given: "ENSG1", Kind: KindGene, ENSG: "ENSG1", ENST: "T1", Seq: t1, FID: "T1"}

	// count_tx as the transcriptome oracle would report: "AAAAA" occurs in
	// both isoforms, the other four k-mers of T1 occur only in T1.
	countTx := KmerCountMap{"AAAAA": 2, "AAAAG": 1, "AAAGG": 1, "AAGGG": 1, "AGGGG": 1, "GGGGG": 1}
	countGn := KmerCountMap{}

	ctx := testContext(transcriptome, geneInfo, 5, true)
	result := Process(item, countTx, countGn, ctx)

	if result.Status != StatusDone {
		t.Fatalf("expected done, got %s: %s", result.Status, result.Message)
	}
	if len(result.Kmers) != 1 || result.Kmers[0].Sequence != "AAAAA" {
		t.Fatalf("expected only AAAAA retained, got %+v", result.Kmers)
	}
	if len(result.Contigs) != 1 {
		t.Fatalf("expected one contig, got %d", len(result.Contigs))
	}
}

// Seed scenario 5: chimera, no k-mer present in either index (§8).
func TestProcessChimera(t *testing.T) {
	item := Item{Given: "c1", Kind: KindChimera, Seq: []byte("XXXXXXXX"), FID: "c1"}
	ctx := testContext(Transcriptome{}, &GeneInfo{Genes: map[string]*GeneRecord{}}, 5, false)

	result := Process(item, KmerCountMap{}, KmerCountMap{}, ctx)

	if result.Status != StatusDone {
		t.Fatalf("expected done, got %s: %s", result.Status, result.Message)
	}
	if len(result.Contigs) != 1 {
		t.Fatalf("expected a single contig, got %d", len(result.Contigs))
	}
	if result.Contigs[0].Sequence != "XXXXXXXX" {
		t.Errorf("expected the contig to span the whole query, got %q", result.Contigs[0].Sequence)
	}
}

// Seed scenario 6: too-short sequence (§8).
func TestProcessTooShortSequence(t *testing.T) {
	item := Item{Given: "T1", Kind: KindTranscript, ENST: "T1", Seq: []byte("ACG"), FID: "T1"}
	ctx := testContext(Transcriptome{}, &GeneInfo{Genes: map[string]*GeneRecord{}}, 5, false)

	result := Process(item, KmerCountMap{}, KmerCountMap{}, ctx)
	if result.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", result.Status)
	}
}

func newUnannotatedContext() *Context {
	return testContext(Transcriptome{}, &GeneInfo{Genes: map[string]*GeneRecord{}}, 5, false)
}

// Boundary case: len(seq) == K, exactly one k-mer candidate (§8).
func TestProcessSingleKmerCandidate(t *testing.T) {
	item := Item{Given: "q", Kind: KindUnannotated, Seq: []byte("ABCDE"), FID: "q"}
	ctx := newUnannotatedContext()

	result := Process(item, KmerCountMap{"ABCDE": 0}, KmerCountMap{"ABCDE": 0}, ctx)
	if result.Status != StatusDone {
		t.Fatalf("expected done, got %s: %s", result.Status, result.Message)
	}
	if len(result.Contigs) != 1 || result.Contigs[0].Sequence != "ABCDE" {
		t.Fatalf("expected a single contig equal to the only kmer, got %+v", result.Contigs)
	}
}

// Boundary case: all k-mers rejected, no files, failed report line (§8).
func TestProcessAllRejected(t *testing.T) {
	item := Item{Given: "q", Kind: KindUnannotated, Seq: []byte("ABCDE"), FID: "q"}
	ctx := newUnannotatedContext()

	result := Process(item, KmerCountMap{"ABCDE": 5}, KmerCountMap{"ABCDE": 0}, ctx)
	if result.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", result.Status)
	}
	if len(result.Kmers) != 0 || len(result.Contigs) != 0 {
		t.Errorf("expected no kmers or contigs, got %d and %d", len(result.Kmers), len(result.Contigs))
	}
}

// Boundary case: retained k-mers at positions {1,2,3,7,8} form two contigs,
// one starting at 1 (length K+2) and one starting at 7 (length K+1) (§8).
func TestProcessTwoContigsFromGap(t *testing.T) {
	seq := []byte("ABCDEFGHIJKL") // 12 distinct letters, K=5 -> 8 distinct 5-mers
	item := Item{Given: "q", Kind: KindUnannotated, Seq: seq, FID: "q"}
	ctx := newUnannotatedContext()

	retain := map[string]bool{
		"ABCDE": true, "BCDEF": true, "CDEFG": true, // positions 1,2,3
		"DEFGH": false, "EFGHI": false, "FGHIJ": false, // positions 4,5,6
		"GHIJK": true, "HIJKL": true, // positions 7,8
	}
	countTx := KmerCountMap{}
	countGn := KmerCountMap{}
	for kmer, keep := range retain {
		if keep {
			countTx[kmer] = 0
		} else {
			countTx[kmer] = 5
		}
		countGn[kmer] = 0
	}

	result := Process(item, countTx, countGn, ctx)
	if result.Status != StatusDone {
		t.Fatalf("expected done, got %s: %s", result.Status, result.Message)
	}
	if len(result.Contigs) != 2 {
		t.Fatalf("expected 2 contigs, got %d: %+v", len(result.Contigs), result.Contigs)
	}
	if result.Contigs[0].Start != 1 || result.Contigs[0].Sequence != "ABCDEFG" {
		t.Errorf("expected first contig ABCDEFG at position 1, got %+v", result.Contigs[0])
	}
	if result.Contigs[1].Start != 7 || result.Contigs[1].Sequence != "GHIJKL" {
		t.Errorf("expected second contig GHIJKL at position 7, got %+v", result.Contigs[1])
	}
}

// Testable property 9: idempotence, modulo timestamps.
func TestProcessIdempotent(t *testing.T) {
	seq := []byte("ACGTACGTAC")
	item := Item{Given: "T1", Kind: KindTranscript, ENST: "T1", Seq: seq, FID: "T1"}
	countTx := KmerCountMap{}
	countGn := KmerCountMap{}
	it, _ := NewKmerPosIterator(seq, 5)
	for {
		_, kmer, ok := it.Next()
		if !ok {
			break
		}
		countTx[string(kmer)] = 1
		countGn[string(kmer)] = 0
	}
	ctx := testContext(Transcriptome{"T1": seq}, &GeneInfo{Genes: map[string]*GeneRecord{}}, 5, false)

	r1 := Process(item, countTx, countGn, ctx)
	r2 := Process(item, countTx, countGn, ctx)

	if r1.Message != r2.Message || len(r1.Kmers) != len(r2.Kmers) || len(r1.Contigs) != len(r2.Contigs) {
		t.Fatalf("expected identical results across runs, got %+v vs %+v", r1, r2)
	}
	for i := range r1.Kmers {
		if r1.Kmers[i] != r2.Kmers[i] {
			t.Errorf("kmer %d differs between runs: %+v vs %+v", i, r1.Kmers[i], r2.Kmers[i])
		}
	}
}
