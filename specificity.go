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
	"fmt"
	"strings"

	"github.com/shenwei356/go-logging"
)

var log = logging.MustGetLogger("gskmer")

// Context carries the run-wide, read-only settings the Specificity Engine
// needs per item (§4.C contract: "ctx carries {stringent,
// max_on_transcriptome, ..., geneinfo, transcriptome, K}"). One Context is
// built once at startup and shared by every worker.
type Context struct {
	Stringent           bool
	MaxOnTranscriptome  int
	GeneInfo            *GeneInfo
	Transcriptome       Transcriptome
	Isoforms            *IsoformIndex
	K                   int
	// Debug, when set, makes Process log one summary line per item after
	// its k-mer walk completes, matching kmerize.py's get_specific_kmers
	// debug granularity (a per-item summary, not a per-k-mer trace).
	Debug bool
}

// ProcessResult is everything the Output Writer and the Report need out of
// one item's specificity run.
type ProcessResult struct {
	Status     Status
	Message    string
	Kmers      []SpecificKmer
	Contigs    []Contig
	KmerFile   string
	ContigFile string
}

// Process implements the Specificity Engine contract of §4.C: it walks
// every k-mer of item.Seq left to right, applies the mode-specific
// retention rule, stitches adjacent retained k-mers into contigs, and
// reports (status, message) plus the retained data for the Output Writer.
func Process(item Item, countTx, countGn KmerCountMap, ctx *Context) ProcessResult {
	var transcripts []string
	var totalIsoforms int
	if item.Kind == KindGene {
		transcripts = ctx.GeneInfo.Transcripts(item.ENSG)
		totalIsoforms = len(transcripts)
	}

	prefix := headerPrefix(item)

	var (
		currentContig   strings.Builder
		contigStart     int
		lastAcceptedPos int
		contigCount     int
		keptCount       int
	)

	var kmers []SpecificKmer
	var contigs []Contig

	flush := func() {
		contigs = append(contigs, Contig{
			Start:    contigStart,
			Sequence: currentContig.String(),
			Header:   contigHeader(prefix, contigCount, contigStart),
		})
	}

	it, err := NewKmerPosIterator(item.Seq, ctx.K)
	if err != nil {
		// Resolver already filters len(seq) < K, but guard defensively for
		// items constructed outside the Resolver (e.g. fasta_file mode).
		return ProcessResult{
			Status:  StatusFailed,
			Message: fmt.Sprintf("%s: sequence too short (%d < %d)", reportName(item), len(item.Seq), ctx.K),
		}
	}

	for {
		p, kmer, ok := it.Next()
		if !ok {
			break
		}

		countGenome := countGn[string(kmer)]
		countTranscriptome := countTx[string(kmer)]

		var containing int
		if item.Kind == KindGene {
			containing = ctx.Isoforms.Containing(item.ENSG, transcripts, kmer)
		}

		if !retain(item.Kind, ctx, countTranscriptome, countGenome, containing, totalIsoforms) {
			continue
		}

		header := kmerHeader(item, prefix, p, containing, totalIsoforms)
		kmers = append(kmers, SpecificKmer{Position: p, Sequence: string(kmer), Header: header})

		switch {
		case keptCount == 0:
			currentContig.Reset()
			currentContig.Write(kmer)
			contigStart = p
			lastAcceptedPos = p
			keptCount = 1
			contigCount = 1
		case p == lastAcceptedPos+1:
			currentContig.WriteByte(kmer[len(kmer)-1])
			lastAcceptedPos = p
			keptCount++
		default:
			flush()
			contigCount++
			currentContig.Reset()
			currentContig.Write(kmer)
			contigStart = p
			lastAcceptedPos = p
			keptCount++
		}
	}

	if keptCount == 0 {
		if ctx.Debug {
			log.Debugf("%s kmers/contigs: 0/0 (rejected)", reportName(item))
		}
		return ProcessResult{
			Status:  StatusFailed,
			Message: fmt.Sprintf("%s: no specific kmers found", reportName(item)),
		}
	}
	if currentContig.Len() > 0 {
		flush()
	}

	if ctx.Debug {
		log.Debugf("%s kmers/contigs: %d/%d", reportName(item), len(kmers), len(contigs))
	}

	kmerFile, contigFile := outputFilenames(item)
	return ProcessResult{
		Status:     StatusDone,
		Message:    fmt.Sprintf("%s: %d specific kmers, %d contigs", reportName(item), len(kmers), len(contigs)),
		Kmers:      kmers,
		Contigs:    contigs,
		KmerFile:   kmerFile,
		ContigFile: contigFile,
	}
}

// retain applies the per-k-mer decision table of §4.C.
func retain(kind Kind, ctx *Context, countTx, countGn, containing, totalIsoforms int) bool {
	switch kind {
	case KindGene:
		if countGn > 1 {
			return false
		}
		if ctx.Stringent {
			return countTx == totalIsoforms && containing == totalIsoforms
		}
		return countTx == containing
	case KindTranscript:
		return countTx == 1 && countGn <= 1
	case KindUnannotated:
		return countTx <= ctx.MaxOnTranscriptome && countGn <= 1
	case KindChimera:
		return countTx == 0 && countGn == 0
	default:
		return false
	}
}

// reportName is the token used in report/failure messages: the raw given
// token for gene/transcript items, the f_id for unannotated/chimera items.
func reportName(item Item) string {
	if item.Given != "" {
		return item.Given
	}
	return item.FID
}

// headerPrefix builds the shared prefix used by both k-mer and contig
// headers, per kind (§4.C "Headers").
func headerPrefix(item Item) string {
	switch item.Kind {
	case KindGene, KindTranscript:
		return fmt.Sprintf("%s:%s", strings.ToUpper(item.Given), item.ENST)
	default:
		return item.FID
	}
}

func kmerHeader(item Item, prefix string, pos, containing, totalIsoforms int) string {
	base := fmt.Sprintf(">%s.kmer%d", prefix, pos)
	if item.Kind == KindGene {
		return fmt.Sprintf("%s (%d/%d)", base, containing, totalIsoforms)
	}
	return base
}

func contigHeader(prefix string, contigCount, contigStart int) string {
	return fmt.Sprintf(">%s.contig%d (at position %d)", prefix, contigCount, contigStart)
}

// outputFilenames implements §4.C's "Output filenames" table.
func outputFilenames(item Item) (kmerFile, contigFile string) {
	var stem string
	switch item.Kind {
	case KindGene:
		stem = fmt.Sprintf("%s-%s-gene", strings.ToUpper(item.Given), item.ENST)
	case KindTranscript:
		stem = fmt.Sprintf("%s-%s-transcript", strings.ToUpper(item.Given), item.ENST)
	case KindChimera:
		stem = fmt.Sprintf("%s-chimera", item.FID)
	case KindUnannotated:
		stem = fmt.Sprintf("%s-transcript", item.FID)
	}
	return stem + "-specific_kmers.fa", stem + "-specific_contigs.fa"
}
