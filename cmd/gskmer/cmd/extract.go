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

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bio-tools/gskmer"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "extract gene- and transcript-specific k-mers",
	Long: `extract

Resolves the given selection/FASTA query tokens to sequences, decides
which k-mers of each are specific against the genome and transcriptome
count indexes, stitches the retained k-mers into contigs, and writes one
FASTA pair per query plus a run report.
`,
	Run: func(cmd *cobra.Command, args []string) {
		gopt := getGlobalOptions(cmd)

		opt := &gskmer.Options{
			Selection:          getFlagStringSlice(cmd, "selection"),
			FastaFile:          getFlagString(cmd, "fasta-file"),
			Chimera:            getFlagBool(cmd, "chimera"),
			Stringent:          getFlagBool(cmd, "stringent"),
			MaxOnTranscriptome: getFlagNonNegativeInt(cmd, "max-on-transcriptome"),
			KmerLength:         getFlagPositiveInt(cmd, "kmer-length"),
			GenomeIndex:        expandPath(getFlagString(cmd, "genome-index")),
			TranscriptomeIndex: expandPath(getFlagString(cmd, "transcriptome-index")),
			TranscriptomeFasta: expandPath(getFlagString(cmd, "transcriptome-fasta")),
			GeneInfoFile:       expandPath(getFlagString(cmd, "gene-info")),
			Thread:             gopt.NumCPUs,
			TmpDir:             expandPath(getFlagString(cmd, "tmpdir")),
			Output:             expandPath(getFlagString(cmd, "output")),
			Keep:               getFlagBool(cmd, "keep"),
			Debug:              gopt.Debug,
		}
		checkError(opt.Validate())

		runDir := opt.TmpDir
		if opt.Keep {
			runDir = opt.Output
		}
		if runDir == "" {
			dir, err := os.MkdirTemp("", "gskmer-")
			checkError(errors.Wrap(err, "creating scratch directory"))
			runDir = dir
			if !opt.Keep {
				defer os.RemoveAll(runDir)
			}
		} else {
			checkError(os.MkdirAll(runDir, 0777))
		}

		if gopt.Verbose {
			log.Infof("loading transcriptome: %s", opt.TranscriptomeFasta)
		}
		transcriptome, err := gskmer.LoadTranscriptome(opt.TranscriptomeFasta)
		checkError(err)
		if gopt.Verbose {
			log.Infof("%s transcripts loaded", humanize.Comma(int64(len(transcriptome))))
		}

		var geneInfo *gskmer.GeneInfo
		if opt.GeneInfoFile != "" {
			if gopt.Verbose {
				log.Infof("loading gene info: %s", opt.GeneInfoFile)
			}
			geneInfo, err = gskmer.NewGeneInfo(opt.GeneInfoFile)
			checkError(err)
			if gopt.Verbose {
				log.Infof("%s genes loaded", humanize.Comma(int64(len(geneInfo.Genes))))
			}
		}

		items, resolveReport, err := resolveItems(opt, transcriptome, geneInfo)
		checkError(err)
		if gopt.Verbose {
			log.Infof("%s items to process", humanize.Comma(int64(len(items))))
		}

		writer, err := gskmer.NewWriter(runDir, !getFlagBool(cmd, "no-compress"))
		checkError(err)

		ctx := &gskmer.Context{
			Stringent:          opt.Stringent,
			MaxOnTranscriptome: opt.MaxOnTranscriptome,
			GeneInfo:           geneInfo,
			Transcriptome:      transcriptome,
			Isoforms:           gskmer.NewIsoformIndex(transcriptome, opt.KmerLength),
			K:                  opt.KmerLength,
			Debug:              opt.Debug,
		}

		pool := gskmer.NewPool(gskmer.NewOracle(), ctx, writer, opt.GenomeIndex, opt.TranscriptomeIndex, opt.Thread)
		report := pool.Run(items)
		report.Merge(resolveReport)

		reportPath := filepath.Join(runDir, "report.md")
		reportBuf, _, reportFile, err := outStream(reportPath, false)
		checkError(errors.Wrap(err, "writing report"))
		err = gskmer.WriteReport(report, reportBuf)
		if err == nil {
			err = reportBuf.Flush()
		}
		reportFile.Close()
		checkError(err)

		fmt.Printf("%d done, %d failed. report: %s\n",
			len(report.Lines[gskmer.StatusDone]), len(report.Lines[gskmer.StatusFailed]), reportPath)
	},
}

// resolveItems turns the selection/fasta_file/chimera options into the item
// list the pool processes, per §4.B's three resolution modes. A non-fatal
// *gskmer.ResolutionError (missing gene/transcript, sequence too short) is
// recorded as a failed line in the returned report rather than aborting the
// run or only reaching stderr, per §4.B/§7.
func resolveItems(opt *gskmer.Options, transcriptome gskmer.Transcriptome, geneInfo *gskmer.GeneInfo) ([]gskmer.Item, *gskmer.Report, error) {
	report := gskmer.NewReport()

	if opt.FastaFile != "" {
		items, err := gskmer.LoadChimeraQueries(opt.FastaFile)
		if err != nil {
			return nil, report, err
		}
		if opt.Chimera {
			for i := range items {
				items[i].Kind = gskmer.KindChimera
			}
		}
		return items, report, nil
	}

	selection, err := expandSelectionFile(opt.Selection)
	if err != nil {
		return nil, report, err
	}

	resolver := gskmer.NewResolver(transcriptome, geneInfo, opt.KmerLength)
	var items []gskmer.Item
	for _, token := range selection {
		resolved, err := resolver.Resolve(token)
		if err != nil {
			if _, fatal := err.(*gskmer.VersionedIdRejected); fatal {
				return nil, report, err
			}
			log.Warning(err)
			report.Add(gskmer.StatusFailed, err.Error())
			continue
		}
		items = append(items, resolved...)
	}
	return items, report, nil
}

// expandSelectionFile mirrors kmerator's options.py checkup_args: a
// single-element --selection that names an existing file is replaced by the
// file's contents, whitespace-split with "#"-comments stripped per line.
func expandSelectionFile(selection []string) ([]string, error) {
	if len(selection) != 1 {
		return selection, nil
	}
	info, err := os.Stat(selection[0])
	if err != nil || info.IsDir() {
		return selection, nil
	}

	f, err := os.Open(selection[0])
	if err != nil {
		return nil, errors.Wrapf(err, "reading selection file %s", selection[0])
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.SplitN(scanner.Text(), "#", 2)[0]
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading selection file %s", selection[0])
	}
	return tokens, nil
}

func init() {
	RootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringSliceP("selection", "s", nil, "gene symbol/alias/ENSG/ENST tokens, mutually exclusive with --fasta-file")
	extractCmd.Flags().StringP("fasta-file", "f", "", "FASTA file of query sequences")
	extractCmd.Flags().BoolP("chimera", "", false, "treat --fasta-file records as chimera queries")
	extractCmd.Flags().BoolP("stringent", "", false, "tighten gene-mode specificity rule")
	extractCmd.Flags().IntP("max-on-transcriptome", "", gskmer.MaxOnTranscriptomeDefault, "max transcriptome count for unannotated mode")
	extractCmd.Flags().IntP("kmer-length", "k", gskmer.DefaultKmerLength, "k-mer size, must match the count indexes")
	extractCmd.Flags().StringP("genome-index", "", "", "genome k-mer count index path")
	extractCmd.Flags().StringP("transcriptome-index", "", "", "transcriptome k-mer count index path")
	extractCmd.Flags().StringP("transcriptome-fasta", "", "", "transcriptome FASTA path")
	extractCmd.Flags().StringP("gene-info", "", "", "gene-info TSV path")
	extractCmd.Flags().StringP("tmpdir", "", "", "scratch directory (random if empty and --keep is not set)")
	extractCmd.Flags().StringP("output", "o", "", "final output directory, required when --keep is set")
	extractCmd.Flags().BoolP("keep", "", false, "retain intermediate files, writing to --output instead of a random tmpdir")
}
