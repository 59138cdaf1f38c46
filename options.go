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

// Options is the fixed configuration record the engine accepts (§6, §9
// "Dynamic option bag": represent as a fixed record, reject unknown keys
// at load rather than reading arbitrary attributes off a bag).
type Options struct {
	Selection []string
	FastaFile string
	Chimera   bool

	Stringent          bool
	MaxOnTranscriptome int
	KmerLength         int

	GenomeIndex        string
	TranscriptomeIndex string
	TranscriptomeFasta string
	GeneInfoFile       string

	Thread int
	TmpDir string
	Output string
	Keep   bool
	Debug  bool
}

// Validate enforces the invariants implied by §6's option table: exactly
// one of Selection/FastaFile, a positive K, a usable thread count, and
// non-empty dataset paths. It does not touch the filesystem: whether those
// paths exist or are readable is not checked here. It returns a
// *ConfigError on the first violation found, per §7 ("fatal; abort before
// any worker starts").
func (o *Options) Validate() error {
	if len(o.Selection) > 0 && o.FastaFile != "" {
		return &ConfigError{Reason: "selection and fasta_file are mutually exclusive"}
	}
	if len(o.Selection) == 0 && o.FastaFile == "" {
		return &ConfigError{Reason: "one of selection or fasta_file is required"}
	}
	if o.KmerLength < 1 {
		return &ConfigError{Reason: "kmer_length must be positive"}
	}
	if o.MaxOnTranscriptome < 0 {
		return &ConfigError{Reason: "max_on_transcriptome must be non-negative"}
	}
	if o.Thread < 1 {
		return &ConfigError{Reason: "thread must be positive"}
	}
	if o.GenomeIndex == "" || o.TranscriptomeIndex == "" {
		return &ConfigError{Reason: "genome and transcriptome count index paths are required"}
	}
	if o.TranscriptomeFasta == "" {
		return &ConfigError{Reason: "transcriptome fasta path is required"}
	}
	if len(o.Selection) > 0 && o.GeneInfoFile == "" {
		return &ConfigError{Reason: "gene-info file is required when selection tokens are given"}
	}
	if o.Keep && o.Output == "" {
		return &ConfigError{Reason: "output directory is required when keep is set"}
	}
	return nil
}

// MaxOnTranscriptomeDefault is the §6 default for unannotated mode.
const MaxOnTranscriptomeDefault = 0

// DefaultKmerLength is the §3 default K.
const DefaultKmerLength = 31
