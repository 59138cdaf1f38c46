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
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// LoadTranscriptome reads every record of a transcript-sequence FASTA file
// into a Transcriptome keyed by ENST. Only the id up to the first
// whitespace is kept, matching how ENST tokens are compared elsewhere
// (§4.B).
func LoadTranscriptome(file string) (Transcriptome, error) {
	reader, err := fastx.NewDefaultReader(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	t := make(Transcriptome, 4096)
	var record *fastx.Record
	for {
		record, err = reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, file)
		}

		id := firstField(string(record.Name))
		seq := make([]byte, len(record.Seq.Seq))
		copy(seq, record.Seq.Seq)
		t[id] = seq
	}
	return t, nil
}

// LoadChimeraQueries reads an arbitrary query FASTA (the "fasta_file" mode
// of §4.B) into Items of KindUnannotated, one per record, id taken up to
// the first whitespace and also used as the FID.
func LoadChimeraQueries(file string) ([]Item, error) {
	reader, err := fastx.NewDefaultReader(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	var items []Item
	var record *fastx.Record
	for {
		record, err = reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, file)
		}

		id := firstField(string(record.Name))
		seq := make([]byte, len(record.Seq.Seq))
		copy(seq, record.Seq.Seq)
		items = append(items, Item{
			Given: id,
			Kind:  KindUnannotated,
			Seq:   seq,
			FID:   SanitizeFID(id),
		})
	}
	return items, nil
}

func firstField(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}
