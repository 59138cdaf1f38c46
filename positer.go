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

import "fmt"

// ErrInvalidK means k < 1.
var ErrInvalidK = fmt.Errorf("gskmer: invalid k-mer size")

// ErrShortSeq means the sequence is shorter than k.
var ErrShortSeq = fmt.Errorf("gskmer: sequence shorter than k")

// KmerPosIterator walks every k-length substring of a sequence strictly
// left to right, 1-based. Every caller that needs "the kmer at position p"
// (the Count Oracle's re-derivation of positions from the oracle's
// unordered map, and the Specificity Engine's per-position decision loop)
// goes through this iterator, so the left-to-right guarantee in §4.A is
// enforced in exactly one place.
type KmerPosIterator struct {
	seq     []byte
	k       int
	pos     int // 0-based index of the next kmer to emit
	lastPos int // last valid 0-based index, inclusive

	finished bool
}

// NewKmerPosIterator returns an iterator over seq's k-mers. It fails with
// ErrInvalidK or ErrShortSeq exactly when the caller should instead report
// SequenceTooShort per §4.B.
func NewKmerPosIterator(seq []byte, k int) (*KmerPosIterator, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(seq) < k {
		return nil, ErrShortSeq
	}
	return &KmerPosIterator{seq: seq, k: k, pos: 0, lastPos: len(seq) - k}, nil
}

// Next returns the next (1-based position, kmer) pair, or ok=false once
// every position has been emitted.
func (it *KmerPosIterator) Next() (pos int, kmer []byte, ok bool) {
	if it.finished || it.pos > it.lastPos {
		it.finished = true
		return 0, nil, false
	}
	kmer = it.seq[it.pos : it.pos+it.k]
	pos = it.pos + 1 // 1-based, per SpecificKmer.position (§3)
	it.pos++
	if it.pos > it.lastPos {
		it.finished = true
	}
	return pos, kmer, true
}

// NumKmers returns len(seq)-k+1, the cardinality every KmerCountMap must
// match (§3 invariant).
func NumKmers(seqLen, k int) int {
	n := seqLen - k + 1
	if n < 0 {
		return 0
	}
	return n
}
