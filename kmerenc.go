// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
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

import "errors"

// ErrIllegalBase means a byte outside {A,C,G,T,a,c,g,t} was seen. Kmers
// containing IUPAC degenerate bases (including N) cannot be packed into a
// uint64 code without losing information, so isCleanACGT below rejects them
// up front rather than collapsing them the way the teacher's 2-bit packer
// did; callers fall back to a hashed lookup verified by byte comparison
// for those (isoformSet in isoform.go).
var ErrIllegalBase = errors.New("gskmer: illegal base for fast encoding")

// ErrKOverflow means K > 32, the largest kmer a uint64 code can represent.
var ErrKOverflow = errors.New("gskmer: K (1-32) overflow")

// isCleanACGT reports whether kmer contains only A/C/G/T (any case), i.e.
// whether it is safe to pack losslessly into a uint64 code.
func isCleanACGT(kmer []byte) bool {
	for _, b := range kmer {
		switch b {
		case 'A', 'a', 'C', 'c', 'G', 'g', 'T', 't':
		default:
			return false
		}
	}
	return true
}

// encodeACGT packs a strict-ACGT kmer (length 1-32) into a uint64 code,
// two bits per base (A=00 C=01 G=10 T=11), most significant base first.
// It is the fast path behind the isoform-containment precompute described
// in the specificity engine (§4.C, §9): scanning byte slices for substring
// containment is replaced by uint64 set membership whenever every isoform
// k-mer and the query k-mer are plain ACGT, which covers the overwhelming
// majority of transcriptome sequence. Kmers containing N or another IUPAC
// symbol fall back to a farm-hash bucket lookup that compares the k-mer
// bytes exactly, so the result matches a naive substring scan.
func encodeACGT(kmer []byte) (code uint64, ok bool) {
	k := len(kmer)
	if k == 0 || k > 32 || !isCleanACGT(kmer) {
		return 0, false
	}
	for i, b := range kmer {
		var bits uint64
		switch b {
		case 'C', 'c':
			bits = 1
		case 'G', 'g':
			bits = 2
		case 'T', 't':
			bits = 3
		}
		code |= bits << uint(2*(k-1-i))
	}
	return code, true
}
