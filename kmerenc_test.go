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

import "testing"

func TestEncodeACGT(t *testing.T) {
	code, ok := encodeACGT([]byte("ACGT"))
	if !ok {
		t.Fatal("expected ok")
	}
	if code != 0x1B { // A=00 C=01 G=10 T=11 -> 00011011
		t.Errorf("expected 0x1B, got %#x", code)
	}

	if _, ok := encodeACGT([]byte("ACGN")); ok {
		t.Error("kmer with N should not fast-encode")
	}

	if _, ok := encodeACGT(nil); ok {
		t.Error("empty kmer should not fast-encode")
	}

	long := make([]byte, 33)
	for i := range long {
		long[i] = 'A'
	}
	if _, ok := encodeACGT(long); ok {
		t.Error("kmer over 32bp should not fast-encode")
	}
}

func TestEncodeACGTCaseInsensitive(t *testing.T) {
	upper, _ := encodeACGT([]byte("ACGT"))
	lower, _ := encodeACGT([]byte("acgt"))
	if upper != lower {
		t.Errorf("expected case-insensitive encoding, got %#x vs %#x", upper, lower)
	}
}
