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

func TestBuildIsoformSetCleanPath(t *testing.T) {
	s := buildIsoformSet([]byte("AAAAAGGGGG"), 5)
	if !s.contains([]byte("AAAAA")) {
		t.Error("expected AAAAA to be contained")
	}
	if !s.contains([]byte("AAAAG")) {
		t.Error("expected AAAAG to be contained")
	}
	if s.contains([]byte("TTTTT")) {
		t.Error("did not expect TTTTT to be contained")
	}
}

func TestBuildIsoformSetDirtyPath(t *testing.T) {
	s := buildIsoformSet([]byte("AAAANGGGG"), 5)
	if !s.contains([]byte("AAAAN")) {
		t.Error("expected AAAAN (carrying N) to be contained via the dirty fallback")
	}
	if s.contains([]byte("AAAAT")) {
		t.Error("did not expect AAAAT to be contained")
	}
}

// Gene-stringent multi-isoform seed scenario (§8): only "AAAAA" is shared.
func TestIsoformIndexContaining(t *testing.T) {
	tx := Transcriptome{
		"T1": []byte("AAAAAGGGGG"),
		"T2": []byte("AAAAATTTTT"),
	}
	ix := NewIsoformIndex(tx, 5)

	if n := ix.Containing("ENSG1", []string{"T1", "T2"}, []byte("AAAAA")); n != 2 {
		t.Errorf("expected AAAAA to be contained in both isoforms, got %d", n)
	}
	if n := ix.Containing("ENSG1", []string{"T1", "T2"}, []byte("GGGGG")); n != 1 {
		t.Errorf("expected GGGGG to be contained in one isoform, got %d", n)
	}
	if n := ix.Containing("ENSG1", []string{"T1", "T2"}, []byte("CCCCC")); n != 0 {
		t.Errorf("expected CCCCC to be contained in no isoform, got %d", n)
	}
}

func TestIsoformIndexCaches(t *testing.T) {
	tx := Transcriptome{"T1": []byte("AAAAAGGGGG")}
	ix := NewIsoformIndex(tx, 5)

	first := ix.Containing("ENSG1", []string{"T1"}, []byte("AAAAA"))
	delete(tx, "T1") // mutating the source after the first lookup must not change cached results
	second := ix.Containing("ENSG1", []string{"T1"}, []byte("AAAAA"))

	if first != 1 || second != 1 {
		t.Errorf("expected cached result 1 on both lookups, got %d and %d", first, second)
	}
}
