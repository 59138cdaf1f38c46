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
)

// Resolver translates user query tokens into resolved Items (§4.B). It
// holds only read-only references, safe to share across worker goroutines.
type Resolver struct {
	Transcriptome Transcriptome
	GeneInfo      *GeneInfo
	K             int
}

// NewResolver returns a Resolver over the given read-only datasets.
func NewResolver(transcriptome Transcriptome, geneInfo *GeneInfo, k int) *Resolver {
	return &Resolver{Transcriptome: transcriptome, GeneInfo: geneInfo, K: k}
}

// Resolve implements the `selection` mode of §4.B: ENST tokens become one
// transcript Item, ENSG/symbol/alias tokens become one gene Item per
// isoform of that gene. A versioned token (a dotted suffix, e.g.
// "ENST0001.2") is always rejected regardless of prefix.
//
// The returned error, when non-nil, is either *VersionedIdRejected (fatal,
// aborts the run per §7) or *ResolutionError (recorded in the report, does
// not abort). Callers must distinguish the two with errors.As.
func (r *Resolver) Resolve(token string) ([]Item, error) {
	if hasVersionSuffix(token) {
		return nil, &VersionedIdRejected{Token: token}
	}

	switch {
	case strings.HasPrefix(token, "ENST"):
		return r.resolveTranscript(token)
	case strings.HasPrefix(token, "ENSG"):
		return r.resolveGene(token, token)
	default:
		ensg, ok := r.GeneInfo.LookupSymbolOrAlias(token)
		if !ok {
			return nil, &ResolutionError{
				Given:   token,
				Message: fmt.Sprintf("%s: gene symbol/alias not found", token),
			}
		}
		return r.resolveGene(token, ensg)
	}
}

// resolveTranscript handles a token already known to start with "ENST".
func (r *Resolver) resolveTranscript(token string) ([]Item, error) {
	seq, ok := r.Transcriptome.Sequence(token)
	if !ok {
		return nil, &ResolutionError{
			Given:   token,
			Message: fmt.Sprintf("%s: transcript not found in transcriptome (%s)", token, token),
		}
	}
	if len(seq) < r.K {
		return nil, &ResolutionError{
			Given:   token,
			Message: fmt.Sprintf("%s: sequence too short (%d < %d)", token, len(seq), r.K),
		}
	}

	ensg, _ := r.GeneInfo.LookupTranscript(token)
	return []Item{{
		Given:  token,
		Kind:   KindTranscript,
		ENSG:   ensg,
		ENST:   token,
		Symbol: symbolOf(r.GeneInfo, ensg),
		Seq:    seq,
		FID:    SanitizeFID(token),
	}}, nil
}

// resolveGene produces one Item per transcript of ensg, per §4.B's
// "one Item per transcript of that gene" rule. given is the raw token the
// user typed (an ENSG id, a symbol, or an alias); ensg is the resolved
// gene-id, which may equal given.
func (r *Resolver) resolveGene(given, ensg string) ([]Item, error) {
	transcripts := r.GeneInfo.Transcripts(ensg)
	if len(transcripts) == 0 {
		return nil, &ResolutionError{
			Given:   given,
			Message: fmt.Sprintf("%s: gene not found in gene-info (%s)", given, ensg),
		}
	}

	symbol := symbolOf(r.GeneInfo, ensg)
	var items []Item
	for _, enst := range transcripts {
		seq, ok := r.Transcriptome.Sequence(enst)
		if !ok {
			items = append(items, Item{}) // placeholder skipped below
			continue
		}
		if len(seq) < r.K {
			continue
		}
		items = append(items, Item{
			Given:  given,
			Kind:   KindGene,
			ENSG:   ensg,
			ENST:   enst,
			Symbol: symbol,
			Seq:    seq,
			FID:    SanitizeFID(given + "-" + enst),
		})
	}

	// Drop placeholders left by missing-transcript-in-transcriptome isoforms
	// without failing the whole gene: the remaining isoforms still resolve.
	filtered := items[:0]
	for _, it := range items {
		if it.ENST != "" {
			filtered = append(filtered, it)
		}
	}
	if len(filtered) == 0 {
		return nil, &ResolutionError{
			Given:   given,
			Message: fmt.Sprintf("%s: no isoform of %s resolved to a usable sequence", given, ensg),
		}
	}
	return filtered, nil
}

func symbolOf(gi *GeneInfo, ensg string) string {
	if rec, ok := gi.Genes[ensg]; ok {
		return rec.Symbol
	}
	return ""
}

// hasVersionSuffix reports whether token carries a dotted version suffix
// such as "ENST00000456328.2" (§4.B).
func hasVersionSuffix(token string) bool {
	i := strings.LastIndexByte(token, '.')
	if i < 0 || i == len(token)-1 {
		return false
	}
	suffix := token[i+1:]
	for _, b := range suffix {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

// SanitizeFID turns a raw token into the filesystem-safe f_id used for
// output filename stems and temporary FASTA names (§3).
func SanitizeFID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
