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

	"github.com/shenwei356/breader"
)

// ErrIllegalGeneInfoLine means a gene-info record had too few columns.
var ErrIllegalGeneInfoLine = fmt.Errorf("gskmer: illegal gene-info line, need at least 5 columns")

// geneRow is one parsed gene-info TSV row, before it is folded into
// GeneInfo's map and secondary indexes.
type geneRow struct {
	ENSG        string
	Symbol      string
	Aliases     []string
	Transcripts []string
	Assembly    string
}

// NewGeneInfo loads a gene-info table: ensg, symbol, aliases (comma
// separated, "-" for none), transcripts (comma separated ENST ids),
// assembly. One gene per line, tab separated. The Resolver (§4.B) uses the
// returned GeneInfo to turn a symbol/alias/ENST token into a gene-id.
func NewGeneInfo(file string) (*GeneInfo, error) {
	parseFunc := func(line string) (interface{}, bool, error) {
		items := strings.Split(line, "\t")
		if len(items) < 5 {
			return nil, false, ErrIllegalGeneInfoLine
		}
		row := geneRow{
			ENSG:     strings.TrimSpace(items[0]),
			Symbol:   strings.TrimSpace(items[1]),
			Assembly: strings.TrimSpace(items[4]),
		}
		if row.ENSG == "" {
			return nil, false, nil
		}
		if aliases := strings.TrimSpace(items[2]); aliases != "" && aliases != "-" {
			row.Aliases = strings.Split(aliases, ",")
		}
		if transcripts := strings.TrimSpace(items[3]); transcripts != "" && transcripts != "-" {
			row.Transcripts = strings.Split(transcripts, ",")
		}
		return row, true, nil
	}

	reader, err := breader.NewBufferedReader(file, 4, 100, parseFunc)
	if err != nil {
		return nil, &IOError{Path: file, Cause: err}
	}

	gi := &GeneInfo{
		Genes:        make(map[string]*GeneRecord, 1024),
		bySymbol:     make(map[string]string, 1024),
		byAlias:      make(map[string]string, 1024),
		byTranscript: make(map[string]string, 16384),
	}

	var row geneRow
	var data interface{}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, &IOError{Path: file, Cause: chunk.Err}
		}
		for _, data = range chunk.Data {
			row = data.(geneRow)
			gi.addRow(row)
		}
	}

	return gi, nil
}

func (gi *GeneInfo) addRow(row geneRow) {
	rec, ok := gi.Genes[row.ENSG]
	if !ok {
		rec = &GeneRecord{
			Symbol:      row.Symbol,
			Aliases:     make(map[string]struct{}, len(row.Aliases)),
			Transcripts: make(map[string]struct{}, len(row.Transcripts)),
			Assembly:    row.Assembly,
		}
		gi.Genes[row.ENSG] = rec
	}

	if row.Symbol != "" {
		rec.Symbol = row.Symbol
		gi.bySymbol[strings.ToUpper(row.Symbol)] = row.ENSG
	}
	for _, alias := range row.Aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		rec.Aliases[alias] = struct{}{}
		gi.byAlias[strings.ToUpper(alias)] = row.ENSG
	}
	for _, enst := range row.Transcripts {
		enst = strings.TrimSpace(enst)
		if enst == "" {
			continue
		}
		rec.Transcripts[enst] = struct{}{}
		gi.byTranscript[strings.ToUpper(enst)] = row.ENSG
	}
}

// LookupSymbolOrAlias resolves a gene symbol or alias to a gene-id, trying
// the canonical symbol index first and falling back to the alias index, as
// required by the Resolver's symbol-precedence rule (§4.B).
func (gi *GeneInfo) LookupSymbolOrAlias(token string) (ensg string, ok bool) {
	key := strings.ToUpper(token)
	if ensg, ok = gi.bySymbol[key]; ok {
		return ensg, true
	}
	ensg, ok = gi.byAlias[key]
	return ensg, ok
}

// LookupTranscript resolves an ENST to its owning gene-id.
func (gi *GeneInfo) LookupTranscript(enst string) (ensg string, ok bool) {
	ensg, ok = gi.byTranscript[strings.ToUpper(enst)]
	return ensg, ok
}

// Transcripts returns the sorted transcript ids of a gene, or nil if the
// gene-id is unknown. Sorting keeps the gene-stringent contig enumeration
// order deterministic (§8 Testable Property 9).
func (gi *GeneInfo) Transcripts(ensg string) []string {
	rec, ok := gi.Genes[ensg]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(rec.Transcripts))
	for enst := range rec.Transcripts {
		out = append(out, enst)
	}
	sortStrings(out)
	return out
}
