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
	"path/filepath"
	"sync"
)

// Pool drives the Worker Pool contract of §4.D: run(items, ctx) -> Report.
// Each worker owns one Item end to end (Oracle x2, then Specificity Engine)
// and is fully isolated from the others; an OracleFailure in one worker is
// folded into the report, never propagated to its siblings.
type Pool struct {
	Oracle  *Oracle
	Context *Context
	Writer  *Writer

	GenomeIndex       string
	TranscriptomeIndex string

	Threads int
}

// NewPool returns a Pool with a sensible default thread count.
func NewPool(oracle *Oracle, ctx *Context, writer *Writer, genomeIndex, transcriptomeIndex string, threads int) *Pool {
	if threads < 1 {
		threads = 1
	}
	return &Pool{
		Oracle:             oracle,
		Context:            ctx,
		Writer:             writer,
		GenomeIndex:        genomeIndex,
		TranscriptomeIndex: transcriptomeIndex,
		Threads:            threads,
	}
}

// Run fans items out across Pool.Threads workers and returns the
// aggregated Report. It blocks until every item has been processed.
func (p *Pool) Run(items []Item) *Report {
	report := NewReport()

	results := make(chan reportLine, p.Threads)
	collectDone := make(chan int)
	go func() {
		for line := range results {
			report.Add(line.status, line.text)
		}
		collectDone <- 1
	}()

	var wg sync.WaitGroup
	tokens := make(chan int, p.Threads)

	for _, item := range items {
		tokens <- 1
		wg.Add(1)
		go func(it Item) {
			defer wg.Done()
			defer func() { <-tokens }()
			results <- p.processOne(it)
		}(item)
	}

	wg.Wait()
	close(results)
	<-collectDone

	return report
}

type reportLine struct {
	status Status
	text   string
}

// processOne runs one Item through Oracle x2 then the Specificity Engine,
// then hands retained data to the Output Writer. It never panics or
// returns an error to the caller: every failure mode becomes a report
// line, per §4.D/§7.
func (p *Pool) processOne(item Item) reportLine {
	seqPath := filepath.Join(p.Writer.TmpDir, item.FID+".fa")
	if err := writeSingleSequenceFASTA(seqPath, item.FID, item.Seq); err != nil {
		return reportLine{StatusFailed, fmt.Sprintf("%s: %v", reportName(item), &IOError{Path: seqPath, Cause: err})}
	}

	if p.Context.Debug {
		log.Debugf("start query on %s against %s", filepath.Base(seqPath), filepath.Base(p.GenomeIndex))
	}
	countGn, err := p.Oracle.Query(seqPath, p.GenomeIndex)
	if err != nil {
		return reportLine{StatusFailed, fmt.Sprintf("%s: %v", reportName(item), err)}
	}
	if p.Context.Debug {
		log.Debugf("start query on %s against %s", filepath.Base(seqPath), filepath.Base(p.TranscriptomeIndex))
	}
	countTx, err := p.Oracle.Query(seqPath, p.TranscriptomeIndex)
	if err != nil {
		return reportLine{StatusFailed, fmt.Sprintf("%s: %v", reportName(item), err)}
	}

	result := Process(item, countTx, countGn, p.Context)
	if result.Status == StatusDone {
		if err := p.Writer.Write(result); err != nil {
			return reportLine{StatusFailed, fmt.Sprintf("%s: %v", reportName(item), err)}
		}
	}
	return reportLine{result.Status, result.Message}
}
