// Copyright © 2018-2021 Wei Shen <shenwei356@gmail.com>
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
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// QueryTool is the name of the external k-mer-count index query program,
// invoked as "<QueryTool> query -s <seq.fa> <index>" per §6. It is a var,
// not a const, so tests can point it at a stub binary.
var QueryTool = "kcindex"

// Oracle queries a persistent k-mer-count index for the abundance of every
// k-mer of a sequence (§4.A). It shells out to an external tool; the only
// contract callers may rely on is the resulting map.
type Oracle struct {
	// Runner executes the external query tool and returns its stdout. It
	// defaults to runQueryTool (os/exec) and is overridable in tests.
	Runner func(seqPath, indexPath string) ([]byte, error)
}

// NewOracle returns an Oracle backed by the real external query tool.
func NewOracle() *Oracle {
	return &Oracle{Runner: runQueryTool}
}

// Query returns, for every distinct k-mer of the sequence already written
// to seqPath, its count in the index at indexPath. The returned map has
// exactly one entry per distinct k-mer (§4.A guarantee); order is not
// meaningful, callers re-derive positions with KmerPosIterator.
func (o *Oracle) Query(seqPath, indexPath string) (KmerCountMap, error) {
	out, err := o.Runner(seqPath, indexPath)
	if err != nil {
		return nil, &OracleFailure{IndexPath: indexPath, Cause: err}
	}
	counts, err := parseOracleOutput(out)
	if err != nil {
		return nil, &OracleFailure{IndexPath: indexPath, Cause: err}
	}
	return counts, nil
}

// runQueryTool invokes the external tool and captures its stdout, following
// the exec.Cmd{Stdout: buf}; Run() pattern used throughout the pack for
// shelling out to alignment/assembly helpers.
func runQueryTool(seqPath, indexPath string) ([]byte, error) {
	cmd := exec.Command(QueryTool, "query", "-s", seqPath, indexPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "%s query -s %s %s: %s", QueryTool, seqPath, indexPath, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// parseOracleOutput parses "KMER\tCOUNT\n" / "KMER COUNT\n" lines, one per
// distinct k-mer, as specified in §6.
func parseOracleOutput(out []byte) (KmerCountMap, error) {
	counts := make(KmerCountMap, 256)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"KMER COUNT\", got %q", lineNo, line)
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: non-integer count %q", lineNo, fields[1])
		}
		counts[strings.ToUpper(fields[0])] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// writeSingleSequenceFASTA writes one FASTA record to path, the form the
// external query tool expects as its "-s seq.fa" argument (§6).
func writeSingleSequenceFASTA(path, id string, seq []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, ">%s\n", id)
	const width = 70
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		w.Write(seq[i:end])
		w.WriteByte('\n')
	}
	return w.Flush()
}
