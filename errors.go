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

import "fmt"

// The error taxonomy of §7. ConfigError aborts the run before it starts;
// an IOError while loading inputs or creating output directories aborts it
// too, while an IOError writing one item's files is folded into the Report
// as that item's failed line. ResolutionMiss, SequenceTooShort,
// OracleFailure and NoSpecificKmers are expected outcomes that are folded
// into the Report instead of propagating to the CLI edge.

// ConfigError signals a bad CLI combination or unreadable dataset path.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration error: %s", e.Reason) }

// VersionedIdRejected is the fatal configuration error raised when a
// selection token carries a dotted version suffix (e.g. "ENST00000.2"), per
// §4.B. It is its own type, not a *ConfigError.
type VersionedIdRejected struct {
	Token string
}

func (e *VersionedIdRejected) Error() string {
	return fmt.Sprintf("versioned identifier not accepted: %s", e.Token)
}

// ResolutionError is returned by the Sequence Resolver for one token; it is
// never fatal to the run, only to that token (§4.B, §7).
type ResolutionError struct {
	Given   string
	Message string
}

func (e *ResolutionError) Error() string { return e.Message }

// OracleFailure means the external k-mer-count query tool failed or its
// index was missing/malformed (§4.A, §7). It is fatal to the one worker
// that raised it, never to the run.
type OracleFailure struct {
	IndexPath string
	Cause     error
}

func (e *OracleFailure) Error() string {
	return fmt.Sprintf("count oracle failed for index %s: %v", e.IndexPath, e.Cause)
}

func (e *OracleFailure) Unwrap() error { return e.Cause }

// IOError means a file or directory could not be read or written (§7).
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string { return fmt.Sprintf("I/O error at %s: %v", e.Path, e.Cause) }

func (e *IOError) Unwrap() error { return e.Cause }
