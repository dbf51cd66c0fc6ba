package writers

import (
	"bufio"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// DefaultLineWidth is the sequence wrap width of emitted FASTA.
const DefaultLineWidth = 80

// Record is a rewritten FASTA entry ready for output.
type Record struct {
	Name        string
	Description string
	Seq         []byte
}

// FASTAWriter writes records as FASTA and flushes after each one.
type FASTAWriter struct {
	bw *bufio.Writer
	fw *biofasta.Writer
	n  int
}

// NewFASTAWriter wraps w. lineWidth <= 0 selects DefaultLineWidth.
func NewFASTAWriter(w io.Writer, lineWidth int) *FASTAWriter {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	bw := bufio.NewWriter(w)
	return &FASTAWriter{bw: bw, fw: biofasta.NewWriter(bw, lineWidth)}
}

// Write emits rec and flushes it to the underlying writer.
func (w *FASTAWriter) Write(rec Record) error {
	s := linear.NewSeq(rec.Name, alphabet.BytesToLetters(rec.Seq), alphabet.DNAredundant)
	s.Desc = rec.Description
	if _, err := w.fw.Write(s); err != nil {
		return fmt.Errorf("write record %s: %w", rec.Name, err)
	}
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flush record %s: %w", rec.Name, err)
	}
	w.n++
	return nil
}

// Count returns the number of records written.
func (w *FASTAWriter) Count() int { return w.n }
