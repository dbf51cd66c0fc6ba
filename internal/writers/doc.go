// Package writers serializes rewritten records.
//
// Design:
//   - Writers own all presentation knowledge (FASTA layout, line wrapping).
//   - The pipeline hands records over one at a time and never buffers them.
//   - Every record is flushed before Write returns so output keeps pace with
//     the external tool.
package writers
