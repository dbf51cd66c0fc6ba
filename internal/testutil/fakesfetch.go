// Package testutil holds helpers shared by tests that need an esl-sfetch
// binary.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeScript mimics the two esl-sfetch modes the tool uses. A few target
// names trigger special behavior:
//
//	empty    prints nothing
//	broken   exits 1 with a message on stderr
//	double   prints two records
//	garbage  prints text that is not FASTA
const fakeScript = `#!/bin/sh
echo "$*" >> %q
if [ "$1" = "--index" ]; then
  [ -f "$2" ] || { echo "no such file $2" >&2; exit 1; }
  touch "$2.ssi"
  exit 0
fi
if [ "$1" = "-c" ]; then
  [ -f "$3.ssi" ] || { echo "no index for $3" >&2; exit 1; }
  coords=$(echo "$2" | sed 's/\.\./-/')
  case "$4" in
    empty) exit 0 ;;
    broken) echo "Failed to find key $4" >&2; exit 1 ;;
    double) printf '>%%s/a\nAC\n>%%s/b\nGT\n' "$4" "$4"; exit 0 ;;
    garbage) echo "this is not fasta"; exit 0 ;;
  esac
  printf '>%%s/%%s fetched\nACGTACGTAC\n' "$4" "$coords"
  exit 0
fi
echo "unexpected args: $*" >&2
exit 2
`

// FakeSfetch writes an esl-sfetch stand-in into a temp dir and returns its
// path plus a func that returns the argument lines it was called with.
func FakeSfetch(t *testing.T) (string, func() []string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake esl-sfetch needs /bin/sh")
	}
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	bin := filepath.Join(dir, "esl-sfetch")
	if err := os.WriteFile(bin, []byte(fmt.Sprintf(fakeScript, logPath)), 0o755); err != nil {
		t.Fatalf("write fake esl-sfetch: %v", err)
	}
	calls := func() []string {
		b, err := os.ReadFile(logPath)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			t.Fatalf("read calls: %v", err)
		}
		return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	}
	return bin, calls
}
