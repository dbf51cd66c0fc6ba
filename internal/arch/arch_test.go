package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	// Domain packages never reach up into orchestration or the CLI, and the
	// pipeline only sees the store through its Fetcher interface.
	upper := []string{
		"nhmmerx/internal/app", "nhmmerx/internal/cli", "nhmmerx/internal/config",
		"nhmmerx/cmd/",
	}
	bans := map[string][]string{
		"nhmmerx/internal/tblout":      append([]string{"nhmmerx/internal/pipeline", "nhmmerx/internal/sfetch", "nhmmerx/internal/writers"}, upper...),
		"nhmmerx/internal/hits":        append([]string{"nhmmerx/internal/pipeline", "nhmmerx/internal/sfetch"}, upper...),
		"nhmmerx/internal/header":      append([]string{"nhmmerx/internal/pipeline", "nhmmerx/internal/tblout"}, upper...),
		"nhmmerx/internal/fasta":       append([]string{"nhmmerx/internal/pipeline", "nhmmerx/internal/writers"}, upper...),
		"nhmmerx/internal/writers":     append([]string{"nhmmerx/internal/pipeline", "nhmmerx/internal/sfetch", "nhmmerx/internal/tblout"}, upper...),
		"nhmmerx/internal/sfetch":      append([]string{"nhmmerx/internal/pipeline", "nhmmerx/internal/writers"}, upper...),
		"nhmmerx/internal/materialize": append([]string{"nhmmerx/internal/pipeline", "nhmmerx/internal/sfetch"}, upper...),
		"nhmmerx/internal/pipeline":    append([]string{"nhmmerx/internal/sfetch", "nhmmerx/internal/materialize"}, upper...),
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "nhmmerx/") {
			continue
		}
		imp := p.ImportPath
		forbidden, ok := bans[imp]
		if !ok {
			continue
		}
		for _, dep := range p.Imports {
			for _, ban := range forbidden {
				if strings.HasPrefix(dep, ban) {
					violations = append(violations, imp+" → "+dep)
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
