package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "xlsq"}
	root.AddCommand(&cobra.Command{Use: "export", Short: "Export tables"})
	root.AddCommand(&cobra.Command{Use: "import", Short: "Import sheets"})
	return root
}

func TestBashCompletion(t *testing.T) {
	root := testRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)

	if err := root.GenBashCompletion(&buf); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	if !strings.Contains(output, "_xlsq") {
		t.Error("bash completion should contain _xlsq function")
	}
}

func TestZshCompletion(t *testing.T) {
	root := testRootCmd()
	var buf bytes.Buffer

	if err := root.GenZshCompletion(&buf); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "compdef") {
		t.Error("zsh completion should contain compdef")
	}
}

func TestFishCompletion(t *testing.T) {
	root := testRootCmd()
	var buf bytes.Buffer

	if err := root.GenFishCompletion(&buf, true); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "complete") {
		t.Error("fish completion should contain complete directives")
	}
}

func TestUnsupportedShell(t *testing.T) {
	cmd := NewCommand(testRootCmd())
	cmd.SetArgs([]string{"tcsh"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("unsupported shell should fail")
	}
}
