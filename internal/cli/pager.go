package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

const defaultPager = "less -FRSX"

// pagerCommand picks KBREADER_PAGER, then PAGER, then less. "cat" or "-"
// turns paging off.
func pagerCommand() string {
	pager := os.Getenv("KBREADER_PAGER")
	if pager == "" {
		pager = os.Getenv("PAGER")
	}
	switch strings.TrimSpace(pager) {
	case "":
		return defaultPager
	case "cat", "-":
		return ""
	}
	return pager
}

// withPager pipes write's output through $PAGER when out is a terminal.
func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	pager := pagerCommand()
	if pager == "" {
		return write(out)
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
