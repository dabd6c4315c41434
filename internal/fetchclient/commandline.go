package fetchclient

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"time"

	"github.com/5u5urrus/retriever/internal/headers"
)

// CommandLine shells out to curl, grounded on the reference system's
// CurlClient (subprocess.run with -w "\n%{http_code}" to tack the status
// code onto stdout).
type CommandLine struct {
	timeout time.Duration
}

func NewCommandLine(timeout time.Duration) *CommandLine {
	return &CommandLine{timeout: timeout}
}

func (c *CommandLine) Name() string { return "CommandLine" }

func (c *CommandLine) Fetch(ctx context.Context, rawURL string, hdrs headers.HttpHeaders) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"-L", "--insecure", "-m", strconv.Itoa(int(c.timeout.Seconds())), "-w", "\n%{http_code}"}
	for k, v := range hdrs {
		args = append(args, "-H", k+": "+v)
	}
	args = append(args, rawURL)

	cmd := exec.CommandContext(ctx, "curl", args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, 0, err
	}

	out := stdout.Bytes()
	idx := bytes.LastIndexByte(out, '\n')
	if idx < 0 {
		return nil, 0, &ParseStatusError{Raw: string(out)}
	}
	statusLine := bytes.TrimSpace(out[idx+1:])
	status, err := strconv.Atoi(string(statusLine))
	if err != nil {
		return nil, 0, err
	}
	return out[:idx], status, nil
}

// ParseStatusError reports a curl invocation whose trailing status line
// couldn't be located in stdout.
type ParseStatusError struct {
	Raw string
}

func (e *ParseStatusError) Error() string {
	return "command_line: could not locate trailing status code in output"
}
