package main

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPrintsOneStartupLine(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": "<p>dev</p>"})

	// Anything the config loader prints goes to os.Stdout too.
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = writer
	defer func() { os.Stdout = stdout }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	args := []string{
		"-config", filepath.Join(t.TempDir(), "devserve.yml"),
		"-listen", "127.0.0.1:0",
		"-root", root,
	}
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, args, writer)
	}()

	lines := bufio.NewReader(reader)
	line, err := lines.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(line, "Dev server: http://localhost:") || !strings.HasSuffix(line, " (no-cache)\n") {
		t.Fatalf("unexpected startup line %q", line)
	}

	url := strings.TrimSuffix(strings.TrimPrefix(line, "Dev server: "), " (no-cache)\n")
	client := &http.Client{}
	res, err := client.Get(url + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if string(body) != "<p>dev</p>" {
		t.Errorf("got body %q, expected <p>dev</p>", body)
	}
	checkNoCacheHeaders(t, url, res.Header)

	client.CloseIdleConnections()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("run returned %s", err)
	}

	os.Stdout = stdout
	writer.Close()
	rest, err := io.ReadAll(lines)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 {
		t.Errorf("expected a single line on stdout, also got %q", rest)
	}
}

func TestRunBindFailure(t *testing.T) {
	first := startApp(t, "127.0.0.1:0", nil)
	taken := first.listener.Addr().String()

	args := []string{
		"-config", filepath.Join(t.TempDir(), "devserve.yml"),
		"-listen", taken,
		"-root", t.TempDir(),
	}

	var out strings.Builder
	if err := run(context.Background(), args, &out); err == nil {
		t.Fatalf("expected binding %s twice to fail", taken)
	}
	if out.Len() != 0 {
		t.Errorf("startup line printed despite bind failure: %q", out.String())
	}
}
