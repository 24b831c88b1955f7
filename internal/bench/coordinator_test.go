package bench

import (
	"encoding/binary"
	"log/slog"
	"net"
	"net/url"
	"testing"

	"perfbenchd/internal/server"
	"perfbenchd/pkg/kernel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestApplyOverridesSetsKnownParam(t *testing.T) {
	spec := kernel.Get(kernel.Playground)
	params := kernel.DefaultParams(kernel.Playground)

	query := url.Values{"iterations": {"7"}}
	if err := applyOverrides(discardLogger(), spec, params, query); err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if got := binary.LittleEndian.Uint64(params); got != 7 {
		t.Errorf("iterations = %d, want 7", got)
	}
}

func TestApplyOverridesIgnoresUnknownParam(t *testing.T) {
	spec := kernel.Get(kernel.Playground)
	params := kernel.DefaultParams(kernel.Playground)

	query := url.Values{"bogus": {"1"}}
	if err := applyOverrides(discardLogger(), spec, params, query); err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
}

func TestApplyOverridesSkipsKernelKey(t *testing.T) {
	spec := kernel.Get(kernel.Playground)
	params := kernel.DefaultParams(kernel.Playground)

	query := url.Values{"kernel": {"playground"}}
	if err := applyOverrides(discardLogger(), spec, params, query); err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
}

func TestApplyOverridesPropagatesParseError(t *testing.T) {
	spec := kernel.Get(kernel.Playground)
	params := kernel.DefaultParams(kernel.Playground)

	query := url.Values{"iterations": {"not-a-number"}}
	if err := applyOverrides(discardLogger(), spec, params, query); err == nil {
		t.Fatal("expected error for malformed value")
	}
}

func TestReadImageReadsExactlyContentLength(t *testing.T) {
	client, srv := net.Pipe()
	payload := []byte("fake-elf-bytes-00")
	go func() {
		client.Write(payload)
	}()
	defer srv.Close()

	req := server.ParsedRequest{ContentLength: int64(len(payload))}
	got, err := readImage(srv, req)
	if err != nil {
		t.Fatalf("readImage: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("readImage = %q, want %q", got, payload)
	}
}

func TestReadImageRejectsMissingContentLength(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	req := server.ParsedRequest{ContentLength: 0}
	if _, err := readImage(srv, req); err == nil {
		t.Fatal("expected error for zero Content-Length")
	}
}

func TestReadImageRejectsOversizedDeclaration(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	req := server.ParsedRequest{ContentLength: maxImageBytes + 1}
	if _, err := readImage(srv, req); err == nil {
		t.Fatal("expected error for over-limit Content-Length")
	}
}
