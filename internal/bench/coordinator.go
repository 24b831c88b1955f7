// Package bench implements the per-request state machine: resolve the
// requested kernel, materialise its parameters, load the caller's image,
// open performance counters, build call arguments, install the sandbox,
// then drive the measurement loop and report results on the connection.
package bench

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"perfbenchd/internal/errs"
	"perfbenchd/internal/logging"
	"perfbenchd/internal/server"
	"perfbenchd/pkg/cpuid"
	"perfbenchd/pkg/kernel"
	"perfbenchd/pkg/loader"
	"perfbenchd/pkg/measure"
	"perfbenchd/pkg/pmu"
	"perfbenchd/pkg/sandbox"
)

// SamplesPerPass is the iteration budget N handed to every measurement
// driver call.
const SamplesPerPass = 1000

// maxImageBytes bounds how much body the coordinator will read for a
// submitted ELF image; there is no wire-protocol provision for images
// larger than this.
const maxImageBytes = 64 << 20

// Coordinator runs the request state machine for one accepted connection.
// A Coordinator is stateless and safe to reuse; all per-request state lives
// in Handle's locals.
type Coordinator struct {
	Log *slog.Logger
}

// New builds a Coordinator logging to log.
func New(log *slog.Logger) *Coordinator {
	return &Coordinator{Log: log}
}

// Handle runs resolve → defaults → overrides → load → open counters →
// build args → sandbox → measure → report → release for one connection,
// which the caller owns for the duration of this call. It returns a
// *errs.BenchError for every fatal-to-request condition; the caller maps
// that to a process exit code.
func (c *Coordinator) Handle(conn net.Conn) error {
	req, err := server.ParseRequest(conn)
	if err != nil {
		return errs.Wrap(err, errs.ErrBadContentType, "parse request")
	}

	if req.Kernel == "" {
		return errs.ErrMissingKernelParam
	}
	if req.ContentType != "" && req.ContentType != "application/octet-stream" {
		return errs.ErrUnsupportedContentType.WithCause("validate content type", fmt.Errorf("content-type %q", req.ContentType))
	}
	id, ok := kernel.Lookup(req.Kernel)
	if !ok {
		return errs.ErrKernelNotFound.WithCause("resolve kernel", fmt.Errorf("kernel %q", req.Kernel))
	}
	spec := kernel.Get(id)
	klog := logging.WithKernel(c.Log, req.Kernel)

	params := kernel.DefaultParams(id)
	if err := applyOverrides(klog, spec, params, req.Params); err != nil {
		var berr *errs.BenchError
		if errors.As(err, &berr) {
			return berr
		}
		return errs.Wrap(err, errs.ErrUnknownParam, "apply parameter overrides")
	}

	image, err := readImage(conn, req)
	if err != nil {
		var berr *errs.BenchError
		if errors.As(err, &berr) {
			return berr
		}
		return errs.Wrap(err, errs.ErrBadImage, "read image body")
	}

	img, err := loader.Load(image, spec.Symbol)
	if err != nil {
		return wrapLoaderError(err)
	}
	defer img.Release()

	family, model := cpuid.Identify()
	counters := pmu.Open(family, model)
	defer pmu.CloseAll(counters)
	if !anyValid(counters) {
		return errs.ErrCounterUnavailable.WithCause("open counters", fmt.Errorf("uarch %#x/%#x", family, model))
	}

	args, mappings, err := spec.BuildArgs(params)
	if err != nil {
		return errs.ErrArgumentBuild.WithCause("build kernel arguments", err)
	}
	defer kernel.ReleaseArgs(mappings)

	if err := sandbox.Install(server.ConnFD); err != nil {
		return errs.ErrSandboxInstallFailed.WithCause("install sandbox", err)
	}

	if _, err := io.WriteString(conn, "HTTP/1.1 200 OK\r\n\r\n"); err != nil {
		return errs.Wrap(err, errs.ErrInternal, "write success status")
	}

	for _, counter := range counters {
		if !counter.Valid() {
			continue
		}
		log := logging.WithCounter(klog, counter.Name)
		counter.Enable()
		count := measure.Drive(img.Addr, args.Ptr, counter, SamplesPerPass)
		counter.Disable()

		if count == measure.Sentinel {
			log.Warn("counter produced no usable sample")
			continue
		}
		fmt.Fprintf(conn, "%s: %d\n", counter.Name, count)
	}

	return nil
}

// wrapLoaderError maps loader's sentinel errors to the matching BenchError
// so a client can distinguish "not an ELF file" from "symbol missing" from
// "nothing to map", instead of seeing one generic bad-image error.
func wrapLoaderError(err error) *errs.BenchError {
	switch {
	case errors.Is(err, loader.ErrNotELF):
		return errs.ErrImageNotELF.WithCause("load image", err)
	case errors.Is(err, loader.ErrNoLoadSegments):
		return errs.ErrImageNoLoadSegments.WithCause("load image", err)
	case errors.Is(err, loader.ErrSymbolNotFound):
		return errs.ErrImageSymbolMissing.WithCause("load image", err)
	default:
		return errs.Wrap(err, errs.ErrBadImage, "load image")
	}
}

func anyValid(counters []*pmu.Counter) bool {
	for _, c := range counters {
		if c.Valid() {
			return true
		}
	}
	return false
}

// applyOverrides hands the registry's row-supplied parser each query
// parameter the client sent besides "kernel" itself. Unknown names are
// logged and ignored, never fatal, per the materialisation step's contract.
func applyOverrides(log *slog.Logger, spec kernel.Spec, params []byte, query map[string][]string) error {
	for name, values := range query {
		if name == "kernel" {
			continue
		}
		if len(values) == 0 {
			continue
		}
		unknown, err := spec.ParseParam(params, name, values[0])
		if err != nil {
			return errs.ErrBadParamValue.WithCause("parse parameter", fmt.Errorf("%s=%s: %w", name, values[0], err))
		}
		if unknown {
			log.Warn("ignoring unknown parameter", "name", name, "value", values[0])
		}
	}
	return nil
}

// readImage reads exactly req.ContentLength bytes of image body off conn.
func readImage(conn net.Conn, req server.ParsedRequest) ([]byte, error) {
	if req.ContentLength <= 0 {
		return nil, fmt.Errorf("missing or zero Content-Length")
	}
	if req.ContentLength > maxImageBytes {
		return nil, fmt.Errorf("image of %d bytes exceeds %d byte limit", req.ContentLength, maxImageBytes)
	}
	buf := make([]byte, req.ContentLength)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, errs.ErrImageTruncated.WithCause("read image body", fmt.Errorf("wanted %d bytes: %w", req.ContentLength, err))
	}
	return buf, nil
}
