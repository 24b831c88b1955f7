// Package errs provides predefined sentinel errors for common failure cases.
package errs

// Request-parsing errors.
var (
	// ErrMissingKernelParam indicates the request named no kernel.
	ErrMissingKernelParam = &BenchError{
		Kind:   ErrUnknownParam,
		Detail: "kernel name not specified",
	}

	// ErrKernelNotFound indicates the named kernel has no registry entry.
	ErrKernelNotFound = &BenchError{
		Kind:   ErrUnknownKernel,
		Detail: "kernel not found",
	}

	// ErrBadParamValue indicates a parameter value failed to parse.
	ErrBadParamValue = &BenchError{
		Kind:   ErrUnknownParam,
		Detail: "malformed parameter value",
	}

	// ErrHeaderBlockTooLarge indicates the request header exceeded the accepted size.
	ErrHeaderBlockTooLarge = &BenchError{
		Kind:   ErrHeaderTooLarge,
		Detail: "request header too large",
	}

	// ErrUnsupportedContentType indicates the request's content type cannot be handled.
	ErrUnsupportedContentType = &BenchError{
		Kind:   ErrBadContentType,
		Detail: "unsupported content type",
	}
)

// Image-loading errors.
var (
	// ErrImageTruncated indicates the body ended before the declared length.
	ErrImageTruncated = &BenchError{
		Kind:   ErrBadImage,
		Detail: "image body truncated",
	}

	// ErrImageNotELF indicates the submitted bytes are not a parseable ELF file.
	ErrImageNotELF = &BenchError{
		Kind:   ErrBadImage,
		Detail: "image is not a valid ELF file",
	}

	// ErrImageSymbolMissing indicates the kernel's expected symbol is absent.
	ErrImageSymbolMissing = &BenchError{
		Kind:   ErrBadImage,
		Detail: "expected symbol not found in image",
	}

	// ErrImageNoLoadSegments indicates the image has nothing to map.
	ErrImageNoLoadSegments = &BenchError{
		Kind:   ErrBadImage,
		Detail: "image has no loadable segments",
	}
)

// Counter and sandbox errors.
var (
	// ErrCounterUnavailable indicates perf_event_open rejected every counter requested.
	ErrCounterUnavailable = &BenchError{
		Kind:   ErrCounterOpen,
		Detail: "no requested counter could be opened",
	}

	// ErrSandboxInstallFailed indicates a step of child confinement failed before
	// any measurement could begin.
	ErrSandboxInstallFailed = &BenchError{
		Kind:   ErrSandbox,
		Detail: "failed to install sandbox",
	}
)

// Internal errors.
var (
	// ErrArgumentBuild indicates a kernel's argument record could not be
	// built from its parameters: a parameter value out of range or a
	// mapping allocation failure.
	ErrArgumentBuild = &BenchError{
		Kind:   ErrInternal,
		Detail: "failed to build kernel arguments",
	}

	// ErrForkFailed indicates the accept loop could not spawn a request child.
	ErrForkFailed = &BenchError{
		Kind:   ErrInternal,
		Detail: "failed to fork request child",
	}
)
