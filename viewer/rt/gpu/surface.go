package gpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	ErrSurfaceOutOfMemory = errors.New("surface: out of memory")
	ErrDeviceLost         = errors.New("surface: device lost")
)

type SurfaceStatus int

const (
	SurfaceOK SurfaceStatus = iota
	// SurfaceRecoverable means the surface is lost or outdated and must be
	// reconfigured before the next frame.
	SurfaceRecoverable
	SurfaceTimeout
	SurfaceFatal
	SurfaceUnknown
)

func (s SurfaceStatus) String() string {
	switch s {
	case SurfaceOK:
		return "ok"
	case SurfaceRecoverable:
		return "recoverable"
	case SurfaceTimeout:
		return "timeout"
	case SurfaceFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// acquireStatusPrefix precedes the status name in errors returned by
// wgpu.Surface.GetCurrentTexture.
const acquireStatusPrefix = "surface status "

// AcquireStatusName extracts the native status name from an acquire error,
// e.g. "out-of-memory". It returns "" when the error carries no status.
func AcquireStatusName(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	i := strings.LastIndex(msg, acquireStatusPrefix)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(msg[i+len(acquireStatusPrefix):])
}

// StatusForAcquire maps a native acquire status name to the frame policy.
func StatusForAcquire(name string) SurfaceStatus {
	switch name {
	case wgpu.SurfaceGetCurrentTextureStatusSuccess.String():
		return SurfaceOK
	case wgpu.SurfaceGetCurrentTextureStatusLost.String(),
		wgpu.SurfaceGetCurrentTextureStatusOutdated.String():
		return SurfaceRecoverable
	case wgpu.SurfaceGetCurrentTextureStatusTimeout.String():
		return SurfaceTimeout
	case wgpu.SurfaceGetCurrentTextureStatusOutOfMemory.String(),
		wgpu.SurfaceGetCurrentTextureStatusDeviceLost.String():
		return SurfaceFatal
	default:
		return SurfaceUnknown
	}
}

// ClassifySurfaceError maps a GetCurrentTexture failure to a status. The
// binding reports acquire failures as plain errors ending in the native
// status name, so classification works on that suffix.
func ClassifySurfaceError(err error) SurfaceStatus {
	switch {
	case err == nil:
		return SurfaceOK
	case errors.Is(err, ErrSurfaceOutOfMemory), errors.Is(err, ErrDeviceLost):
		return SurfaceFatal
	}
	return StatusForAcquire(AcquireStatusName(err))
}

// SurfaceError wraps an acquire failure with its classification. Fatal errors
// also match ErrSurfaceOutOfMemory or ErrDeviceLost.
type SurfaceError struct {
	Status SurfaceStatus
	// Name is the native status name, empty when the binding reported none.
	Name string
	Err  error
}

func NewSurfaceError(err error) *SurfaceError {
	return &SurfaceError{Status: ClassifySurfaceError(err), Name: AcquireStatusName(err), Err: err}
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("acquire surface texture (%s): %v", e.Status, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

func (e *SurfaceError) Is(target error) bool {
	if e.Status != SurfaceFatal {
		return false
	}
	switch target {
	case ErrSurfaceOutOfMemory:
		return e.Name == wgpu.SurfaceGetCurrentTextureStatusOutOfMemory.String()
	case ErrDeviceLost:
		return e.Name == wgpu.SurfaceGetCurrentTextureStatusDeviceLost.String()
	}
	return false
}
