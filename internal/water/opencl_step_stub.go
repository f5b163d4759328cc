//go:build !opencl

package water

import "fmt"

// NewOpenCLStepper reports that the binary was built without OpenCL.
func NewOpenCLStepper(cfg Config) (Stepper, error) {
	return nil, fmt.Errorf("%w: OpenCL support is not enabled; rebuild with -tags opencl", ErrBackendUnavailable)
}
