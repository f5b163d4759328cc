//go:build opencl

package water

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

const rippleKernelSource = `__kernel void ripple_step(
    const int width,
    const int height,
    const float stiffness,
    const float viscosity,
    const float limit,
    const float mouse_x,
    const float mouse_y,
    const float radius,
    const float strength,
    __global const float2* src,
    __global float2* dst)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    int xl = max(x - 1, 0);
    int xr = min(x + 1, width - 1);
    int yu = max(y - 1, 0);
    int yd = min(y + 1, height - 1);

    float2 cell = src[idx];
    float avg = (src[yu * width + x].x + src[yd * width + x].x +
                 src[y * width + xl].x + src[y * width + xr].x) * 0.25f;
    float vel = (cell.y + (avg - cell.x) * stiffness) * viscosity;
    float h = cell.x + vel;

    if (strength != 0.0f) {
        float u = ((float)x + 0.5f) / (float)width;
        float v = ((float)y + 0.5f) / (float)height;
        float dx = (u - mouse_x) * ((float)width / (float)height);
        float dy = v - mouse_y;
        float dist = sqrt(dx * dx + dy * dy);
        if (dist < radius) {
            h -= strength * (radius - dist) / radius;
        }
    }
    if (limit > 0.0f) {
        h = clamp(h, -limit, limit);
        vel = clamp(vel, -limit, limit);
    }
    dst[idx] = (float2)(h, vel);
}`

// Kernel argument slots that change between steps.
const (
	argWidth    = 0
	argHeight   = 1
	argMouseX   = 5
	argMouseY   = 6
	argStrength = 8
	argSrc      = 9
	argDst      = 10
)

// openCLStepper runs the step as an OpenCL kernel over two device buffers
// that swap roles every step, mirroring the host FieldPair.
type openCLStepper struct {
	cfg        Config
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	srcBuf     *cl.MemObject
	dstBuf     *cl.MemObject
	width      int
	height     int
	deviceName string

	// lastDst is the host buffer that mirrors srcBuf after a step; when the
	// next src is that buffer the upload is skipped.
	lastDst *FieldBuffer
}

// NewOpenCLStepper compiles the ripple kernel on the first GPU, falling back
// to a CPU OpenCL device.
func NewOpenCLStepper(cfg Config) (Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, msg, err)
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("%w: no OpenCL platforms available", ErrBackendUnavailable)
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, fmt.Errorf("%w: no suitable OpenCL devices found", ErrBackendUnavailable)
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	s := &openCLStepper{cfg: cfg, context: context, deviceName: device.Name()}
	if s.queue, err = context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = context.CreateProgramWithSource([]string{rippleKernelSource}); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.kernel, err = s.program.CreateKernel("ripple_step"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	if err := s.kernel.SetArgs(
		int32(0),
		int32(0),
		cfg.Stiffness,
		cfg.Viscosity,
		cfg.HeightLimit,
		float32(0),
		float32(0),
		float32(cfg.MouseRadius),
		float32(0),
	); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (s *openCLStepper) Name() string {
	return "opencl " + s.deviceName
}

// ensureBuffers (re)allocates the device pair when the grid size changes.
func (s *openCLStepper) ensureBuffers(width, height int) error {
	if s.srcBuf != nil && s.width == width && s.height == height {
		return nil
	}
	s.releaseBuffers()
	byteSize := 2 * width * height * int(unsafe.Sizeof(float32(0)))
	var err error
	if s.srcBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		return fmt.Errorf("%w: allocating source buffer: %v", ErrUnsupportedFormat, err)
	}
	if s.dstBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		s.releaseBuffers()
		return fmt.Errorf("%w: allocating destination buffer: %v", ErrUnsupportedFormat, err)
	}
	if err := s.kernel.SetArgInt32(argWidth, int32(width)); err != nil {
		return fmt.Errorf("setting width: %w", err)
	}
	if err := s.kernel.SetArgInt32(argHeight, int32(height)); err != nil {
		return fmt.Errorf("setting height: %w", err)
	}
	s.width, s.height = width, height
	s.lastDst = nil
	return nil
}

// Step uploads src when the device copy is stale, runs the kernel and reads
// the result back into dst.
func (s *openCLStepper) Step(src, dst *FieldBuffer, sig ForcingSignal) error {
	if err := checkStepBuffers(src, dst); err != nil {
		return err
	}
	if err := s.ensureBuffers(src.width, src.height); err != nil {
		return err
	}
	if s.lastDst != src {
		if _, err := s.queue.EnqueueWriteBufferFloat32(s.srcBuf, false, 0, src.cells, nil); err != nil {
			return fmt.Errorf("writing source buffer: %w", err)
		}
	}
	strength := s.cfg.strength(sig.Class)
	if err := s.kernel.SetArgFloat32(argMouseX, float32(sig.X)); err != nil {
		return fmt.Errorf("setting mouse x: %w", err)
	}
	if err := s.kernel.SetArgFloat32(argMouseY, float32(sig.Y)); err != nil {
		return fmt.Errorf("setting mouse y: %w", err)
	}
	if err := s.kernel.SetArgFloat32(argStrength, strength); err != nil {
		return fmt.Errorf("setting strength: %w", err)
	}
	if err := s.kernel.SetArgBuffer(argSrc, s.srcBuf); err != nil {
		return fmt.Errorf("binding source buffer: %w", err)
	}
	if err := s.kernel.SetArgBuffer(argDst, s.dstBuf); err != nil {
		return fmt.Errorf("binding destination buffer: %w", err)
	}
	global := []int{s.width * s.height}
	if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.dstBuf, true, 0, dst.cells, nil); err != nil {
		return fmt.Errorf("reading destination buffer: %w", err)
	}
	s.srcBuf, s.dstBuf = s.dstBuf, s.srcBuf
	s.lastDst = dst
	return nil
}

func (s *openCLStepper) releaseBuffers() {
	if s.dstBuf != nil {
		s.dstBuf.Release()
		s.dstBuf = nil
	}
	if s.srcBuf != nil {
		s.srcBuf.Release()
		s.srcBuf = nil
	}
	s.width, s.height = 0, 0
	s.lastDst = nil
}

func (s *openCLStepper) Close() {
	s.releaseBuffers()
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}
