package water

import (
	"fmt"
	"sync"
)

// stepJob is the work shared by all workers for one step.
type stepJob struct {
	src, dst *FieldBuffer
	params   stepParams
	fp       forceFootprint
}

// cpuStepper runs the step on a fixed pool of goroutines. Rows are dealt out
// round robin and the caller blocks until every row is written.
type cpuStepper struct {
	cfg         Config
	workerCount int

	workerMu       sync.Mutex
	workerCond     *sync.Cond
	workerStep     int
	workerPending  int
	workersStarted bool
	closed         bool

	job        stepJob
	workerRows [][]int
	rowsHeight int
}

// NewCPUStepper returns the default goroutine-backed stepper.
func NewCPUStepper(cfg Config) (Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	s := &cpuStepper{cfg: cfg, workerCount: workers}
	s.workerCond = sync.NewCond(&s.workerMu)
	return s, nil
}

func (s *cpuStepper) Name() string {
	return fmt.Sprintf("cpu x%d", s.workerCount)
}

// Step executes one simulation tick, synchronizing the worker goroutines.
func (s *cpuStepper) Step(src, dst *FieldBuffer, sig ForcingSignal) error {
	if err := checkStepBuffers(src, dst); err != nil {
		return err
	}
	job := stepJob{
		src:    src,
		dst:    dst,
		params: newStepParams(s.cfg),
		fp:     newForceFootprint(sig, s.cfg, src.width, src.height),
	}

	s.workerMu.Lock()
	defer s.workerMu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: cpu stepper closed", ErrNotStarted)
	}
	if s.workerCount == 1 {
		for y := 0; y < src.height; y++ {
			stepRow(src, dst, y, job.params, &job.fp)
		}
		return nil
	}
	s.startWorkers()
	if s.rowsHeight != src.height {
		s.workerRows = assignRows(s.workerCount, src.height)
		s.rowsHeight = src.height
	}
	s.job = job
	s.workerPending = s.workerCount
	s.workerStep++
	s.workerCond.Broadcast()
	for s.workerPending > 0 {
		s.workerCond.Wait()
	}
	s.job = stepJob{}
	return nil
}

// Close stops the worker goroutines. The stepper cannot be reused.
func (s *cpuStepper) Close() {
	s.workerMu.Lock()
	s.closed = true
	s.workerCond.Broadcast()
	s.workerMu.Unlock()
}

// startWorkers launches the goroutines once. Callers hold workerMu.
func (s *cpuStepper) startWorkers() {
	if s.workersStarted {
		return
	}
	s.workersStarted = true
	for i := 0; i < s.workerCount; i++ {
		go s.workerLoop(i)
	}
}

// workerLoop waits for each new step and processes the rows assigned to
// the worker.
func (s *cpuStepper) workerLoop(index int) {
	lastStep := 0
	s.workerMu.Lock()
	for {
		for s.workerStep == lastStep && !s.closed {
			s.workerCond.Wait()
		}
		if s.closed {
			s.workerMu.Unlock()
			return
		}
		lastStep = s.workerStep
		job := s.job
		var rows []int
		if index < len(s.workerRows) {
			rows = s.workerRows[index]
		}
		s.workerMu.Unlock()

		for _, y := range rows {
			stepRow(job.src, job.dst, y, job.params, &job.fp)
		}

		s.workerMu.Lock()
		s.workerPending--
		if s.workerPending == 0 {
			s.workerCond.Broadcast()
		}
	}
}

// assignRows distributes grid rows across workers in round robin fashion.
func assignRows(workerCount, height int) [][]int {
	if workerCount < 1 {
		workerCount = 1
	}
	rows := make([][]int, workerCount)
	for y := 0; y < height; y++ {
		idx := y % workerCount
		rows[idx] = append(rows[idx], y)
	}
	return rows
}
