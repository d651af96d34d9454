package systems

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spaghettifunk/atlas/engine/core"
)

type JobTask struct {
	ID   uuid.UUID
	Name string
	// Run performs the work. Data-level failures should be captured inside
	// the closure itself; a returned error means the job could not run.
	Run        func() error
	OnComplete func()
	OnFailure  func(error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
	metrics    *core.LoadMetrics
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int, metrics *core.LoadMetrics) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
		metrics:    metrics,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				started := time.Now()
				err := job.Run()
				if js.metrics != nil {
					js.metrics.RecordJob(time.Since(started), err != nil)
				}
				if err != nil {
					core.LogError("job %s (%s) failed: %s", job.ID, job.Name, err.Error())
					if job.OnFailure != nil {
						job.OnFailure(err)
					}
					continue
				}
				if job.OnComplete != nil {
					job.OnComplete()
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Waits for queued jobs to finish.
 */
func (js *JobSystem) Shutdown() error {
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

// AddWorkNonBlocking adds work to the pool and returns immediately, even
// when the queue is full.
func (js *JobSystem) AddWorkNonBlocking(jt JobTask) {
	go js.Submit(jt)
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks when
 * the queue is full.
 */
func (js *JobSystem) Submit(jt JobTask) {
	if jt.ID == uuid.Nil {
		jt.ID = uuid.New()
	}
	js.jobQueue <- jt
}
