package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Name() string
	Schedule() string
	Run()
}

// TaskExecutor schedules background jobs on a cron. A job that is still
// running when its schedule fires again is skipped, not run twice.
type TaskExecutor struct {
	cron    *cron.Cron
	jobs    []Job
	running mapset.Set[string]
	mu      sync.Mutex
}

func NewTaskExecutor(jobs []Job) *TaskExecutor {
	return &TaskExecutor{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewSet[string](),
	}
}

func (t *TaskExecutor) Start() {
	for _, job := range t.jobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.mu.Lock()
			if t.running.Contains(job.Name()) {
				t.mu.Unlock()
				logrus.Warnf("job %s is still running, skipping this tick", job.Name())
				return
			}
			t.running.Add(job.Name())
			t.mu.Unlock()

			defer func() {
				t.mu.Lock()
				defer t.mu.Unlock()
				t.running.Remove(job.Name())
			}()

			job.Run()
		})

		if err != nil {
			logrus.Errorf("failed to schedule job %s: %v", job.Name(), err)
			panic(err)
		}
	}

	t.cron.Start()
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all jobs")
	t.cron.Stop()
}
