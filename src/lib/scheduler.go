package lib

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var scheduler gocron.Scheduler

// Job is a named maintenance task run on a fixed interval.
type Job struct {
	Name  string
	Every time.Duration
	Run   func()
}

func NewScheduler(s gocron.Scheduler) {
	scheduler = s
}

func GetScheduler() (gocron.Scheduler, error) {
	if scheduler != nil {
		return scheduler, nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	scheduler = sched
	return sched, nil
}

// CreateCronJob runs handler every duration. A run still in progress when
// the next one is due causes that next run to be skipped.
func CreateCronJob(name string, handler any, duration time.Duration, args ...any) (*string, error) {
	sched, err := GetScheduler()
	if err != nil {
		return nil, err
	}
	j, err := sched.NewJob(
		gocron.DurationJob(duration),
		gocron.NewTask(handler, args...),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}
	id := j.ID().String()
	log.Printf("Job: %s %s\n", id, j.Name())
	return &id, nil
}

// ScheduleJobs registers every job and returns how many were accepted.
// A job with a non-positive interval is skipped.
func ScheduleJobs(jobs ...Job) int {
	scheduled := 0
	for _, job := range jobs {
		if job.Every <= 0 {
			log.Printf("[scheduler] Skipping %s: no interval\n", job.Name)
			continue
		}
		if _, err := CreateCronJob(job.Name, job.Run, job.Every); err != nil {
			log.Printf("[scheduler] Error scheduling %s: %s\n", job.Name, err.Error())
			continue
		}
		scheduled++
	}
	return scheduled
}
