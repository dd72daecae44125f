package agent

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	QUERY_TAG = "%s|SCHEDULED_QUERY"
)

type Scheduler struct {
	gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		Scheduler: scheduler,
	}, nil
}

// AddDelayedQueryJob schedules a one-time follow-up query for the session
func (s *Scheduler) AddDelayedQueryJob(sessionID string, delay time.Duration, jobFunc interface{}) error {
	_, err := s.NewJob(gocron.OneTimeJob(
		gocron.OneTimeJobStartDateTime(time.Now().Add(delay)),
	),
		gocron.NewTask(jobFunc),
		gocron.WithTags(MakeQueryTag(sessionID)),
	)
	return err
}

// AddDailyQueryJob schedules a recurring query at the given time of day
func (s *Scheduler) AddDailyQueryJob(sessionID string, at time.Time, jobFunc interface{}) error {
	_, err := s.NewJob(gocron.DailyJob(
		1,
		gocron.NewAtTimes(
			gocron.NewAtTime(
				uint(at.Hour()),
				uint(at.Minute()),
				uint(at.Second()),
			),
		),
	),
		gocron.NewTask(jobFunc),
		gocron.WithTags(MakeQueryTag(sessionID)),
	)
	return err
}

func (s *Scheduler) CancelQueryJobs(sessionID string) {
	s.RemoveByTags(MakeQueryTag(sessionID))
}

func (s *Scheduler) HasQueryJob(sessionID string) bool {
	tag := MakeQueryTag(sessionID)
	for _, job := range s.Jobs() {
		if slices.Contains(job.Tags(), tag) {
			return true
		}
	}
	return false
}

func MakeQueryTag(sessionID string) string {
	return fmt.Sprintf(QUERY_TAG, sessionID)
}
