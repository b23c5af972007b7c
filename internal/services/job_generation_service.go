package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/schedule"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// JobGenerationService materializes the day's run sheet from client
// schedules. Generation is a destructive replace: uncompleted jobs on
// the target date are dropped and rebuilt, completed ones survive.
type JobGenerationService struct {
	clientRepo repositories.ClientRepository
	jobRepo    repositories.JobRepository
}

func NewJobGenerationService(
	clientRepo repositories.ClientRepository,
	jobRepo repositories.JobRepository,
) *JobGenerationService {
	return &JobGenerationService{clientRepo: clientRepo, jobRepo: jobRepo}
}

// RunDailyGeneration is the cron entrypoint. Each active client is
// generated against its own local "today", so a run shortly after
// midnight AEST covers the whole client base.
func (s *JobGenerationService) RunDailyGeneration(ctx context.Context) error {
	clients, err := s.clientRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	dates := make(map[string]time.Time)
	for _, c := range clients {
		d := localDate(now, c.TimeZone)
		dates[d.Format("2006-01-02")] = d
	}

	for _, date := range dates {
		deleted, created, err := s.GenerateForDate(ctx, date)
		if err != nil {
			utils.Logger.WithError(err).Errorf("Daily generation failed for %s", date.Format("2006-01-02"))
			return err
		}
		utils.Logger.Infof("Generated jobs for %s: %d created, %d replaced", date.Format("2006-01-02"), created, deleted)
	}
	return nil
}

// GenerateForDate rebuilds the run sheet for one calendar date. Returns
// (deleted, created, error).
func (s *JobGenerationService) GenerateForDate(ctx context.Context, date time.Time) (int64, int, error) {
	deleted, err := s.jobRepo.DeleteUncompletedForDate(ctx, date)
	if err != nil {
		return 0, 0, err
	}

	clients, err := s.clientRepo.ListActive(ctx)
	if err != nil {
		return deleted, 0, err
	}

	created := 0
	for _, c := range clients {
		for _, jobType := range JobsDueOn(c, date) {
			job := buildJob(c, jobType, date)
			if err := s.jobRepo.CreateIfNotExists(ctx, job); err != nil {
				return deleted, created, err
			}
			created++
		}
	}
	return deleted, created, nil
}

// JobsDueOn returns which job types (if any) the client needs on the
// given date. Pure so the selection rules are directly testable.
//
// Rules:
//   - nothing when the date is an AU public holiday and the client
//     skips holidays
//   - put_out on the client's put-bins-out day; when that field is
//     blank, the weekday before the first collection day
//   - bring_in on the collection day
//   - either type only when a bin actually goes out that cycle
//
// Fortnightly parity is evaluated against the collection date a job
// serves. A Sunday put-out ahead of a Monday collection falls in the
// previous parity week, so checking the put-out date itself would skip
// due weeks and emit off weeks.
func JobsDueOn(c *models.Client, date time.Time) []models.JobType {
	if c.SkipHolidays && utils.IsAUPublicHoliday(date) {
		return nil
	}

	weekday := date.Weekday()
	var due []models.JobType

	if putOutDue(c, weekday) && schedule.BinsSummary(c, collectionDateFor(c, date)) != "" {
		due = append(due, models.JobPutOut)
	}
	if schedule.MatchesDay(c.CollectionDay, weekday) && schedule.BinsSummary(c, date) != "" {
		due = append(due, models.JobBringIn)
	}
	return due
}

// collectionDateFor resolves the collection date a put-out generated on
// date is ahead of: the next occurrence of the collection day, counting
// date itself.
func collectionDateFor(c *models.Client, date time.Time) time.Time {
	if next, ok := schedule.NextOccurrence(c.CollectionDay, date); ok {
		return next
	}
	return date
}

func putOutDue(c *models.Client, weekday time.Weekday) bool {
	if c.PutBinsOutDay != "" {
		return schedule.MatchesDay(c.PutBinsOutDay, weekday)
	}
	collection, ok := schedule.FirstDay(c.CollectionDay)
	if !ok {
		return false
	}
	return schedule.DayBefore(collection) == weekday
}

func buildJob(c *models.Client, jobType models.JobType, date time.Time) *models.Job {
	// The summary snapshot follows the same collection-week rule as the
	// due-ness check above.
	summaryAt := date
	if jobType == models.JobPutOut {
		summaryAt = collectionDateFor(c, date)
	}
	return &models.Job{
		ID:        uuid.New(),
		AccountID: c.AccountID,
		ClientID:  c.ID,

		Address:   c.Address,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,

		JobType:     jobType,
		BinsSummary: schedule.BinsSummary(c, summaryAt),
		DayLabel:    date.Weekday().String(),
		ServiceDate: date,

		AssignedStaffID: c.AssignedStaffID,
	}
}

// localDate returns midnight of t's calendar day in the named zone.
func localDate(t time.Time, tz string) time.Time {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
