package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// dayLister is implemented by log readers that can list the days they hold.
type dayLister interface {
	Days(loc *time.Location) ([]time.Time, error)
}

// StatsService handles statistics use cases over the session log.
type StatsService struct {
	reader  ports.SessionLogReader
	archive ports.EventArchive
	now     func() time.Time
}

// Ensure StatsService implements ports.StatsProvider.
var _ ports.StatsProvider = (*StatsService)(nil)

// NewStatsService creates a stats service reading the daily log files.
func NewStatsService(reader ports.SessionLogReader) *StatsService {
	return &StatsService{reader: reader, now: time.Now}
}

// SetArchive makes range queries use the archive instead of reading one
// log file per day.
func (s *StatsService) SetArchive(archive ports.EventArchive) {
	s.archive = archive
}

// SetClock replaces the clock that decides what "today" is.
func (s *StatsService) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the totals of the current day.
func (s *StatsService) Today(ctx context.Context) (domain.DailyStats, error) {
	return s.ForDate(ctx, s.now())
}

// ForDate returns the totals of the given day, read from that day's log file.
func (s *StatsService) ForDate(ctx context.Context, day time.Time) (domain.DailyStats, error) {
	day = startOfDay(day)
	entries, err := s.reader.ReadDay(ctx, day)
	if err != nil {
		return domain.DailyStats{Date: day}, fmt.Errorf("failed to read session log: %w", err)
	}
	return domain.AggregateDay(day, entries), nil
}

// History returns one DailyStats per day for the last n days, oldest first,
// including days without records.
func (s *StatsService) History(ctx context.Context, days int) ([]domain.DailyStats, error) {
	if days <= 0 {
		days = 1
	}
	today := startOfDay(s.now())
	from := today.AddDate(0, 0, -(days - 1))

	entries, err := s.Entries(ctx, from, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]domain.LogEntry)
	for _, e := range entries {
		byDay[e.Day()] = append(byDay[e.Day()], e)
	}

	history := make([]domain.DailyStats, 0, days)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		history = append(history, domain.AggregateDay(d, byDay[d.Format(domain.DayLayout)]))
	}
	return history, nil
}

// Entries returns the records with from <= timestamp < to, oldest first.
// A zero from means since the first record. With an archive, days it holds
// rows for are read from it; other days, such as those logged before the
// archive existed, are read from the log files.
func (s *StatsService) Entries(ctx context.Context, from, to time.Time) ([]domain.LogEntry, error) {
	var archived map[string][]domain.LogEntry
	var firstArchived time.Time
	if s.archive != nil {
		entries, err := s.archive.Range(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to query archive: %w", err)
		}
		archived = make(map[string][]domain.LogEntry)
		for _, e := range entries {
			archived[e.Day()] = append(archived[e.Day()], e)
		}
		if len(entries) > 0 {
			firstArchived = entries[0].Timestamp
		}
	}

	if from.IsZero() {
		first, err := s.firstLogDay(to.Location())
		if err != nil && s.archive == nil {
			return nil, err
		}
		if first.IsZero() || (!firstArchived.IsZero() && firstArchived.Before(first)) {
			first = firstArchived
		}
		if first.IsZero() {
			return nil, nil
		}
		from = startOfDay(first)
	}

	var out []domain.LogEntry
	for d := startOfDay(from); d.Before(to); d = d.AddDate(0, 0, 1) {
		if rows, ok := archived[d.Format(domain.DayLayout)]; ok {
			out = append(out, rows...)
			continue
		}
		entries, err := s.reader.ReadDay(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("failed to read session log for %s: %w", d.Format(domain.DayLayout), err)
		}
		for _, e := range entries {
			if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// firstLogDay returns the day of the oldest log file, or the zero time when
// there are none.
func (s *StatsService) firstLogDay(loc *time.Location) (time.Time, error) {
	lister, ok := s.reader.(dayLister)
	if !ok {
		return time.Time{}, errors.New("an open-ended range needs the archive")
	}
	days, err := lister.Days(loc)
	if err != nil {
		return time.Time{}, err
	}
	if len(days) == 0 {
		return time.Time{}, nil
	}
	return days[0], nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
