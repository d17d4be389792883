package service

import (
	"testing"
	"time"

	"github.com/khwelo/classward/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	svc := NewScheduleService()

	start := date(2025, time.March, 20)
	end := date(2025, time.March, 27)

	tests := []struct {
		name         string
		today        time.Time
		hasCompleted bool
		want         TemporalBucket
	}{
		{name: "before start", today: date(2025, time.March, 10), want: BucketUpcoming},
		{name: "inside window", today: date(2025, time.March, 22), want: BucketInProgress},
		{name: "first day of window", today: start, want: BucketInProgress},
		{name: "last day of window", today: end, want: BucketInProgress},
		{name: "day after end", today: date(2025, time.March, 28), want: BucketMissed},
		{name: "well past end", today: date(2025, time.March, 30), want: BucketMissed},
		{name: "completed wins over missed", today: date(2025, time.March, 30), hasCompleted: true, want: BucketCompleted},
		{name: "completed wins over upcoming", today: date(2025, time.March, 10), hasCompleted: true, want: BucketCompleted},
		{name: "completed wins inside window", today: date(2025, time.March, 22), hasCompleted: true, want: BucketCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Assessment{StartDate: start, EndDate: end}
			got := svc.Classify(a, tt.today, tt.hasCompleted)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySingleDayWindow(t *testing.T) {
	svc := NewScheduleService()
	day := date(2025, time.June, 1)
	a := &model.Assessment{StartDate: day, EndDate: day}

	assert.Equal(t, BucketInProgress, svc.Classify(a, day, false))
	assert.Equal(t, BucketMissed, svc.Classify(a, day.AddDate(0, 0, 1), false))
	assert.Equal(t, BucketUpcoming, svc.Classify(a, day.AddDate(0, 0, -1), false))
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	svc := NewScheduleService()
	a := &model.Assessment{
		StartDate: date(2025, time.March, 20),
		EndDate:   date(2025, time.March, 20),
	}
	lateEvening := time.Date(2025, time.March, 20, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, BucketInProgress, svc.Classify(a, lateEvening, false))
}

func TestDaysUntilDue(t *testing.T) {
	svc := NewScheduleService()
	a := &model.Assessment{
		StartDate: date(2025, time.March, 20),
		EndDate:   date(2025, time.March, 27),
	}

	assert.Equal(t, 5, svc.DaysUntilDue(a, date(2025, time.March, 22)))
	assert.Equal(t, 0, svc.DaysUntilDue(a, date(2025, time.March, 27)))
	assert.Equal(t, -3, svc.DaysUntilDue(a, date(2025, time.March, 30)))
}
