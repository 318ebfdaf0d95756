package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyansh232/wysa/internal"
)

func newTestAssessmentService(t *testing.T) *AssessmentService {
	return NewAssessmentService(newTestStorage(t), RandomScorer{})
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestStart(t *testing.T) {
	svc := newTestAssessmentService(t)

	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "u1", a.UserID)
	assert.Equal(t, internal.StatusInProgress, a.Status)
	assert.Nil(t, a.SleepStruggleDuration)
	assert.Nil(t, a.BedTime)
	assert.Nil(t, a.WakeTime)
	assert.Nil(t, a.SleepHours)
	assert.Nil(t, a.Score)
}

func TestStart_RepeatedStartsAreIndependent(t *testing.T) {
	svc := newTestAssessmentService(t)

	a1, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)
	a2, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a2.ID)
}

func TestUpdate_EachTypeMutatesOnlyItsField(t *testing.T) {
	svc := newTestAssessmentService(t)
	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	updated, err := svc.Update(context.Background(), &UpdateRequest{
		ID:                    a.ID,
		UpdateType:            UpdateTypeSleepStruggle,
		SleepStruggleDuration: strPtr("1_3_months"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SleepStruggleDuration)
	assert.Equal(t, "1_3_months", *updated.SleepStruggleDuration)
	assert.Nil(t, updated.BedTime)
	assert.Nil(t, updated.WakeTime)
	assert.Nil(t, updated.SleepHours)
	assert.Equal(t, internal.StatusInProgress, updated.Status)
	assert.True(t, updated.UpdatedAt.After(a.UpdatedAt))

	updated, err = svc.Update(context.Background(), &UpdateRequest{
		ID:         a.ID,
		UpdateType: UpdateTypeBedTime,
		BedTime:    strPtr("22:30:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.BedTime)
	assert.Equal(t, "22:30:00", *updated.BedTime)
	assert.Equal(t, "1_3_months", *updated.SleepStruggleDuration)
	assert.Nil(t, updated.WakeTime)

	updated, err = svc.Update(context.Background(), &UpdateRequest{
		ID:         a.ID,
		UpdateType: UpdateTypeWakeTime,
		WakeTime:   strPtr("07:00:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WakeTime)
	assert.Equal(t, "07:00:00", *updated.WakeTime)

	updated, err = svc.Update(context.Background(), &UpdateRequest{
		ID:         a.ID,
		UpdateType: UpdateTypeSleepHours,
		SleepHours: intPtr(7),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SleepHours)
	assert.Equal(t, 7, *updated.SleepHours)
	assert.Equal(t, "22:30:00", *updated.BedTime)
	assert.Equal(t, "07:00:00", *updated.WakeTime)
}

func TestUpdate_InvalidUpdateTypeDoesNotMutate(t *testing.T) {
	svc := newTestAssessmentService(t)
	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), &UpdateRequest{
		ID:         a.ID,
		UpdateType: "Favorite Color",
	})
	assert.ErrorIs(t, err, ErrInvalidUpdateType)

	got, err := svc.assessments.GetAssessment(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.UpdatedAt.Unix(), got.UpdatedAt.Unix())
	assert.Nil(t, got.SleepStruggleDuration)
}

func TestUpdate_InvalidValues(t *testing.T) {
	svc := newTestAssessmentService(t)
	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)

	cases := []UpdateRequest{
		{ID: a.ID, UpdateType: UpdateTypeSleepStruggle},
		{ID: a.ID, UpdateType: UpdateTypeSleepStruggle, SleepStruggleDuration: strPtr("forever")},
		{ID: a.ID, UpdateType: UpdateTypeBedTime},
		{ID: a.ID, UpdateType: UpdateTypeBedTime, BedTime: strPtr("25:99")},
		{ID: a.ID, UpdateType: UpdateTypeWakeTime, WakeTime: strPtr("morning")},
		{ID: a.ID, UpdateType: UpdateTypeSleepHours},
		{ID: a.ID, UpdateType: UpdateTypeSleepHours, SleepHours: intPtr(2)},
		{ID: a.ID, UpdateType: UpdateTypeSleepHours, SleepHours: intPtr(13)},
	}
	for _, req := range cases {
		_, err := svc.Update(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidValue, "updateType=%s", req.UpdateType)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	svc := newTestAssessmentService(t)

	_, err := svc.Update(context.Background(), &UpdateRequest{
		ID:         "missing",
		UpdateType: UpdateTypeSleepHours,
		SleepHours: intPtr(7),
	})
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestComplete(t *testing.T) {
	svc := newTestAssessmentService(t)
	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)

	for _, req := range []UpdateRequest{
		{ID: a.ID, UpdateType: UpdateTypeSleepStruggle, SleepStruggleDuration: strPtr("more_than_6_months")},
		{ID: a.ID, UpdateType: UpdateTypeBedTime, BedTime: strPtr("22:30:00")},
		{ID: a.ID, UpdateType: UpdateTypeWakeTime, WakeTime: strPtr("07:00:00")},
		{ID: a.ID, UpdateType: UpdateTypeSleepHours, SleepHours: intPtr(8)},
	} {
		_, err := svc.Update(context.Background(), &req)
		require.NoError(t, err)
	}

	done, err := svc.Complete(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, internal.StatusCompleted, done.Status)
	require.NotNil(t, done.Score)
	assert.GreaterOrEqual(t, *done.Score, 0)
	assert.LessOrEqual(t, *done.Score, 100)
}

// Scoring must tolerate skipped steps: a record with no answers at all
// still completes with a score in range.
func TestComplete_PartialAnswers(t *testing.T) {
	svc := newTestAssessmentService(t)
	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)

	done, err := svc.Complete(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, internal.StatusCompleted, done.Status)
	require.NotNil(t, done.Score)
	assert.GreaterOrEqual(t, *done.Score, 0)
	assert.LessOrEqual(t, *done.Score, 100)
}

func TestComplete_TwiceRejected(t *testing.T) {
	svc := newTestAssessmentService(t)
	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)

	first, err := svc.Complete(context.Background(), a.ID)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrAssessmentCompleted)

	// The stored score did not change.
	got, err := svc.assessments.GetAssessment(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.Score, *got.Score)
}

func TestUpdate_AfterCompleteRejected(t *testing.T) {
	svc := newTestAssessmentService(t)
	a, err := svc.Start(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), a.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), &UpdateRequest{
		ID:         a.ID,
		UpdateType: UpdateTypeSleepHours,
		SleepHours: intPtr(7),
	})
	assert.ErrorIs(t, err, ErrAssessmentCompleted)
}

func TestComplete_UnknownID(t *testing.T) {
	svc := newTestAssessmentService(t)

	_, err := svc.Complete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestRandomScorer_Bounds(t *testing.T) {
	s := RandomScorer{}
	for i := 0; i < 1000; i++ {
		score := s.Score(nil)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}
