package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quangtran/lichviet/internal/models"
)

func TestMemoryStorageUsers(t *testing.T) {
	s := NewMemoryStorage()

	user := &models.User{Email: "an@example.com", Password: "hash", Fullname: "Nguyễn Văn An"}
	require.NoError(t, s.CreateUser(user))
	require.Equal(t, int64(1), user.ID)
	require.False(t, user.CreatedAt.IsZero())

	exists, err := s.EmailExists("an@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.EmailExists("binh@example.com")
	require.NoError(t, err)
	require.False(t, exists)

	got, err := s.GetUserByEmail("an@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	got.Fullname = "Nguyễn An"
	require.NoError(t, s.UpdateUser(got))

	got, err = s.GetUserByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "Nguyễn An", got.Fullname)

	_, err = s.GetUserByID(99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorageSchedules(t *testing.T) {
	s := NewMemoryStorage()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	for i, offset := range []int{2, 0, 1} {
		sc := &models.Schedule{
			UserID:    1,
			Title:     "Họp",
			StartTime: base.AddDate(0, 0, offset),
			EndTime:   base.AddDate(0, 0, offset).Add(time.Hour),
		}
		require.NoError(t, s.CreateSchedule(sc))
		require.Equal(t, int64(i+1), sc.ID)
		require.Equal(t, "active", sc.Status)
	}

	// Listing is ordered by start time, not insertion order.
	all, err := s.ListSchedules(1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, int64(2), all[0].ID)
	require.Equal(t, int64(3), all[1].ID)
	require.Equal(t, int64(1), all[2].ID)

	// The range is half-open: [from, to).
	ranged, err := s.ListSchedulesInRange(1, base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, ranged, 2)

	// Other users never see these rows.
	other, err := s.ListSchedules(2)
	require.NoError(t, err)
	require.Empty(t, other)
	_, err = s.GetSchedule(2, 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.DeleteSchedule(2, 1), ErrNotFound)

	got, err := s.GetSchedule(1, 1)
	require.NoError(t, err)
	got.Title = "Họp khách hàng"
	require.NoError(t, s.UpdateSchedule(got))

	got, err = s.GetSchedule(1, 1)
	require.NoError(t, err)
	require.Equal(t, "Họp khách hàng", got.Title)

	require.NoError(t, s.DeleteSchedule(1, 1))
	_, err = s.GetSchedule(1, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorageInteractions(t *testing.T) {
	s := NewMemoryStorage()
	in := &models.Interaction{ID: "0b06ba1e-1111-4222-8333-444455556666", UserID: 1, Intent: "schedule"}
	require.NoError(t, s.SaveInteraction(in))
	require.False(t, in.CreatedAt.IsZero())
	require.NoError(t, s.Close())
}
