package adapters

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "membership_backend/internal/feature/auth/domain/entity"
	"membership_backend/internal/feature/membership/domain/entity"
	"membership_backend/internal/feature/membership/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Member{}, &authentity.Account{}, &CounterModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedMember(t *testing.T, repo *memberMySQL, seq int, mutate func(*entity.Member)) *entity.Member {
	t.Helper()

	m := &entity.Member{
		MemberID:       fmt.Sprintf("MBR-2025-%05d", seq),
		FullName:       fmt.Sprintf("Member %d", seq),
		FatherName:     "Father",
		Mobile:         fmt.Sprintf("90000%05d", seq),
		Email:          fmt.Sprintf("member%d@example.com", seq),
		Address:        "Address",
		Occupation:     "Occupation",
		MembershipType: entity.TypeOneTime,
		MembershipFee:  500,
		Status:         entity.StatusPending,
	}
	if mutate != nil {
		mutate(m)
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestMemberMySQL_FindByIdentifier(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMemberMySQL(db)
	m := seedMember(t, repo, 1, nil)

	t.Run("by numeric database id", func(t *testing.T) {
		got, err := repo.FindByIdentifier(context.Background(), fmt.Sprint(m.ID))
		require.NoError(t, err)
		assert.Equal(t, m.MemberID, got.MemberID)
	})

	t.Run("by member id", func(t *testing.T) {
		got, err := repo.FindByIdentifier(context.Background(), "MBR-2025-00001")
		require.NoError(t, err)
		assert.Equal(t, m.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByIdentifier(context.Background(), "MBR-1999-00001")
		assert.ErrorIs(t, err, usecase.ErrMemberNotFound)
	})
}

func TestMemberMySQL_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMemberMySQL(db)

	seedMember(t, repo, 1, func(m *entity.Member) {
		m.Status = entity.StatusApproved
		m.FullName = "Abdul Rahman"
	})
	seedMember(t, repo, 2, func(m *entity.Member) {
		m.Status = entity.StatusApproved
		m.MembershipType = entity.TypeLifetime
	})
	seedMember(t, repo, 3, func(m *entity.Member) {
		// Legacy rows spell the type without the dash.
		m.MembershipType = entity.TypeOneTimeLegacy
	})

	t.Run("status filter", func(t *testing.T) {
		members, total, err := repo.List(context.Background(), usecase.ListFilter{
			Status: entity.StatusApproved, Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, members, 2)
	})

	t.Run("one-time matches both spellings", func(t *testing.T) {
		_, total, err := repo.List(context.Background(), usecase.ListFilter{
			Type: entity.TypeOneTime, Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("query matches name case-insensitively", func(t *testing.T) {
		members, total, err := repo.List(context.Background(), usecase.ListFilter{
			Query: "abdul", Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, members, 1)
		assert.Equal(t, "Abdul Rahman", members[0].FullName)
	})

	t.Run("public search ignores email", func(t *testing.T) {
		_, total, err := repo.List(context.Background(), usecase.ListFilter{
			Query: "member2@example.com", PublicSearch: true, Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})

	t.Run("pagination", func(t *testing.T) {
		members, total, err := repo.List(context.Background(), usecase.ListFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, members, 1)
	})
}

func TestMemberMySQL_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMemberMySQL(db)

	seedMember(t, repo, 1, func(m *entity.Member) { m.Status = entity.StatusApproved })
	seedMember(t, repo, 2, func(m *entity.Member) {
		m.Status = entity.StatusApproved
		m.MembershipType = entity.TypeLifetime
	})
	seedMember(t, repo, 3, nil)

	total, err := repo.Count(context.Background(), "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	approved, err := repo.Count(context.Background(), entity.StatusApproved, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, approved)

	lifetime, err := repo.Count(context.Background(), entity.StatusApproved, entity.TypeLifetime)
	require.NoError(t, err)
	assert.EqualValues(t, 1, lifetime)
}

func TestMemberMySQL_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMemberMySQL(db)
	m := seedMember(t, repo, 1, nil)

	require.NoError(t, repo.Delete(context.Background(), m.ID))

	_, err := repo.FindByID(context.Background(), m.ID)
	assert.ErrorIs(t, err, usecase.ErrMemberNotFound)

	err = repo.Delete(context.Background(), m.ID)
	assert.ErrorIs(t, err, usecase.ErrMemberNotFound)
}

func TestMemberMySQL_MemberIDUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMemberMySQL(db)
	seedMember(t, repo, 1, nil)

	dup := &entity.Member{
		MemberID:       "MBR-2025-00001",
		FullName:       "Duplicate",
		FatherName:     "Father",
		Mobile:         "1",
		Email:          "dup@example.com",
		Address:        "A",
		Occupation:     "O",
		MembershipType: entity.TypeOneTime,
	}
	err := repo.Create(context.Background(), dup)
	assert.Error(t, err, "duplicate member id should be rejected by the unique index")
}
