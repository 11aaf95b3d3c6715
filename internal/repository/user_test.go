package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrUserNotFound, ErrDuplicateEmail,
		ErrArticleNotFound, ErrAlreadyLiked, ErrNotLiked,
		ErrCategoryNotFound, ErrDuplicateCategory, ErrCategoryInUse,
		ErrCommentNotFound, ErrOrderNotFound,
	}
	for _, s := range sentinels {
		require.Error(t, s)
	}
	require.Equal(t, "user not found", ErrUserNotFound.Error())
	require.Equal(t, "article not found", ErrArticleNotFound.Error())
}

func TestIsDuplicateEntryError(t *testing.T) {
	require.False(t, isDuplicateEntryError(nil))
	require.False(t, isDuplicateEntryError(ErrUserNotFound))
	require.True(t, isDuplicateEntryError(
		errors.New(`Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.email'`)))
}

func TestIsForeignKeyError(t *testing.T) {
	require.False(t, isForeignKeyError(nil))
	require.True(t, isForeignKeyError(
		errors.New(`Error 1451 (23000): Cannot delete or update a parent row: a foreign key constraint fails`)))
}

func TestReadingTime(t *testing.T) {
	require.Equal(t, 0, readingTime(0))
	require.Equal(t, 1, readingTime(1))
	require.Equal(t, 1, readingTime(200))
	require.Equal(t, 2, readingTime(201))
	require.Equal(t, 5, readingTime(1000))
}
