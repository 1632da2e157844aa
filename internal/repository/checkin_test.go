package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lockChallengeQuery = `SELECT id FROM challenges WHERE id = $1 FOR UPDATE`
	countCheckInsQuery = `SELECT COUNT(*) FROM check_ins WHERE challenge_id = $1`
	insertCheckInQuery = `INSERT INTO check_ins (challenge_id,player_id) VALUES ($1,$2)`
	addScoreQuery      = `UPDATE players SET score = score + $1 WHERE id = $2 RETURNING score`
)

func expectCheckInFlow(mock sqlmock.Sqlmock, playerID, challengeID int64, prior, points, total int) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockChallengeQuery)).
		WithArgs(challengeID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(challengeID))
	mock.ExpectQuery(regexp.QuoteMeta(countCheckInsQuery)).
		WithArgs(challengeID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(prior))
	mock.ExpectExec(regexp.QuoteMeta(insertCheckInQuery)).
		WithArgs(challengeID, playerID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(addScoreQuery)).
		WithArgs(points, playerID).
		WillReturnRows(sqlmock.NewRows([]string{"score"}).AddRow(total))
	mock.ExpectCommit()
}

func TestRepository_RecordCheckIn(t *testing.T) {
	repo, mock := newTestRepository(t)

	var awarded []int
	award := func(position int) int {
		awarded = append(awarded, position)
		return 12
	}

	expectCheckInFlow(mock, 1, 10, 2, 12, 36)

	points, total, position, err := repo.RecordCheckIn(context.Background(), 1, 10, award)
	require.NoError(t, err)
	assert.Equal(t, 12, points)
	assert.Equal(t, 36, total)
	assert.Equal(t, 3, position)
	assert.Equal(t, []int{3}, awarded, "formula must see the position derived inside the transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordCheckIn_PositionsAdvance(t *testing.T) {
	repo, mock := newTestRepository(t)
	award := func(position int) int { return position * 2 }

	var positions []int
	for prior := 0; prior < 3; prior++ {
		playerID := int64(prior + 1)
		points := (prior + 1) * 2
		expectCheckInFlow(mock, playerID, 10, prior, points, points)

		_, _, position, err := repo.RecordCheckIn(context.Background(), playerID, 10, award)
		require.NoError(t, err)
		positions = append(positions, position)
	}

	assert.Equal(t, []int{1, 2, 3}, positions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordCheckIn_Duplicate(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockChallengeQuery)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(countCheckInsQuery)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(insertCheckInQuery)).
		WithArgs(int64(10), int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, _, _, err := repo.RecordCheckIn(context.Background(), 1, 10, func(int) int { return 7 })
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet(), "score must not be touched after a duplicate insert")
}

func TestRepository_RecordCheckIn_UnknownChallenge(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockChallengeQuery)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, _, _, err := repo.RecordCheckIn(context.Background(), 1, 99, func(int) int { return 7 })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
