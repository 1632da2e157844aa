package service

import (
	"context"
	"testing"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"
	"trailhunt/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestChallengeService_Reorder(t *testing.T) {
	hunt := &model.Hunt{ID: 5, ShortCode: "calm-fox-leaps"}

	t.Run("Empty permutation", func(t *testing.T) {
		repo := &mocks.MockChallengeRepository{}
		svc := NewChallengeService(repo)

		_, err := svc.Reorder(context.Background(), "calm-fox-leaps", nil)
		assert.ErrorIs(t, err, ErrInvalidReorder)
	})

	t.Run("Duplicate ids", func(t *testing.T) {
		repo := &mocks.MockChallengeRepository{}
		repo.On("GetHuntByShortCode", mock.Anything, "calm-fox-leaps").Return(hunt, nil)
		svc := NewChallengeService(repo)

		_, err := svc.Reorder(context.Background(), "calm-fox-leaps", []int64{1, 2, 1})
		assert.ErrorIs(t, err, ErrInvalidReorder)
	})

	t.Run("Set mismatch reported by repository", func(t *testing.T) {
		repo := &mocks.MockChallengeRepository{}
		repo.On("GetHuntByShortCode", mock.Anything, "calm-fox-leaps").Return(hunt, nil)
		repo.On("ReorderChallenges", mock.Anything, int64(5), []int64{1, 2, 9}).
			Return(nil, repository.ErrChallengeSetMismatch)
		svc := NewChallengeService(repo)

		_, err := svc.Reorder(context.Background(), "calm-fox-leaps", []int64{1, 2, 9})
		assert.ErrorIs(t, err, ErrInvalidReorder)
	})

	t.Run("Permutation applied", func(t *testing.T) {
		reordered := []*model.Challenge{
			regularChallenge(3, 5, 0),
			regularChallenge(1, 5, 1),
			regularChallenge(2, 5, 2),
		}

		repo := &mocks.MockChallengeRepository{}
		repo.On("GetHuntByShortCode", mock.Anything, "calm-fox-leaps").Return(hunt, nil)
		repo.On("ReorderChallenges", mock.Anything, int64(5), []int64{3, 1, 2}).
			Return(reordered, nil)
		svc := NewChallengeService(repo)

		got, err := svc.Reorder(context.Background(), "calm-fox-leaps", []int64{3, 1, 2})
		assert.NoError(t, err)
		assert.Equal(t, reordered, got)
		for i, ch := range got {
			assert.Equal(t, i, *ch.Order)
		}
		repo.AssertExpectations(t)
	})

	t.Run("Unknown hunt", func(t *testing.T) {
		repo := &mocks.MockChallengeRepository{}
		repo.On("GetHuntByShortCode", mock.Anything, "gone").
			Return(nil, repository.ErrNotFound)
		svc := NewChallengeService(repo)

		_, err := svc.Reorder(context.Background(), "gone", []int64{1})
		assert.ErrorIs(t, err, ErrHuntNotFound)
	})
}

func TestChallengeService_Create(t *testing.T) {
	hunt := &model.Hunt{ID: 5, ShortCode: "calm-fox-leaps"}

	repo := &mocks.MockChallengeRepository{}
	repo.On("GetHuntByShortCode", mock.Anything, "calm-fox-leaps").Return(hunt, nil)
	repo.On("CreateChallenge", mock.Anything, mock.MatchedBy(func(ch *model.Challenge) bool {
		return ch.HuntID != nil && *ch.HuntID == 5 &&
			ch.Name == "old mill" &&
			ch.PublicID != ""
	})).Return(regularChallenge(1, 5, 0), nil)

	svc := NewChallengeService(repo)
	created, err := svc.Create(context.Background(), "calm-fox-leaps", &model.Challenge{
		Name: "  old mill  ",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	repo.AssertExpectations(t)
}

func TestChallengeService_Delete(t *testing.T) {
	hunt := &model.Hunt{ID: 5, ShortCode: "calm-fox-leaps"}

	t.Run("Challenge with history is protected", func(t *testing.T) {
		repo := &mocks.MockChallengeRepository{}
		repo.On("GetHuntByShortCode", mock.Anything, "calm-fox-leaps").Return(hunt, nil)
		repo.On("DeleteChallenge", mock.Anything, int64(5), int64(1)).
			Return(repository.ErrChallengeInUse)
		svc := NewChallengeService(repo)

		err := svc.Delete(context.Background(), "calm-fox-leaps", 1)
		assert.ErrorIs(t, err, ErrChallengeInUse)
	})

	t.Run("Unknown challenge", func(t *testing.T) {
		repo := &mocks.MockChallengeRepository{}
		repo.On("GetHuntByShortCode", mock.Anything, "calm-fox-leaps").Return(hunt, nil)
		repo.On("DeleteChallenge", mock.Anything, int64(5), int64(9)).
			Return(repository.ErrNotFound)
		svc := NewChallengeService(repo)

		err := svc.Delete(context.Background(), "calm-fox-leaps", 9)
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})
}
