package impl

import (
	"context"
	"strings"
	"testing"

	"piquant/internal/domain/entity"
	domainerrors "piquant/internal/domain/errors"
	"piquant/internal/domain/repository"
	mockRepo "piquant/internal/mocks/repository"
	mockSvc "piquant/internal/mocks/service"
	"piquant/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sauceServiceFixtures holds all test dependencies for sauce service tests.
type sauceServiceFixtures struct {
	service   usecase.SauceUsecase
	sauceRepo *mockRepo.MockSauceRepository
	storage   *mockSvc.MockFileStorage
}

func createTestSauceService(t *testing.T) sauceServiceFixtures {
	t.Helper()

	sauceRepo := new(mockRepo.MockSauceRepository)
	storage := new(mockSvc.MockFileStorage)

	service := NewSauceService(SauceServiceParams{
		SauceRepo: sauceRepo,
		Storage:   storage,
		Logger:    newDiscardLogger(),
	})

	return sauceServiceFixtures{
		service:   service,
		sauceRepo: sauceRepo,
		storage:   storage,
	}
}

func testSauceFields() usecase.SauceFields {
	return usecase.SauceFields{
		Name:         "Ghost Reaper",
		Manufacturer: "Scoville Labs",
		Description:  "Not for the faint of heart",
		MainPepper:   "Carolina Reaper",
		Heat:         9,
	}
}

func TestSauceService_CreateSauce_Success(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	image := strings.NewReader("fake image bytes")

	f.storage.On("Store", ctx, image, "reaper.png").Return("/images/reaper_abc.png", nil)
	f.sauceRepo.On("Create", ctx, mock.MatchedBy(func(s *entity.Sauce) bool {
		return s.OwnerID == ownerID && s.Name == "Ghost Reaper" && s.ImageURL == "/images/reaper_abc.png"
	})).Return(nil)

	sauce, err := f.service.CreateSauce(ctx, &usecase.CreateSauceInput{
		OwnerID:   ownerID,
		Fields:    testSauceFields(),
		Image:     image,
		ImageName: "reaper.png",
	})

	require.NoError(t, err)
	assert.Equal(t, ownerID, sauce.OwnerID)
	assert.Equal(t, "/images/reaper_abc.png", sauce.ImageURL)
	f.sauceRepo.AssertExpectations(t)
}

func TestSauceService_CreateSauce_CleansUpImageOnPersistFailure(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	image := strings.NewReader("fake image bytes")

	f.storage.On("Store", ctx, image, "reaper.png").Return("/images/reaper_abc.png", nil)
	f.sauceRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)
	f.storage.On("Remove", ctx, "/images/reaper_abc.png").Return(nil)

	sauce, err := f.service.CreateSauce(ctx, &usecase.CreateSauceInput{
		OwnerID:   uuid.New(),
		Fields:    testSauceFields(),
		Image:     image,
		ImageName: "reaper.png",
	})

	assert.Nil(t, sauce)
	assert.Error(t, err)
	f.storage.AssertCalled(t, "Remove", ctx, "/images/reaper_abc.png")
}

func TestSauceService_GetSauce_NotFound(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(nil, repository.ErrSauceNotFound)

	sauce, err := f.service.GetSauce(ctx, sauceID)

	assert.Nil(t, sauce)
	assert.ErrorIs(t, err, domainerrors.ErrSauceNotFound)
}

func TestSauceService_UpdateSauce_RejectsNonOwner(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:      sauceID,
		OwnerID: uuid.New(),
	}, nil)

	sauce, err := f.service.UpdateSauce(ctx, &usecase.UpdateSauceInput{
		SauceID: sauceID,
		ActorID: uuid.New(),
		Fields:  testSauceFields(),
	})

	assert.Nil(t, sauce)
	assert.ErrorIs(t, err, domainerrors.ErrNotSauceOwner)
	f.sauceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSauceService_UpdateSauce_WithoutImageKeepsExisting(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()
	ownerID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:       sauceID,
		OwnerID:  ownerID,
		Name:     "Old Name",
		ImageURL: "/images/old.png",
	}, nil)
	f.sauceRepo.On("Update", ctx, mock.MatchedBy(func(s *entity.Sauce) bool {
		return s.Name == "Ghost Reaper" && s.ImageURL == "/images/old.png"
	})).Return(nil)

	sauce, err := f.service.UpdateSauce(ctx, &usecase.UpdateSauceInput{
		SauceID: sauceID,
		ActorID: ownerID,
		Fields:  testSauceFields(),
	})

	require.NoError(t, err)
	assert.Equal(t, "/images/old.png", sauce.ImageURL)
	f.storage.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
}

func TestSauceService_UpdateSauce_ReplacesImage(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()
	ownerID := uuid.New()
	image := strings.NewReader("new image bytes")

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:       sauceID,
		OwnerID:  ownerID,
		ImageURL: "/images/old.png",
	}, nil)
	f.storage.On("Store", ctx, image, "new.png").Return("/images/new_abc.png", nil)
	f.sauceRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.storage.On("Remove", ctx, "/images/old.png").Return(nil)

	sauce, err := f.service.UpdateSauce(ctx, &usecase.UpdateSauceInput{
		SauceID:   sauceID,
		ActorID:   ownerID,
		Fields:    testSauceFields(),
		Image:     image,
		ImageName: "new.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "/images/new_abc.png", sauce.ImageURL)
	f.storage.AssertCalled(t, "Remove", ctx, "/images/old.png")
}

func TestSauceService_DeleteSauce_RemovesRowAndImage(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()
	ownerID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:       sauceID,
		OwnerID:  ownerID,
		ImageURL: "/images/doomed.png",
	}, nil)
	f.sauceRepo.On("Delete", ctx, sauceID).Return(nil)
	f.storage.On("Remove", ctx, "/images/doomed.png").Return(nil)

	err := f.service.DeleteSauce(ctx, sauceID, ownerID)

	require.NoError(t, err)
	f.sauceRepo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestSauceService_DeleteSauce_RejectsNonOwner(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:      sauceID,
		OwnerID: uuid.New(),
	}, nil)

	err := f.service.DeleteSauce(ctx, sauceID, uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrNotSauceOwner)
	f.sauceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSauceService_Vote_AppliesDelta(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()
	voterID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:      sauceID,
		Version: 3,
	}, nil)
	f.sauceRepo.On("ApplyVote", ctx, sauceID, int64(3), mock.MatchedBy(func(d entity.VoteDelta) bool {
		return d.UserID == voterID && d.Likes == 1 && d.AddLiked
	})).Return(nil)

	sauce, err := f.service.Vote(ctx, &usecase.VoteInput{
		SauceID: sauceID,
		UserID:  voterID,
		Intent:  entity.IntentLike,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, sauce.Likes)
	assert.Contains(t, sauce.UsersLiked, voterID)
	assert.Equal(t, int64(4), sauce.Version)
}

func TestSauceService_Vote_NoOpSkipsPersistence(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()
	voterID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:         sauceID,
		Likes:      1,
		UsersLiked: []uuid.UUID{voterID},
		Version:    5,
	}, nil)

	sauce, err := f.service.Vote(ctx, &usecase.VoteInput{
		SauceID: sauceID,
		UserID:  voterID,
		Intent:  entity.IntentLike,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), sauce.Version)
	f.sauceRepo.AssertNotCalled(t, "ApplyVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSauceService_Vote_SauceNotFound(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(nil, repository.ErrSauceNotFound)

	sauce, err := f.service.Vote(ctx, &usecase.VoteInput{
		SauceID: sauceID,
		UserID:  uuid.New(),
		Intent:  entity.IntentLike,
	})

	assert.Nil(t, sauce)
	assert.ErrorIs(t, err, domainerrors.ErrSauceNotFound)
}

func TestSauceService_Vote_ConcurrentUpdateConflict(t *testing.T) {
	f := createTestSauceService(t)
	ctx := context.Background()
	sauceID := uuid.New()
	voterID := uuid.New()

	f.sauceRepo.On("FindByID", ctx, sauceID).Return(&entity.Sauce{
		ID:      sauceID,
		Version: 7,
	}, nil)
	f.sauceRepo.On("ApplyVote", ctx, sauceID, int64(7), mock.Anything).
		Return(repository.ErrVersionConflict)

	sauce, err := f.service.Vote(ctx, &usecase.VoteInput{
		SauceID: sauceID,
		UserID:  voterID,
		Intent:  entity.IntentDislike,
	})

	assert.Nil(t, sauce)
	assert.ErrorIs(t, err, domainerrors.ErrVoteConflict)
}
