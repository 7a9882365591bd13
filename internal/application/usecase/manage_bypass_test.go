package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/domain/entity"
	repomocks "github.com/bnema/adshield/internal/domain/repository/mocks"
)

func TestManageBypassUseCase_Add(t *testing.T) {
	t.Run("normalizes urls and hosts", func(t *testing.T) {
		repo := repomocks.NewMockSiteBypassRepository(t)
		repo.EXPECT().Add(mock.Anything, mock.MatchedBy(func(b *entity.SiteBypass) bool {
			return b.Host == "bank.example" && b.Reason == "breaks login" && !b.CreatedAt.IsZero()
		})).Return(nil).Twice()

		uc := usecase.NewManageBypassUseCase(repo)

		got, err := uc.Add(testContext(), "https://www.bank.example/login", " breaks login ")
		require.NoError(t, err)
		assert.Equal(t, "bank.example", got.Host)

		_, err = uc.Add(testContext(), "WWW.Bank.Example.", "breaks login")
		require.NoError(t, err)
	})

	t.Run("bare host with a path", func(t *testing.T) {
		repo := repomocks.NewMockSiteBypassRepository(t)
		repo.EXPECT().Add(mock.Anything, mock.MatchedBy(func(b *entity.SiteBypass) bool {
			return b.Host == "bank.example"
		})).Return(nil).Once()

		got, err := usecase.NewManageBypassUseCase(repo).Add(testContext(), "bank.example/login", "")
		require.NoError(t, err)
		assert.Equal(t, "bank.example", got.Host)
	})

	t.Run("rejects empty and malformed hosts", func(t *testing.T) {
		uc := usecase.NewManageBypassUseCase(repomocks.NewMockSiteBypassRepository(t))

		_, err := uc.Add(testContext(), "  ", "")
		assert.Error(t, err)
		_, err = uc.Add(testContext(), "bank example", "")
		assert.Error(t, err)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		repo := repomocks.NewMockSiteBypassRepository(t)
		repoErr := errors.New("readonly database")
		repo.EXPECT().Add(mock.Anything, mock.Anything).Return(repoErr)

		_, err := usecase.NewManageBypassUseCase(repo).Add(testContext(), "bank.example", "")
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestManageBypassUseCase_RemoveListContains(t *testing.T) {
	repo := repomocks.NewMockSiteBypassRepository(t)
	repo.EXPECT().Remove(mock.Anything, "bank.example").Return(nil)
	repo.EXPECT().Contains(mock.Anything, "shop.bank.example").Return(true, nil)
	repo.EXPECT().GetAll(mock.Anything).Return([]*entity.SiteBypass{{Host: "bank.example"}}, nil)

	uc := usecase.NewManageBypassUseCase(repo)
	ctx := testContext()

	require.NoError(t, uc.Remove(ctx, "www.bank.example"))

	bypassed, err := uc.IsBypassed(ctx, "https://shop.bank.example/cart")
	require.NoError(t, err)
	assert.True(t, bypassed)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bank.example", list[0].Host)
}
