package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appcategory "github.com/yogapit/eshop/application/category"
	"github.com/yogapit/eshop/constant"
	categorymocks "github.com/yogapit/eshop/mocks/repository/category"
	"github.com/yogapit/eshop/model"
	cerr "github.com/yogapit/eshop/utils/errors"
)

func requireCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	require.True(t, errors.As(err, &ce), "error = %v", err)
	assert.Equal(t, constant.ErrorTypeCode[want], ce.ErrorCode(), err.Error())
}

func TestCategoryApp_CreateCategory(t *testing.T) {
	description := "  Props for <b>restorative</b> practice "
	tests := []struct {
		name     string
		req      *model.CategoryRequest
		mockCall func(repo *categorymocks.CategoryRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: always custom even when asked otherwise",
			req:  &model.CategoryRequest{Name: "Bolsters", Description: &description, IsCustom: false},
			mockCall: func(repo *categorymocks.CategoryRepository) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.CategoryEntity) bool {
					return c.IsCustom && c.Name == "Bolsters" && *c.Description == "Props for brestorative/b practice"
				})).Return(&model.CategoryEntity{ID: 4, Name: "Bolsters", IsCustom: true}, nil).Once()
			},
		},
		{
			name:    "error: name required",
			req:     &model.CategoryRequest{},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: repository",
			req:  &model.CategoryRequest{Name: "Bolsters"},
			mockCall: func(repo *categorymocks.CategoryRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("duplicate")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := categorymocks.NewCategoryRepository(t)
			if tt.mockCall != nil {
				tt.mockCall(repo)
			}

			got, err := appcategory.NewCategoryApp(repo).CreateCategory(context.Background(), tt.req)
			if tt.wantErr {
				requireCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.IsCustom)
		})
	}
}

func TestCategoryApp_DeleteCategory(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(repo *categorymocks.CategoryRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: custom category",
			mockCall: func(repo *categorymocks.CategoryRepository) {
				repo.On("GetByID", mock.Anything, uint64(5)).Return(&model.CategoryEntity{ID: 5, IsCustom: true}, nil).Once()
				repo.On("Delete", mock.Anything, uint64(5)).Return(nil).Once()
			},
		},
		{
			name: "error: built-in category",
			mockCall: func(repo *categorymocks.CategoryRepository) {
				repo.On("GetByID", mock.Anything, uint64(5)).Return(&model.CategoryEntity{ID: 5, IsCustom: false}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCategoryNotDeletable,
		},
		{
			name: "error: not found",
			mockCall: func(repo *categorymocks.CategoryRepository) {
				repo.On("GetByID", mock.Anything, uint64(5)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := categorymocks.NewCategoryRepository(t)
			tt.mockCall(repo)

			err := appcategory.NewCategoryApp(repo).DeleteCategory(context.Background(), 5)
			if tt.wantErr {
				requireCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCategoryApp_UpdateCategory(t *testing.T) {
	repo := categorymocks.NewCategoryRepository(t)
	repo.On("GetByID", mock.Anything, uint64(2)).Return(&model.CategoryEntity{ID: 2, Name: "Mats"}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.CategoryEntity) bool {
		return c.ID == 2 && c.Name == "Travel mats" && c.IsExclusive
	})).Return(nil).Once()

	got, err := appcategory.NewCategoryApp(repo).UpdateCategory(context.Background(), 2, &model.CategoryRequest{Name: "Travel mats", IsExclusive: true})
	require.NoError(t, err)
	assert.Equal(t, "Travel mats", got.Name)

	repo.On("GetByID", mock.Anything, uint64(3)).Return(nil, nil).Once()
	_, err = appcategory.NewCategoryApp(repo).UpdateCategory(context.Background(), 3, &model.CategoryRequest{Name: "Blocks"})
	requireCode(t, err, constant.ErrNotFound)
}

func TestCategoryApp_ListCategories(t *testing.T) {
	repo := categorymocks.NewCategoryRepository(t)
	repo.On("List", mock.Anything).Return([]model.CategoryEntity{{ID: 1, Name: "Blocks"}, {ID: 2, Name: "Mats"}}, nil).Once()

	got, err := appcategory.NewCategoryApp(repo).ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	repo.On("List", mock.Anything).Return(nil, errors.New("db error")).Once()
	_, err = appcategory.NewCategoryApp(repo).ListCategories(context.Background())
	requireCode(t, err, constant.ErrInternal)
}
