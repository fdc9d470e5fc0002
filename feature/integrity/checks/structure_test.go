package checks

import (
	"context"
	"testing"

	"inventory-audit/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var folders = []string{"reports"}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(false, nil)

		report, err := CheckStructure(context.Background(), mockClient, "inventory", folders)
		require.NoError(t, err)
		assert.False(t, report.BucketExists)
		assert.Equal(t, folders, report.Missing)
		assert.False(t, report.OK())
		mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(false, assert.AnError)

		_, err := CheckStructure(context.Background(), mockClient, "inventory", folders)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Folder Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return(mocks.Objects())

		report, err := CheckStructure(context.Background(), mockClient, "inventory", folders)
		require.NoError(t, err)
		assert.Equal(t, []string{"reports"}, report.Missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "inventory", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "reports/" && opts.MaxKeys == 1
		})).Return(mocks.Objects("reports/"))

		report, err := CheckStructure(context.Background(), mockClient, "inventory", folders)
		require.NoError(t, err)
		assert.Empty(t, report.Missing)
		assert.True(t, report.OK())
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Creates Bucket And Folder", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("MakeBucket", mock.Anything, "inventory", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)
		mockClient.On("PutObject", mock.Anything, "inventory", "reports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		report := &StructureReport{Bucket: "inventory", Missing: []string{"reports"}}
		err := FixStructure(context.Background(), mockClient, "inventory", "us-east-1", logger, report)
		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})

	t.Run("Folder Only", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "inventory", "reports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		report := &StructureReport{Bucket: "inventory", BucketExists: true, Missing: []string{"reports/"}}
		assert.NoError(t, FixStructure(context.Background(), mockClient, "inventory", "", logger, report))
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Put Failure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "inventory", "reports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, assert.AnError)

		report := &StructureReport{Bucket: "inventory", BucketExists: true, Missing: []string{"reports"}}
		err := FixStructure(context.Background(), mockClient, "inventory", "", logger, report)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
