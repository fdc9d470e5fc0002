package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"inventory-audit/core/storage/mocks"
	"inventory-audit/feature/inventory/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateReport(t *testing.T) {
	f := newFixture(t, map[string]string{"1": "Alpha", "2": "Bravo", "3": "Charlie", "4": "Delta"})
	ctx := context.Background()

	room := models.Workplace{Name: "Room 101", IsActive: true}
	require.NoError(t, f.db.Create(&room).Error)
	emp := models.Employee{FullName: "Ivanov", IsActive: true}
	require.NoError(t, f.db.Create(&emp).Error)
	require.NoError(t, f.db.Model(f.eq["4"]).Updates(map[string]any{"workplace_id": room.ID, "employee_id": emp.ID}).Error)
	require.NoError(t, f.db.Model(f.eq["2"]).Updates(map[string]any{"location": "Storage", "assigned_to": "legacy"}).Error)

	audit, err := f.svc.CreateAudit(ctx, "Ivanov")
	require.NoError(t, err)
	_, err = f.svc.ScanBarcode(ctx, audit.ID, "3")
	require.NoError(t, err)
	_, err = f.svc.ScanBarcode(ctx, audit.ID, "1")
	require.NoError(t, err)

	rows, err := f.svc.GenerateReport(ctx, audit.ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, ReportRow{Status: StatusFound, Name: "Alpha", Type: models.TypePC, Barcode: "1"}, rows[0])
	assert.Equal(t, StatusFound, rows[1].Status)
	assert.Equal(t, "Charlie", rows[1].Name)
	assert.Equal(t, ReportRow{Status: StatusNotFound, Name: "Bravo", Type: models.TypePC, Barcode: "2", Location: "Storage", AssignedTo: "legacy"}, rows[2])
	assert.Equal(t, ReportRow{Status: StatusNotFound, Name: "Delta", Type: models.TypePC, Barcode: "4", Location: "Room 101", AssignedTo: "Ivanov"}, rows[3])
}

func TestGenerateReport_UnknownAudit(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	rows, err := f.svc.GenerateReport(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGenerateReport_EmptyCatalog(t *testing.T) {
	f := newFixture(t, nil)
	audit, err := f.svc.CreateAudit(context.Background(), "Ivanov")
	require.NoError(t, err)

	rows, err := f.svc.GenerateReport(context.Background(), audit.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

var sampleRows = []ReportRow{
	{Status: StatusFound, Name: `Dell "Opti" PC`, Type: "PC", Model: "7090", Barcode: "PC-001", Location: "Room 1, left", AssignedTo: "Ivanov"},
	{Status: StatusNotFound, Name: "HP Printer", Type: "Printer", Barcode: "PC-002"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows))

	assert.True(t, strings.HasPrefix(buf.String(), "Status,Name,Type,Model,Barcode,Location,AssignedTo\n"))
	assert.Contains(t, buf.String(), `"Dell ""Opti"" PC"`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, sampleRows[0].values(), records[1])
	assert.Equal(t, "Not Found", records[2][0])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRows))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, reportHeader, rows[0])
	assert.Equal(t, `Dell "Opti" PC`, rows[1][1])
	assert.Equal(t, "HP Printer", rows[2][1])
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Render("pdf", sampleRows)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExportReport(t *testing.T) {
	client := new(mocks.Client)
	f := newFixture(t, defaultCatalog(), WithStorage(client, "inventory", "reports"))
	ctx := context.Background()

	audit, err := f.svc.CreateAudit(ctx, "Ivanov")
	require.NoError(t, err)
	_, err = f.svc.ScanBarcode(ctx, audit.ID, "PC-001")
	require.NoError(t, err)

	var uploaded []byte
	client.On("PutObject", mock.Anything, "inventory",
		mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "reports/audits/"+audit.ID+"/") && strings.HasSuffix(name, ".csv")
		}),
		mock.Anything, mock.Anything,
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == ContentType(FormatCSV) }),
	).Run(func(args mock.Arguments) {
		uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
	}).Return(minio.UploadInfo{}, nil).Once()

	name, err := f.svc.ExportReport(ctx, audit.ID, "CSV")
	require.NoError(t, err)
	assert.Contains(t, name, "reports/audits/"+audit.ID+"/")
	assert.Contains(t, string(uploaded), "Found,Dell PC,PC,,PC-001,,")
	assert.Contains(t, string(uploaded), "Not Found,HP Printer")
	client.AssertExpectations(t)
}

func TestExportReport_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("storage disabled", func(t *testing.T) {
		f := newFixture(t, defaultCatalog())
		_, err := f.svc.ExportReport(ctx, "any", FormatCSV)
		assert.ErrorIs(t, err, ErrStorageDisabled)
	})

	t.Run("unknown audit", func(t *testing.T) {
		f := newFixture(t, defaultCatalog(), WithStorage(new(mocks.Client), "inventory", "reports"))
		_, err := f.svc.ExportReport(ctx, "missing", FormatCSV)
		assert.ErrorIs(t, err, ErrAuditNotFound)
	})

	t.Run("upload error", func(t *testing.T) {
		client := new(mocks.Client)
		f := newFixture(t, defaultCatalog(), WithStorage(client, "inventory", "reports"))
		audit, err := f.svc.CreateAudit(ctx, "Ivanov")
		require.NoError(t, err)

		client.On("PutObject", mock.Anything, "inventory", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("connection refused"))

		_, err = f.svc.ExportReport(ctx, audit.ID, FormatXLSX)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		var oe *OutcomeError
		assert.False(t, errors.As(err, &oe))
	})
}

func TestListExports(t *testing.T) {
	client := new(mocks.Client)
	f := newFixture(t, nil, WithStorage(client, "inventory", "reports"))

	client.On("ListObjects", mock.Anything, "inventory", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "reports/audits/a1/" && opts.Recursive
	})).Return(mocks.Objects(
		"reports/audits/a1/20240302T090000Z.xlsx",
		"reports/audits/a1/",
		"reports/audits/a1/20240301T090000Z.csv",
	))

	names, err := f.svc.ListExports(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"reports/audits/a1/20240301T090000Z.csv",
		"reports/audits/a1/20240302T090000Z.xlsx",
	}, names)
}
