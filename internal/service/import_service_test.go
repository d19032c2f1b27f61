package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"teklio/internal/domain"
	"teklio/internal/parser"
	"teklio/internal/port"
	"teklio/internal/service"
	"teklio/mocks"
)

func sampleWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "LED Panel"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 2))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

const minimalDocJSON = `{"company":{"name":"Akme"},"proposal":{"items":[{"description":"LED Panel","quantity":2,"unit_price":10}]}}`

func TestParseSpreadsheet_RequiresModel(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(false)

	svc := service.NewImportService(parser.New(chat), nil, "", 144)
	_, err := svc.ParseSpreadsheet(context.Background(), "teklif.xlsx", sampleWorkbook(t))

	assert.ErrorIs(t, err, domain.ErrParserNotConfigured)
}

func TestParseSpreadsheet_FlattensAndParses(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(true)
	chat.On("Complete", mock.Anything, mock.MatchedBy(func(req port.ChatRequest) bool {
		return req.Text != "" && req.ImageBase64 == ""
	})).Return(minimalDocJSON, nil).Once()

	svc := service.NewImportService(parser.New(chat), nil, "", 144)
	doc, err := svc.ParseSpreadsheet(context.Background(), "teklif.xlsx", sampleWorkbook(t))

	require.NoError(t, err)
	assert.Equal(t, "Akme", doc.Company.Name)
	require.Len(t, doc.Proposal.Items, 1)
	chat.AssertExpectations(t)
}

func TestParseSpreadsheet_ArchivalFailureIsSwallowed(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(true)
	chat.On("Complete", mock.Anything, mock.Anything).Return(minimalDocJSON, nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "archive"
	})).Return(nil, errors.New("s3 down")).Once()

	svc := service.NewImportService(parser.New(chat), storage, "archive", 144)
	doc, err := svc.ParseSpreadsheet(context.Background(), "teklif.xlsx", sampleWorkbook(t))

	require.NoError(t, err)
	assert.NotNil(t, doc)
	storage.AssertExpectations(t)
}

func TestParseSpreadsheet_MalformedWorkbook(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	svc := service.NewImportService(parser.New(chat), nil, "", 144)

	_, err := svc.ParseSpreadsheet(context.Background(), "bozuk.xlsx", []byte("not a workbook"))
	assert.ErrorIs(t, err, domain.ErrWorkbookRead)
	chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestParseFreeformItems_EmptyText(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	svc := service.NewImportService(parser.New(chat), nil, "", 144)

	_, err := svc.ParseFreeformItems(context.Background(), "", false)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestParseFreeformItems_FallbackWithoutCredential(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(false)

	svc := service.NewImportService(parser.New(chat), nil, "", 144)
	items, err := svc.ParseFreeformItems(context.Background(), "Panel\t2\tAdet\t10", false)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Panel", items[0].Description)
}
