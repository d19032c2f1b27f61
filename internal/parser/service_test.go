package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teklio/internal/domain"
	"teklio/internal/parser"
	"teklio/mocks"
)

const modelDocJSON = `{
	"company": {"name": "Akme Elektrik", "contact_info": {"email": "info@akme.example", "proje": "Depo Aydınlatma"}},
	"person": {"name": "Ahmet Yılmaz"},
	"proposal": {
		"currency": "try",
		"total_amount": "999",
		"items": [
			{"description": "LED Panel", "quantity": "2", "unit": "Adet", "unit_price": "1.250,50"}
		]
	}
}`

func TestParseProposal_NotConfiguredForceAI(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(false)

	svc := parser.New(chat)
	_, err := svc.ParseProposal(context.Background(), parser.Content{Text: "x"}, true)

	assert.ErrorIs(t, err, domain.ErrParserNotConfigured)
	chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestParseProposal_NotConfiguredFallsBack(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(false)

	svc := parser.New(chat)
	doc, err := svc.ParseProposal(context.Background(), parser.Content{Text: "Panel\t2\tAdet\t10"}, false)

	require.NoError(t, err)
	require.Len(t, doc.Proposal.Items, 1)
	assert.Equal(t, "Panel", doc.Proposal.Items[0].Description)
	chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestParseProposal_ModelErrorFallsBack(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(true)
	chat.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("network down"))

	svc := parser.New(chat)
	doc, err := svc.ParseProposal(context.Background(), parser.Content{Text: "Panel\t2"}, false)

	require.NoError(t, err)
	require.Len(t, doc.Proposal.Items, 1)
	assert.Equal(t, "Panel", doc.Proposal.Items[0].Description)
}

func TestParseProposal_ModelErrorPropagatesWithForceAI(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(true)
	chat.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("network down"))

	svc := parser.New(chat)
	_, err := svc.ParseProposal(context.Background(), parser.Content{Text: "Panel"}, true)

	assert.Error(t, err)
}

func TestParseProposal_DecodesAndNormalizesModelOutput(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(true)
	chat.On("Complete", mock.Anything, mock.Anything).Return(modelDocJSON, nil)

	svc := parser.New(chat)
	doc, err := svc.ParseProposal(context.Background(), parser.Content{Text: "raw"}, true)

	require.NoError(t, err)
	assert.Equal(t, "Akme Elektrik", doc.Company.Name)
	assert.Equal(t, "info@akme.example", doc.Company.ContactInfo.Email)
	assert.Equal(t, "Depo Aydınlatma", doc.Company.ContactInfo.Project)
	require.NotNil(t, doc.Person)
	assert.Equal(t, "Ahmet Yılmaz", doc.Person.Name)
	assert.Equal(t, "TRY", doc.Proposal.Currency)

	require.Len(t, doc.Proposal.Items, 1)
	item := doc.Proposal.Items[0]
	require.NotNil(t, item.UnitPrice)
	assert.InDelta(t, 1250.50, *item.UnitPrice, 1e-9)
	require.NotNil(t, item.TotalPrice)
	assert.InDelta(t, 2501.00, *item.TotalPrice, 1e-9)
	// Item sum overrides the model's claimed 999.
	assert.InDelta(t, 2501.00, doc.Proposal.TotalAmount, 1e-9)
}

func TestParseItems_ForceAIFromRequest(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(false)

	svc := parser.New(chat)
	_, err := svc.ParseItems(context.Background(), "a\tb", true)
	assert.ErrorIs(t, err, domain.ErrParserNotConfigured)

	items, err := svc.ParseItems(context.Background(), "Panel\t2", false)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestParseInvoice_UndetectedCurrencyStaysEmpty(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(true)
	chat.On("Complete", mock.Anything, mock.Anything).
		Return(`{"company":{"name":"Akme"},"proposal":{"items":[{"description":"Kablo","quantity":1,"unit_price":50}]}}`, nil)

	svc := parser.New(chat)
	doc, err := svc.ParseInvoice(context.Background(), parser.Content{Text: "fatura"})

	require.NoError(t, err)
	assert.Empty(t, doc.Proposal.Currency)
	assert.InDelta(t, 50, doc.Proposal.TotalAmount, 1e-9)
}

func TestParseInvoice_AlwaysRequiresModel(t *testing.T) {
	chat := new(mocks.MockChatCompleter)
	chat.On("Configured").Return(false)

	svc := parser.New(chat)
	_, err := svc.ParseInvoice(context.Background(), parser.Content{Text: "fatura"})

	assert.ErrorIs(t, err, domain.ErrParserNotConfigured)
}
