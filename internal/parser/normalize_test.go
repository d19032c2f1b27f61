package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teklio/internal/domain"
	"teklio/internal/parser"
)

func fptr(v float64) *float64 { return &v }

func TestNormalize_DerivesTotalFromUnitPrice(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			Items: []domain.LineItem{
				{Description: "Panel", Quantity: 3, UnitPrice: fptr(10)},
			},
		},
	}
	parser.Normalize(doc)

	require.NotNil(t, doc.Proposal.Items[0].TotalPrice)
	assert.InDelta(t, 30, *doc.Proposal.Items[0].TotalPrice, 1e-9)
}

func TestNormalize_DerivesUnitPriceFromTotal(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			Items: []domain.LineItem{
				{Description: "Panel", Quantity: 3, TotalPrice: fptr(30)},
			},
		},
	}
	parser.Normalize(doc)

	require.NotNil(t, doc.Proposal.Items[0].UnitPrice)
	assert.InDelta(t, 10, *doc.Proposal.Items[0].UnitPrice, 1e-9)
}

func TestNormalize_StatedTotalWinsOverProduct(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			Items: []domain.LineItem{
				{Description: "Panel", Quantity: 2, UnitPrice: fptr(10), TotalPrice: fptr(25)},
			},
		},
	}
	parser.Normalize(doc)

	assert.InDelta(t, 25, *doc.Proposal.Items[0].TotalPrice, 1e-9)
	assert.InDelta(t, 25, doc.Proposal.TotalAmount, 1e-9)
}

func TestNormalize_DocumentTotalOverridesReported(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			// The model claimed a wrong total; the item sum is authoritative.
			TotalAmount: 9999,
			Items: []domain.LineItem{
				{Description: "A", Quantity: 1, TotalPrice: fptr(100)},
				{Description: "B", Quantity: 1, TotalPrice: fptr(250.5)},
			},
		},
	}
	parser.Normalize(doc)

	assert.InDelta(t, 350.5, doc.Proposal.TotalAmount, 1e-9)
}

func TestNormalize_HeaderRowContributesNothing(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			Items: []domain.LineItem{
				{Description: "AYDINLATMA", IsHeader: true, Quantity: 5, UnitPrice: fptr(100), TotalPrice: fptr(500)},
				{Description: "Spot", Quantity: 2, UnitPrice: fptr(50)},
			},
		},
	}
	parser.Normalize(doc)

	header := doc.Proposal.Items[0]
	assert.True(t, header.IsHeader)
	assert.Equal(t, "AYDINLATMA", header.Description)
	assert.Nil(t, header.TotalPrice)
	assert.Nil(t, header.UnitPrice)
	assert.Zero(t, header.Quantity)

	assert.InDelta(t, 100, doc.Proposal.TotalAmount, 1e-9)
}

func TestNormalize_Defaults(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			Items: []domain.LineItem{
				{TotalPrice: fptr(40)},
			},
		},
	}
	parser.Normalize(doc)

	item := doc.Proposal.Items[0]
	assert.Equal(t, "Ürün", item.Description)
	assert.InDelta(t, 1, item.Quantity, 1e-9)
	assert.Equal(t, "Adet", item.Unit)

	assert.Equal(t, "EUR", doc.Proposal.Currency)
	require.NotNil(t, doc.Proposal.VATRate)
	assert.InDelta(t, 20, *doc.Proposal.VATRate, 1e-9)
	require.NotNil(t, doc.Proposal.VATAmount)
	assert.InDelta(t, 8, *doc.Proposal.VATAmount, 1e-9)
	require.NotNil(t, doc.Proposal.GrandTotal)
	assert.InDelta(t, 48, *doc.Proposal.GrandTotal, 1e-9)
}

func TestNormalizeInvoice_NoCurrencyDefault(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{
			Items: []domain.LineItem{
				{Description: "Kablo", Quantity: 1, TotalPrice: fptr(40)},
			},
		},
	}
	parser.NormalizeInvoice(doc)

	// Undetected invoice currency stays empty; the totals still normalize.
	assert.Empty(t, doc.Proposal.Currency)
	assert.InDelta(t, 40, doc.Proposal.TotalAmount, 1e-9)
	require.NotNil(t, doc.Proposal.GrandTotal)
	assert.InDelta(t, 48, *doc.Proposal.GrandTotal, 1e-9)
}

func TestNormalizeInvoice_KeepsDetectedCurrency(t *testing.T) {
	doc := &domain.ParsedDocument{
		Proposal: domain.ProposalInfo{Currency: "TRY"},
	}
	parser.NormalizeInvoice(doc)
	assert.Equal(t, "TRY", doc.Proposal.Currency)
}

func TestRepairCompanyName_SheetArtifact(t *testing.T) {
	doc := &domain.ParsedDocument{
		Company: domain.CompanyInfo{
			Name:        "Sayfa1",
			ContactInfo: domain.ContactInfo{Company: "Akme Elektrik Ltd."},
		},
	}
	parser.RepairCompanyName(doc)
	assert.Equal(t, "Akme Elektrik Ltd.", doc.Company.Name)
}

func TestRepairCompanyName_KeepsRealName(t *testing.T) {
	doc := &domain.ParsedDocument{
		Company: domain.CompanyInfo{
			Name:        "Akme Elektrik Ltd.",
			ContactInfo: domain.ContactInfo{Company: "Başka Firma"},
		},
	}
	parser.RepairCompanyName(doc)
	assert.Equal(t, "Akme Elektrik Ltd.", doc.Company.Name)
}
