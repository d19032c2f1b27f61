package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teklio/internal/domain"
	"teklio/internal/resolver"
	"teklio/mocks"
)

func company(name string) domain.Company {
	return domain.Company{ID: uuid.New(), Name: name}
}

func TestResolve_Tier1ShortCircuits(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	contacts := new(mocks.MockContactRepo)

	match := company("Akme Elektrik")
	companies.On("SearchByPattern", mock.Anything, "%Akme%Elektr_k%", 20).
		Return([]domain.Company{match}, nil).Once()

	r := resolver.New(companies, contacts)
	out := r.Resolve(context.Background(), resolver.Input{CompanyName: "Akme Elektrik"}, nil)

	assert.Equal(t, resolver.OutcomeFound, out.Kind)
	require.NotNil(t, out.Company)
	assert.Equal(t, match.ID, out.Company.ID)
	// One query only: tiers 2 and 3 must not run after a tier-1 hit.
	companies.AssertNumberOfCalls(t, "SearchByPattern", 1)
}

func TestResolve_Tier2RunsOnlyAfterTier1Empty(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	contacts := new(mocks.MockContactRepo)

	match := company("Akme Proje")
	// Tier 1: full phrase, empty.
	companies.On("SearchByPattern", mock.Anything, "%Akme%Proje%Grup%", 20).
		Return([]domain.Company{}, nil).Once()
	// Tier 2a: all but last.
	companies.On("SearchByPattern", mock.Anything, "%Akme%Proje%", 10).
		Return([]domain.Company{match}, nil).Once()
	// Tier 2b: first + last, skipping the middle.
	companies.On("SearchByPattern", mock.Anything, "%Akme%Grup%", 10).
		Return([]domain.Company{match}, nil).Once()

	r := resolver.New(companies, contacts)
	out := r.Resolve(context.Background(), resolver.Input{CompanyName: "Akme Proje Grup"}, nil)

	// The same company from both sub-attempts dedupes to a single match.
	assert.Equal(t, resolver.OutcomeFound, out.Kind)
	companies.AssertNumberOfCalls(t, "SearchByPattern", 3)
}

func TestResolve_Tier3FirstWord(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	contacts := new(mocks.MockContactRepo)

	companies.On("SearchByPattern", mock.Anything, "%Akme%Yazmaz%", 20).
		Return([]domain.Company{}, nil).Once()
	companies.On("SearchByPattern", mock.Anything, "%Akme%", 10).
		Return([]domain.Company{}, nil).Once()
	companies.On("SearchByPattern", mock.Anything, "%Akme%", 20).
		Return([]domain.Company{company("Akme Holding")}, nil).Once()

	r := resolver.New(companies, contacts)
	out := r.Resolve(context.Background(), resolver.Input{CompanyName: "Akme Yazmaz"}, nil)

	assert.Equal(t, resolver.OutcomeFound, out.Kind)
	companies.AssertNumberOfCalls(t, "SearchByPattern", 3)
}

func TestResolve_TurkishLettersFoldToWildcards(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	contacts := new(mocks.MockContactRepo)

	companies.On("SearchByPattern", mock.Anything, "%____EK%", 20).
		Return([]domain.Company{company("İçiçek")}, nil).Once()

	r := resolver.New(companies, contacts)
	out := r.Resolve(context.Background(), resolver.Input{CompanyName: "İÇİÇEK"}, nil)

	assert.Equal(t, resolver.OutcomeFound, out.Kind)
}

func TestResolve_MultipleCompanies(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	contacts := new(mocks.MockContactRepo)

	matches := []domain.Company{company("Akme A"), company("Akme B"), company("Akme C")}
	companies.On("SearchByPattern", mock.Anything, "%Akme%", 20).
		Return(matches, nil).Once()

	r := resolver.New(companies, contacts)
	input := resolver.Input{CompanyName: "Akme", PersonName: "Ahmet"}
	out := r.Resolve(context.Background(), input, nil)

	assert.Equal(t, resolver.OutcomeMultipleCompanies, out.Kind)
	require.Len(t, out.Companies, 3)
	assert.Equal(t, matches, out.Companies)
	require.NotNil(t, out.Input)
	assert.Equal(t, input, *out.Input)

	// Disambiguation round trip: forcing one of the candidates yields Found.
	companies.On("GetByID", mock.Anything, matches[1].ID).Return(&matches[1], nil).Once()
	contacts.On("FindLoose", mock.Anything, matches[1].ID, "Ahmet", "Ahmet").
		Return(&domain.Contact{ID: uuid.New(), FirstName: "Ahmet"}, nil).Once()

	forced := r.Resolve(context.Background(), input, &matches[1].ID)
	assert.Equal(t, resolver.OutcomeFound, forced.Kind)
	assert.Equal(t, matches[1].ID, forced.Company.ID)
	require.NotNil(t, forced.Contact)
}

func TestResolve_SingleTokenPersonName(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	contacts := new(mocks.MockContactRepo)

	match := company("Akme")
	companies.On("SearchByPattern", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Company{match}, nil)
	// Single token reused as both first and last name.
	contacts.On("FindLoose", mock.Anything, match.ID, "Ahmet", "Ahmet").
		Return(nil, domain.ErrContactNotFound).Once()

	r := resolver.New(companies, contacts)
	out := r.Resolve(context.Background(), resolver.Input{CompanyName: "Akme", PersonName: "Ahmet"}, nil)

	assert.Equal(t, resolver.OutcomeCompanyFoundPersonNotFound, out.Kind)
	require.NotNil(t, out.Company)
	contacts.AssertExpectations(t)
}

func TestResolve_MultiTokenPersonName(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	contacts := new(mocks.MockContactRepo)

	match := company("Akme")
	found := &domain.Contact{ID: uuid.New(), FirstName: "Ayşe Nur", LastName: "Yılmaz"}
	companies.On("SearchByPattern", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Company{match}, nil)
	contacts.On("FindLoose", mock.Anything, match.ID, "Ayşe Nur", "Yılmaz").
		Return(found, nil).Once()

	r := resolver.New(companies, contacts)
	out := r.Resolve(context.Background(), resolver.Input{CompanyName: "Akme", PersonName: "Ayşe Nur Yılmaz"}, nil)

	assert.Equal(t, resolver.OutcomeFound, out.Kind)
	assert.Equal(t, found.ID, out.Contact.ID)
}

func TestResolve_EmptyInput(t *testing.T) {
	r := resolver.New(new(mocks.MockCompanyRepo), new(mocks.MockContactRepo))
	out := r.Resolve(context.Background(), resolver.Input{}, nil)
	assert.Equal(t, resolver.OutcomeCompanyNotFound, out.Kind)
}

func TestResolve_CompanyNotFoundCarriesInput(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	companies.On("SearchByPattern", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Company{}, nil)

	r := resolver.New(companies, new(mocks.MockContactRepo))
	input := resolver.Input{CompanyName: "Bilinmeyen Firma"}
	out := r.Resolve(context.Background(), input, nil)

	assert.Equal(t, resolver.OutcomeCompanyNotFound, out.Kind)
	require.NotNil(t, out.Input)
	assert.Equal(t, input, *out.Input)
}

func TestResolve_ForcedCompanyMissingIsError(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	id := uuid.New()
	companies.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()

	r := resolver.New(companies, new(mocks.MockContactRepo))
	out := r.Resolve(context.Background(), resolver.Input{}, &id)

	assert.Equal(t, resolver.OutcomeError, out.Kind)
	assert.NotEmpty(t, out.Message)
}

func TestResolve_RepoFailureIsErrorVariant(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	companies.On("SearchByPattern", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	r := resolver.New(companies, new(mocks.MockContactRepo))
	out := r.Resolve(context.Background(), resolver.Input{CompanyName: "Akme"}, nil)

	assert.Equal(t, resolver.OutcomeError, out.Kind)
	assert.Nil(t, out.Company)
}

func TestSplitPersonName(t *testing.T) {
	first, last := resolver.SplitPersonName("Ahmet Yılmaz")
	assert.Equal(t, "Ahmet", first)
	assert.Equal(t, "Yılmaz", last)

	first, last = resolver.SplitPersonName("Ayşe Nur Yılmaz")
	assert.Equal(t, "Ayşe Nur", first)
	assert.Equal(t, "Yılmaz", last)

	first, last = resolver.SplitPersonName("Ahmet")
	assert.Equal(t, "Ahmet", first)
	assert.Equal(t, "Ahmet", last)
}
