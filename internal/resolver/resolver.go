package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"teklio/internal/domain"
	"teklio/internal/port"
)

const (
	fullPhraseCap = 20
	partialCap    = 10
	singleWordCap = 20
	ambiguousCap  = 20

	minSingleWordLen = 3
)

// OutcomeKind tags the resolution result variant.
type OutcomeKind string

const (
	OutcomeFound                      OutcomeKind = "found"
	OutcomeMultipleCompanies          OutcomeKind = "multiple_companies"
	OutcomeCompanyFoundPersonNotFound OutcomeKind = "company_found_person_not_found"
	OutcomeCompanyNotFound            OutcomeKind = "company_not_found"
	OutcomeError                      OutcomeKind = "error"
)

// Input is the raw extracted name pair handed to resolution. Either field may
// be empty.
type Input struct {
	CompanyName string `json:"company_name"`
	PersonName  string `json:"person_name"`
}

// Outcome is the resolution result. Exactly one variant applies, tagged by
// Kind; the payload fields are populated per variant and zero otherwise.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Found / CompanyFoundPersonNotFound
	Company *domain.Company `json:"company,omitempty"`
	Contact *domain.Contact `json:"contact,omitempty"`

	// MultipleCompanies: candidates in the store's native order, capped.
	Companies []domain.Company `json:"companies,omitempty"`

	// MultipleCompanies / CompanyFoundPersonNotFound / CompanyNotFound
	Input *Input `json:"input,omitempty"`

	// Error
	Message string `json:"message,omitempty"`
}

// Resolver disambiguates extracted company and person names against the
// customer database. Stateless; every call recomputes from the store.
type Resolver struct {
	companies port.CompanyRepository
	contacts  port.ContactRepository
}

// New creates a Resolver over the company and contact repositories.
func New(companies port.CompanyRepository, contacts port.ContactRepository) *Resolver {
	return &Resolver{companies: companies, contacts: contacts}
}

// Resolve runs the tiered company search and, when a company is selected, the
// contact search. A non-nil forceCompanyID skips the search and selects that
// company directly; a missing forced company is an error variant, not a
// not-found, because the caller explicitly asked for it.
func (r *Resolver) Resolve(ctx context.Context, input Input, forceCompanyID *uuid.UUID) Outcome {
	if forceCompanyID != nil {
		company, err := r.companies.GetByID(ctx, *forceCompanyID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errorOutcome(fmt.Sprintf("selected company %s no longer exists", forceCompanyID))
			}
			log.Printf("resolver.Resolver: forced company lookup failed: %v", err)
			return errorOutcome("company lookup failed")
		}
		return r.resolveContact(ctx, company, input)
	}

	companyName := strings.TrimSpace(input.CompanyName)
	personName := strings.TrimSpace(input.PersonName)
	if companyName == "" && personName == "" {
		return Outcome{Kind: OutcomeCompanyNotFound, Input: &input}
	}
	if companyName == "" {
		// A person name alone cannot select a company.
		return Outcome{Kind: OutcomeCompanyNotFound, Input: &input}
	}

	matches, err := r.searchCompany(ctx, companyName)
	if err != nil {
		log.Printf("resolver.Resolver: company search failed: %v", err)
		return errorOutcome("company search failed")
	}

	switch len(matches) {
	case 0:
		return Outcome{Kind: OutcomeCompanyNotFound, Input: &input}
	case 1:
		return r.resolveContact(ctx, &matches[0], input)
	default:
		if len(matches) > ambiguousCap {
			matches = matches[:ambiguousCap]
		}
		return Outcome{Kind: OutcomeMultipleCompanies, Companies: matches, Input: &input}
	}
}

// searchCompany runs the three-tier waterfall. Each tier runs only when the
// previous produced zero matches.
func (r *Resolver) searchCompany(ctx context.Context, name string) ([]domain.Company, error) {
	words := strings.Fields(name)
	if len(words) == 0 {
		return nil, nil
	}

	// Tier 1: all words in order.
	matches, err := r.companies.SearchByPattern(ctx, wildcardPattern(words), fullPhraseCap)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches, nil
	}

	// Tier 2: drop the last word, then first+last skipping the middle.
	// "All but the first" is deliberately skipped: generic trailing words
	// ("Proje Yönetimi" and friends) flood the match set.
	if len(words) >= 2 {
		attempts := [][]string{words[:len(words)-1]}
		if len(words) >= 3 {
			attempts = append(attempts, []string{words[0], words[len(words)-1]})
		}
		var accumulated []domain.Company
		seen := make(map[uuid.UUID]bool)
		for _, attempt := range attempts {
			found, err := r.companies.SearchByPattern(ctx, wildcardPattern(attempt), partialCap)
			if err != nil {
				return nil, err
			}
			for _, c := range found {
				if !seen[c.ID] {
					seen[c.ID] = true
					accumulated = append(accumulated, c)
				}
			}
		}
		if len(accumulated) > 0 {
			return accumulated, nil
		}
	}

	// Tier 3: first word alone, if long enough to be selective.
	if len([]rune(words[0])) >= minSingleWordLen {
		return r.companies.SearchByPattern(ctx, wildcardPattern(words[:1]), singleWordCap)
	}

	return nil, nil
}

// resolveContact narrows a selected company down to a contact. Without a
// person name the company alone is a complete answer.
func (r *Resolver) resolveContact(ctx context.Context, company *domain.Company, input Input) Outcome {
	personName := strings.TrimSpace(input.PersonName)
	if personName == "" {
		return Outcome{Kind: OutcomeFound, Company: company}
	}

	first, last := SplitPersonName(personName)
	contact, err := r.contacts.FindLoose(ctx, company.ID, first, last)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Outcome{Kind: OutcomeCompanyFoundPersonNotFound, Company: company, Input: &input}
		}
		log.Printf("resolver.Resolver: contact search failed: %v", err)
		return errorOutcome("contact search failed")
	}
	return Outcome{Kind: OutcomeFound, Company: company, Contact: contact}
}

// SplitPersonName splits a full name into given name and surname: the last
// token is the surname, the rest the given name. A single token is reused for
// both so loose matching can hit either column.
func SplitPersonName(name string) (first, last string) {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], tokens[0]
	default:
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
}

func errorOutcome(msg string) Outcome {
	return Outcome{Kind: OutcomeError, Message: msg}
}
