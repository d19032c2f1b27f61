package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"teklio/internal/domain"
	"teklio/internal/parser"
	"teklio/internal/port"
	"teklio/internal/resolver"
)

// surnamePlaceholder fills the required last-name column when the parsed
// person name has no usable surname.
const surnamePlaceholder = "-"

// PersistInput is one validated proposal submission.
type PersistInput struct {
	Document *domain.ParsedDocument
	// ForceCompanyID pins the company choice after the caller disambiguated
	// a multiple-match resolution.
	ForceCompanyID *uuid.UUID
	Actor          string
}

// PersistResult reports the stored proposal and the entities it attached to.
// Duplicate marks a double-submit that returned the existing proposal.
type PersistResult struct {
	ProposalID uuid.UUID  `json:"proposal_id"`
	CompanyID  *uuid.UUID `json:"company_id,omitempty"`
	ContactID  *uuid.UUID `json:"contact_id,omitempty"`
	Duplicate  bool       `json:"duplicate,omitempty"`
}

// ProposalService upserts companies and contacts from a parsed document and
// writes the proposal with its items. Writes are best-effort sequential, not
// transactional; the duplicate guard and update-in-place upserts keep
// re-submission safe.
type ProposalService struct {
	companies       port.CompanyRepository
	contacts        port.ContactRepository
	proposals       port.ProposalRepository
	audit           port.AuditRepository
	duplicateWindow time.Duration
}

// NewProposalService creates the persistence orchestrator.
func NewProposalService(
	companies port.CompanyRepository,
	contacts port.ContactRepository,
	proposals port.ProposalRepository,
	audit port.AuditRepository,
	duplicateWindow time.Duration,
) *ProposalService {
	if duplicateWindow <= 0 {
		duplicateWindow = 2 * time.Minute
	}
	return &ProposalService{
		companies:       companies,
		contacts:        contacts,
		proposals:       proposals,
		audit:           audit,
		duplicateWindow: duplicateWindow,
	}
}

// Persist runs the full write sequence: company upsert, contact upsert,
// duplicate guard, proposal header, items, audit event.
func (s *ProposalService) Persist(ctx context.Context, input PersistInput) (*PersistResult, error) {
	doc := input.Document
	if doc == nil {
		return nil, fmt.Errorf("service.ProposalService.Persist: nil document")
	}

	// Submitted documents may have been hand-edited after parsing; rerun the
	// consistency rules so the stored total is the item sum and the duplicate
	// guard never compares against a stale header figure.
	parser.Normalize(doc)

	company, err := s.upsertCompany(ctx, doc, input.ForceCompanyID)
	if err != nil {
		return nil, err
	}
	var companyID *uuid.UUID
	if company != nil {
		companyID = &company.ID
	}

	contact, err := s.upsertContact(ctx, doc, companyID)
	if err != nil {
		return nil, err
	}
	var contactID *uuid.UUID
	if contact != nil {
		contactID = &contact.ID
	}

	total := decimal.NewFromFloat(doc.Proposal.TotalAmount)

	// Double-submit guard: same total, same company and/or contact, inside
	// the window. A heuristic against UI double-clicks, not a lock.
	if companyID != nil || contactID != nil {
		since := time.Now().UTC().Add(-s.duplicateWindow)
		existing, err := s.proposals.FindRecentDuplicate(ctx, companyID, contactID, total, since)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			log.Printf("service.ProposalService: duplicate submission, returning proposal %s", existing.ID)
			return &PersistResult{
				ProposalID: existing.ID,
				CompanyID:  existing.CompanyID,
				ContactID:  existing.ContactID,
				Duplicate:  true,
			}, nil
		}
	}

	proposal := &domain.Proposal{
		CompanyID:   companyID,
		ContactID:   contactID,
		Currency:    doc.Proposal.Currency,
		TotalAmount: total,
		VATRate:     decimalOrZero(doc.Proposal.VATRate),
		VATAmount:   decimalOrZero(doc.Proposal.VATAmount),
		GrandTotal:  decimalOrZero(doc.Proposal.GrandTotal),
		Status:      domain.ProposalStatusDraft,
		CreatedBy:   input.Actor,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, err
	}

	items := make([]domain.ProposalItem, 0, len(doc.Proposal.Items))
	for _, li := range doc.Proposal.Items {
		items = append(items, toProposalItem(li))
	}
	if err := s.proposals.InsertItems(ctx, proposal.ID, items); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, proposal, companyID, input.Actor, doc)

	return &PersistResult{
		ProposalID: proposal.ID,
		CompanyID:  companyID,
		ContactID:  contactID,
	}, nil
}

// upsertCompany resolves the target company: forced ID, case-insensitive
// exact-name match with a contact-info merge, or a fresh insert. Returns nil
// when the document names no company at all.
func (s *ProposalService) upsertCompany(ctx context.Context, doc *domain.ParsedDocument, forceID *uuid.UUID) (*domain.Company, error) {
	if forceID != nil {
		company, err := s.companies.GetByID(ctx, *forceID)
		if err != nil {
			return nil, fmt.Errorf("looking up selected company: %w", err)
		}
		s.patchCompany(ctx, company, doc)
		return company, nil
	}

	name := strings.TrimSpace(doc.Company.Name)
	if name == "" {
		return nil, nil
	}

	company, err := s.companies.GetByNameExact(ctx, name)
	if err == nil {
		s.patchCompany(ctx, company, doc)
		return company, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	ci := doc.Company.ContactInfo
	company = &domain.Company{
		Name:        name,
		TaxID:       ci.Extra["tax_id"],
		TaxOffice:   ci.Extra["tax_office"],
		Address:     ci.Address,
		Phone:       ci.Phone,
		Email:       ci.Email,
		Website:     ci.Extra["website"],
		ContactInfo: ci,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// patchCompany merges fresh contact info into an existing company record and
// promotes structured fields onto their dedicated columns. Update failures
// are logged, not fatal: the stale record still serves the import.
func (s *ProposalService) patchCompany(ctx context.Context, company *domain.Company, doc *domain.ParsedDocument) {
	ci := doc.Company.ContactInfo
	if ci.IsZero() {
		return
	}
	company.ContactInfo.Merge(ci)
	if ci.Address != "" {
		company.Address = ci.Address
	}
	if ci.Phone != "" {
		company.Phone = ci.Phone
	}
	if ci.Email != "" {
		company.Email = ci.Email
	}
	if v := ci.Extra["tax_id"]; v != "" {
		company.TaxID = v
	}
	if v := ci.Extra["tax_office"]; v != "" {
		company.TaxOffice = v
	}
	if v := ci.Extra["website"]; v != "" {
		company.Website = v
	}
	if err := s.companies.Update(ctx, company); err != nil {
		log.Printf("service.ProposalService: company patch failed for %s: %v", company.ID, err)
	}
}

// upsertContact finds or creates the contact person. Lookup priority: exact
// email, then first+last name scoped to the company, then unscoped.
func (s *ProposalService) upsertContact(ctx context.Context, doc *domain.ParsedDocument, companyID *uuid.UUID) (*domain.Contact, error) {
	person := doc.Person
	if person == nil {
		return nil, nil
	}
	name := strings.TrimSpace(person.Name)
	if name == "" && person.Email == "" {
		return nil, nil
	}

	first, last := resolver.SplitPersonName(name)

	contact, err := s.findContact(ctx, person, companyID, first, last)
	if err != nil {
		return nil, err
	}
	if contact != nil {
		s.patchContact(ctx, contact, person, companyID)
		return contact, nil
	}

	if last == "" {
		last = surnamePlaceholder
	}
	contact = &domain.Contact{
		CompanyID: companyID,
		FirstName: first,
		LastName:  last,
		Email:     person.Email,
		Phone:     person.Phone,
		Title:     person.Title,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ProposalService) findContact(ctx context.Context, person *domain.PersonInfo, companyID *uuid.UUID, first, last string) (*domain.Contact, error) {
	if person.Email != "" {
		contact, err := s.contacts.GetByEmail(ctx, person.Email)
		if err == nil {
			return contact, nil
		}
		if !errors.Is(err, domain.ErrContactNotFound) {
			return nil, err
		}
	}
	if first == "" {
		return nil, nil
	}
	if companyID != nil {
		contact, err := s.contacts.GetByName(ctx, companyID, first, last)
		if err == nil {
			return contact, nil
		}
		if !errors.Is(err, domain.ErrContactNotFound) {
			return nil, err
		}
	}
	contact, err := s.contacts.GetByName(ctx, nil, first, last)
	if err == nil {
		return contact, nil
	}
	if !errors.Is(err, domain.ErrContactNotFound) {
		return nil, err
	}
	return nil, nil
}

// patchContact backfills email/phone/title and attaches the company when the
// contact was floating. Like patchCompany, failures are logged only.
func (s *ProposalService) patchContact(ctx context.Context, contact *domain.Contact, person *domain.PersonInfo, companyID *uuid.UUID) {
	changed := false
	if person.Email != "" && contact.Email != person.Email {
		contact.Email = person.Email
		changed = true
	}
	if person.Phone != "" && contact.Phone != person.Phone {
		contact.Phone = person.Phone
		changed = true
	}
	if person.Title != "" && contact.Title != person.Title {
		contact.Title = person.Title
		changed = true
	}
	if companyID != nil && contact.CompanyID == nil {
		contact.CompanyID = companyID
		changed = true
	}
	if !changed {
		return
	}
	if err := s.contacts.Update(ctx, contact); err != nil {
		log.Printf("service.ProposalService: contact patch failed for %s: %v", contact.ID, err)
	}
}

// writeAudit records the import event with a snapshot of the submitted data.
// Best-effort: a failed audit write never fails the import.
func (s *ProposalService) writeAudit(ctx context.Context, proposal *domain.Proposal, companyID *uuid.UUID, actor string, doc *domain.ParsedDocument) {
	snapshot, err := json.Marshal(doc)
	if err != nil {
		log.Printf("service.ProposalService: audit snapshot marshal failed: %v", err)
		snapshot = []byte("{}")
	}
	entry := &domain.AuditEntry{
		Action:    domain.AuditProposalImported,
		EntityID:  proposal.ID,
		CompanyID: companyID,
		Actor:     actor,
		Snapshot:  snapshot,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		log.Printf("service.ProposalService: audit write failed for %s: %v", proposal.ID, err)
	}
}

func toProposalItem(li domain.LineItem) domain.ProposalItem {
	item := domain.ProposalItem{
		Description: li.Description,
		IsHeader:    li.IsHeader,
	}
	if li.IsHeader {
		// Section labels keep every numeric column NULL.
		return item
	}
	qty := decimal.NewFromFloat(li.Quantity)
	item.Quantity = &qty
	item.Unit = li.Unit
	item.UnitPrice = decimalPtr(li.UnitPrice)
	item.TotalPrice = decimalPtr(li.TotalPrice)
	item.Width = decimalPtr(li.Width)
	item.Length = decimalPtr(li.Length)
	item.Watt = decimalPtr(li.Watt)
	item.PieceCount = li.PieceCount
	item.Kelvin = li.Kelvin
	item.Lumen = li.Lumen
	if len(li.Attributes) > 0 {
		item.Attributes = domain.Attributes(li.Attributes)
	}
	return item
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func decimalOrZero(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}
