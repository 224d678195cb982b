package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/clients/gotenberg"
	redisclient "github.com/casalivre/casalivre-backend/internal/clients/redis"
	"github.com/casalivre/casalivre-backend/internal/lifecycle"
	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/numbering"
	"github.com/casalivre/casalivre-backend/internal/repos"
	"github.com/casalivre/casalivre-backend/internal/templates"
	"github.com/casalivre/casalivre-backend/internal/templating"
	"github.com/casalivre/casalivre-backend/internal/types"
)

// IncompleteDataError is the hard gate of generation: the assembled data is
// missing values the template declares as expected. Distinct from the
// advisory template lint, which never blocks anything.
type IncompleteDataError struct {
	DocumentType string
	MissingPaths []string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("dados incompletos para o template %s: %s", e.DocumentType, strings.Join(e.MissingPaths, ", "))
}

type GenerateInput struct {
	Type                  string
	ContratoID            *uuid.UUID
	ImovelID              *uuid.UUID
	LocatarioID           *uuid.UUID
	LocadorID             *uuid.UUID
	FiadorID              *uuid.UUID
	ParcelaID             *uuid.UUID
	CustomData            templating.Data
	RequiresSignature     *bool
	SignatureDeadlineDays *int
	GeneratedBy           string
}

type SignerInput struct {
	Name  string
	Email string
	CPF   string
	Role  string
	Order int
}

// PDFRenderer is the narrow boundary to the external rendering engine.
// *gotenberg.Client satisfies it.
type PDFRenderer interface {
	Render(ctx context.Context, html string, opts gotenberg.RenderOptions) ([]byte, error)
}

type DocumentService interface {
	Generate(ctx context.Context, in GenerateInput) (*types.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Document, error)
	Finalize(ctx context.Context, id uuid.UUID) (*types.Document, error)
	Send(ctx context.Context, id uuid.UUID, signers []SignerInput) (*types.Document, []*types.DocumentSignature, error)
	RegisterSignature(ctx context.Context, signatureID uuid.UUID, ip string) (*types.Document, error)
	RefuseSignature(ctx context.Context, signatureID uuid.UUID, reason string) (*types.Document, error)
	Cancel(ctx context.Context, id uuid.UUID, cancelledBy, reason string) (*types.Document, error)
	ExpireSweep(ctx context.Context, now time.Time) (int, error)
	RenderPDF(ctx context.Context, id uuid.UUID, opts gotenberg.RenderOptions) ([]byte, error)
	LintTemplates() map[string]templating.ValidationResult
}

type documentService struct {
	db            *gorm.DB
	log           *logger.Logger
	registry      *templates.Registry
	dataFetch     DataFetchService
	documentRepo  repos.DocumentRepo
	signatureRepo repos.DocumentSignatureRepo
	counterRepo   repos.DocumentCounterRepo
	notifier      redisclient.SignatureNotifier
	pdf           PDFRenderer
}

func NewDocumentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	registry *templates.Registry,
	dataFetch DataFetchService,
	documentRepo repos.DocumentRepo,
	signatureRepo repos.DocumentSignatureRepo,
	counterRepo repos.DocumentCounterRepo,
	notifier redisclient.SignatureNotifier,
	pdf PDFRenderer,
) DocumentService {
	serviceLog := baseLog.With("service", "DocumentService")
	return &documentService{
		db:            db,
		log:           serviceLog,
		registry:      registry,
		dataFetch:     dataFetch,
		documentRepo:  documentRepo,
		signatureRepo: signatureRepo,
		counterRepo:   counterRepo,
		notifier:      notifier,
		pdf:           pdf,
	}
}

func (s *documentService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// Generate assembles data, renders the template and persists the document in
// draft. The document number is assigned later, at finalize time, inside the
// same transaction that advances the counter.
func (s *documentService) Generate(ctx context.Context, in GenerateInput) (*types.Document, error) {
	def, err := s.registry.Get(in.Type)
	if err != nil {
		return nil, err
	}

	data := in.CustomData
	if data == nil {
		assembled, err := s.dataFetch.Assemble(ctx, AssembleInput{
			ContratoID:  in.ContratoID,
			ImovelID:    in.ImovelID,
			LocatarioID: in.LocatarioID,
			LocadorID:   in.LocadorID,
			FiadorID:    in.FiadorID,
			ParcelaID:   in.ParcelaID,
		})
		if err != nil {
			return nil, err
		}
		data = assembled
	}

	now := time.Now()
	// Emission dates are stamped even over caller-supplied data.
	data["data_emissao"] = now.Format("2006-01-02")
	data["data_geracao"] = now.Format(time.RFC3339)

	// Strict gate: only paths the template declares. Undeclared paths used in
	// the template render leniently as empty.
	var missing []string
	for _, path := range def.ExpectedPaths {
		if v, ok := templating.Lookup(data, path); !ok || v == nil {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteDataError{DocumentType: in.Type, MissingPaths: missing}
	}

	html, err := templating.Interpolate(def.Source, data)
	if err != nil {
		return nil, fmt.Errorf("interpolate template %s: %w", in.Type, err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal document payload: %w", err)
	}

	requiresSignature := def.RequiresSignature
	if in.RequiresSignature != nil {
		requiresSignature = *in.RequiresSignature
	}
	deadlineDays := def.DefaultDeadlineDays
	if in.SignatureDeadlineDays != nil {
		deadlineDays = *in.SignatureDeadlineDays
	}

	doc := &types.Document{
		ID:                uuid.New(),
		Type:              def.Type,
		TemplateVersion:   def.Version,
		Status:            lifecycle.StatusDraft,
		RenderedHTML:      html,
		Payload:           datatypes.JSON(payload),
		ContratoID:        in.ContratoID,
		ImovelID:          in.ImovelID,
		LocatarioID:       in.LocatarioID,
		FiadorID:          in.FiadorID,
		ParcelaID:         in.ParcelaID,
		RequiresSignature: requiresSignature,
		GeneratedBy:       in.GeneratedBy,
		GeneratedAt:       now,
	}
	if requiresSignature && deadlineDays > 0 {
		doc.SignatureDeadlineDays = &deadlineDays
		deadline := now.AddDate(0, 0, deadlineDays)
		doc.SignatureDeadlineAt = &deadline
	}

	if _, err := s.documentRepo.Create(ctx, nil, doc); err != nil {
		s.log.Error("Generate failed to persist draft", "type", in.Type, "error", err)
		return nil, fmt.Errorf("create document: %w", err)
	}
	s.log.Info("Document generated", "document_id", doc.ID, "type", doc.Type)
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*types.Document, error) {
	return s.documentRepo.GetByIDWithSignatures(ctx, nil, id)
}

// Finalize issues the document number and moves draft -> generated. Number
// issuance and the status change commit together; a crash in between rolls
// both back, so a number is never burned on an unpersisted document.
func (s *documentService) Finalize(ctx context.Context, id uuid.UUID) (*types.Document, error) {
	var doc *types.Document
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		doc, err = s.documentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		now := time.Now()
		year := now.Year()

		counter, err := s.counterRepo.Get(ctx, tx, doc.Type, year)
		if err != nil {
			return fmt.Errorf("load counter: %w", err)
		}
		last := ""
		if counter != nil {
			last = counter.LastNumber
		}
		number, err := numbering.Next(doc.Type, last, year)
		if err != nil {
			return err
		}

		if err := lifecycle.Finalize(doc, number, now); err != nil {
			return err
		}
		if doc.RequiresSignature && doc.SignatureDeadlineDays != nil {
			deadline := now.AddDate(0, 0, *doc.SignatureDeadlineDays)
			doc.SignatureDeadlineAt = &deadline
		}

		if counter == nil {
			counter = &types.DocumentCounter{
				ID:           uuid.New(),
				DocumentType: doc.Type,
				Year:         year,
				LastNumber:   number,
			}
		} else {
			counter.LastNumber = number
		}
		if err := s.counterRepo.Save(ctx, tx, counter); err != nil {
			return fmt.Errorf("save counter: %w", err)
		}
		if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Document finalized", "document_id", doc.ID, "number", *doc.DocumentNumber)
	return doc, nil
}

// Send moves generated -> sent and creates one pending signature request per
// signer. Notifications go out after commit, best effort.
func (s *documentService) Send(ctx context.Context, id uuid.UUID, signers []SignerInput) (*types.Document, []*types.DocumentSignature, error) {
	if len(signers) == 0 {
		return nil, nil, fmt.Errorf("at least one signer required")
	}
	var (
		doc  *types.Document
		sigs []*types.DocumentSignature
	)
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		doc, err = s.documentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		now := time.Now()
		if err := lifecycle.Send(doc, now); err != nil {
			return err
		}
		sigs = make([]*types.DocumentSignature, len(signers))
		for i, signer := range signers {
			order := signer.Order
			if order == 0 {
				order = i + 1
			}
			sigs[i] = &types.DocumentSignature{
				ID:             uuid.New(),
				DocumentID:     doc.ID,
				SignerName:     signer.Name,
				SignerEmail:    signer.Email,
				SignerCPF:      signer.CPF,
				SignerRole:     signer.Role,
				SignOrder:      order,
				Status:         lifecycle.SignaturePending,
				SignatureToken: uuid.New().String(),
			}
		}
		if _, err := s.signatureRepo.Create(ctx, tx, sigs); err != nil {
			return fmt.Errorf("create signature requests: %w", err)
		}
		if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifySigners(ctx, doc, sigs)
	s.log.Info("Document sent", "document_id", doc.ID, "signers", len(sigs))
	return doc, sigs, nil
}

func (s *documentService) notifySigners(ctx context.Context, doc *types.Document, sigs []*types.DocumentSignature) {
	if s.notifier == nil {
		return
	}
	def, err := s.registry.Get(doc.Type)
	name := doc.Type
	if err == nil {
		name = def.Name
	}
	number := ""
	if doc.DocumentNumber != nil {
		number = *doc.DocumentNumber
	}
	deadline := ""
	if doc.SignatureDeadlineAt != nil {
		deadline = doc.SignatureDeadlineAt.Format(time.RFC3339)
	}
	for _, sig := range sigs {
		notification := redisclient.SignatureNotification{
			DocumentID:     doc.ID.String(),
			DocumentNumber: number,
			DocumentName:   name,
			SignatureID:    sig.ID.String(),
			SignerName:     sig.SignerName,
			SignerEmail:    sig.SignerEmail,
			SignerRole:     sig.SignerRole,
			SignatureToken: sig.SignatureToken,
			DeadlineAt:     deadline,
		}
		if err := s.notifier.Publish(ctx, notification); err != nil {
			s.log.Warn("Signature notification failed", "signature_id", sig.ID, "error", err)
		}
	}
}

func (s *documentService) RegisterSignature(ctx context.Context, signatureID uuid.UUID, ip string) (*types.Document, error) {
	return s.applySignatureEvent(ctx, signatureID, func(sig *types.DocumentSignature, now time.Time) error {
		return lifecycle.SignRequest(sig, ip, sig.SignatureToken, now)
	})
}

func (s *documentService) RefuseSignature(ctx context.Context, signatureID uuid.UUID, reason string) (*types.Document, error) {
	return s.applySignatureEvent(ctx, signatureID, func(sig *types.DocumentSignature, now time.Time) error {
		return lifecycle.RefuseRequest(sig, reason, now)
	})
}

func (s *documentService) applySignatureEvent(ctx context.Context, signatureID uuid.UUID, event func(*types.DocumentSignature, time.Time) error) (*types.Document, error) {
	var doc *types.Document
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		sig, err := s.signatureRepo.GetByID(ctx, tx, signatureID)
		if err != nil {
			return fmt.Errorf("load signature request: %w", err)
		}
		doc, err = s.documentRepo.GetByID(ctx, tx, sig.DocumentID)
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		now := time.Now()
		if err := event(sig, now); err != nil {
			return err
		}
		if err := s.signatureRepo.Update(ctx, tx, sig); err != nil {
			return fmt.Errorf("update signature request: %w", err)
		}
		all, err := s.signatureRepo.GetByDocumentID(ctx, tx, doc.ID)
		if err != nil {
			return fmt.Errorf("load signature set: %w", err)
		}
		if err := lifecycle.ApplySignatureProgress(doc, all, now); err != nil {
			return err
		}
		if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Cancel(ctx context.Context, id uuid.UUID, cancelledBy, reason string) (*types.Document, error) {
	var doc *types.Document
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var err error
		doc, err = s.documentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		if err := lifecycle.Cancel(doc, cancelledBy, reason, time.Now()); err != nil {
			return err
		}
		return s.documentRepo.Update(ctx, tx, doc)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Document cancelled", "document_id", doc.ID, "by", cancelledBy)
	return doc, nil
}

// ExpireSweep expires every sent/partially_signed document past its deadline
// along with its still-pending signature requests. Safe to run repeatedly.
func (s *documentService) ExpireSweep(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.documentRepo.ListPastDeadline(ctx, nil, now)
	if err != nil {
		return 0, fmt.Errorf("list expirable documents: %w", err)
	}
	expired := 0
	for _, candidate := range candidates {
		candidate := candidate
		err := s.inTx(ctx, func(tx *gorm.DB) error {
			changed, err := lifecycle.Expire(candidate, now)
			if err != nil || !changed {
				return err
			}
			sigs, err := s.signatureRepo.GetByDocumentID(ctx, tx, candidate.ID)
			if err != nil {
				return fmt.Errorf("load signature set: %w", err)
			}
			for _, sig := range sigs {
				if lifecycle.ExpireRequest(sig) {
					if err := s.signatureRepo.Update(ctx, tx, sig); err != nil {
						return fmt.Errorf("expire signature request: %w", err)
					}
				}
			}
			if err := s.documentRepo.Update(ctx, tx, candidate); err != nil {
				return fmt.Errorf("update document: %w", err)
			}
			expired++
			return nil
		})
		if err != nil {
			s.log.Error("Expire sweep failed for document", "document_id", candidate.ID, "error", err)
			return expired, err
		}
	}
	if expired > 0 {
		s.log.Info("Expire sweep finished", "expired", expired)
	}
	return expired, nil
}

func (s *documentService) RenderPDF(ctx context.Context, id uuid.UUID, opts gotenberg.RenderOptions) ([]byte, error) {
	doc, err := s.documentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if strings.TrimSpace(doc.RenderedHTML) == "" {
		return nil, fmt.Errorf("document %s has no rendered html", doc.ID)
	}
	return s.pdf.Render(ctx, doc.RenderedHTML, opts)
}

// LintTemplates runs the variable lint over the whole registry. Findings are
// advisory; they never block generation.
func (s *documentService) LintTemplates() map[string]templating.ValidationResult {
	results := make(map[string]templating.ValidationResult)
	for _, def := range s.registry.All() {
		results[def.Type] = templating.Validate(def.Source, def.ExpectedPaths)
	}
	return results
}
