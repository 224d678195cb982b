package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/clients/gotenberg"
	redisclient "github.com/casalivre/casalivre-backend/internal/clients/redis"
	"github.com/casalivre/casalivre-backend/internal/lifecycle"
	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/templates"
	"github.com/casalivre/casalivre-backend/internal/templating"
	"github.com/casalivre/casalivre-backend/internal/types"
)

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*types.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*types.Document{}}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, tx *gorm.DB, doc *types.Document) (*types.Document, error) {
	r.docs[doc.ID] = doc
	return doc, nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, gorm.ErrRecordNotFound)
	}
	return doc, nil
}

func (r *fakeDocumentRepo) GetByIDWithSignatures(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error) {
	return r.GetByID(ctx, tx, id)
}

func (r *fakeDocumentRepo) Update(ctx context.Context, tx *gorm.DB, doc *types.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) ListPastDeadline(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.Document, error) {
	var out []*types.Document
	for _, doc := range r.docs {
		if doc.Status != lifecycle.StatusSent && doc.Status != lifecycle.StatusPartiallySigned {
			continue
		}
		if doc.SignatureDeadlineAt == nil || !doc.SignatureDeadlineAt.Before(now) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

type fakeCounterRepo struct {
	counters map[string]*types.DocumentCounter
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counters: map[string]*types.DocumentCounter{}}
}

func counterKey(docType string, year int) string {
	return fmt.Sprintf("%s-%d", docType, year)
}

func (r *fakeCounterRepo) Get(ctx context.Context, tx *gorm.DB, docType string, year int) (*types.DocumentCounter, error) {
	return r.counters[counterKey(docType, year)], nil
}

func (r *fakeCounterRepo) Save(ctx context.Context, tx *gorm.DB, counter *types.DocumentCounter) error {
	r.counters[counterKey(counter.DocumentType, counter.Year)] = counter
	return nil
}

type fakeSignatureRepo struct {
	sigs map[uuid.UUID]*types.DocumentSignature
}

func newFakeSignatureRepo() *fakeSignatureRepo {
	return &fakeSignatureRepo{sigs: map[uuid.UUID]*types.DocumentSignature{}}
}

func (r *fakeSignatureRepo) Create(ctx context.Context, tx *gorm.DB, sigs []*types.DocumentSignature) ([]*types.DocumentSignature, error) {
	for _, sig := range sigs {
		r.sigs[sig.ID] = sig
	}
	return sigs, nil
}

func (r *fakeSignatureRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DocumentSignature, error) {
	sig, ok := r.sigs[id]
	if !ok {
		return nil, fmt.Errorf("signature %s: %w", id, gorm.ErrRecordNotFound)
	}
	return sig, nil
}

func (r *fakeSignatureRepo) GetByDocumentID(ctx context.Context, tx *gorm.DB, documentID uuid.UUID) ([]*types.DocumentSignature, error) {
	var out []*types.DocumentSignature
	for _, sig := range r.sigs {
		if sig.DocumentID == documentID {
			out = append(out, sig)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SignOrder < out[j].SignOrder })
	return out, nil
}

func (r *fakeSignatureRepo) Update(ctx context.Context, tx *gorm.DB, sig *types.DocumentSignature) error {
	r.sigs[sig.ID] = sig
	return nil
}

type fakeNotifier struct {
	published []redisclient.SignatureNotification
}

func (n *fakeNotifier) Publish(ctx context.Context, notification redisclient.SignatureNotification) error {
	n.published = append(n.published, notification)
	return nil
}

func (n *fakeNotifier) Close() error { return nil }

type fakePDFRenderer struct {
	lastHTML string
}

func (p *fakePDFRenderer) Render(ctx context.Context, html string, opts gotenberg.RenderOptions) ([]byte, error) {
	p.lastHTML = html
	return []byte("%PDF-1.7 fake"), nil
}

type staticDataFetch struct {
	data templating.Data
	err  error
}

func (s *staticDataFetch) Assemble(ctx context.Context, in AssembleInput) (templating.Data, error) {
	return s.data, s.err
}

type documentFixture struct {
	svc       DocumentService
	docRepo   *fakeDocumentRepo
	sigRepo   *fakeSignatureRepo
	counters  *fakeCounterRepo
	notifier  *fakeNotifier
	pdf       *fakePDFRenderer
	dataFetch *staticDataFetch
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	registry, err := templates.New()
	if err != nil {
		t.Fatalf("templates.New: %v", err)
	}
	f := &documentFixture{
		docRepo:  newFakeDocumentRepo(),
		sigRepo:  newFakeSignatureRepo(),
		counters: newFakeCounterRepo(),
		notifier: &fakeNotifier{},
		pdf:      &fakePDFRenderer{},
		dataFetch: &staticDataFetch{data: templating.Data{
			"locatario":    map[string]any{"nome": "Maria Souza", "cpf": "12345678901"},
			"proprietario": map[string]any{"nome": "João Pereira"},
			"locador":      map[string]any{"nome": "João Pereira"},
			"imovel":       map[string]any{"endereco": "Rua das Flores, 120", "cidade": "Curitiba"},
			"contrato":     map[string]any{"data_inicio": "2026-03-01"},
		}},
	}
	f.svc = NewDocumentService(nil, log, registry, f.dataFetch, f.docRepo, f.sigRepo, f.counters, f.notifier, f.pdf)
	return f
}

var numberPattern = regexp.MustCompile(`^[A-Z][0-9]{1,2}-\d{4}-\d{5}$`)

func TestGenerateProducesDraftWithRenderedHTML(t *testing.T) {
	f := newDocumentFixture(t)

	doc, err := f.svc.Generate(context.Background(), GenerateInput{Type: "D3", GeneratedBy: "admin@casalivre.com"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if doc.Status != lifecycle.StatusDraft {
		t.Fatalf("status: want=%q got=%q", lifecycle.StatusDraft, doc.Status)
	}
	if doc.DocumentNumber != nil {
		t.Fatalf("draft must not carry a document number, got %q", *doc.DocumentNumber)
	}
	if !strings.Contains(doc.RenderedHTML, "Maria Souza") {
		t.Fatalf("rendered html missing tenant name:\n%s", doc.RenderedHTML)
	}
	if !strings.Contains(doc.RenderedHTML, "João Pereira") {
		t.Fatalf("rendered html missing landlord name:\n%s", doc.RenderedHTML)
	}
	if !doc.RequiresSignature {
		t.Fatalf("D3 must require signature by default")
	}
	if doc.SignatureDeadlineDays == nil || *doc.SignatureDeadlineDays != 7 {
		t.Fatalf("deadline days: want=7 got=%v", doc.SignatureDeadlineDays)
	}
}

func TestGenerateUnknownTypeFails(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.svc.Generate(context.Background(), GenerateInput{Type: "D99", GeneratedBy: "admin"})
	if !errors.Is(err, templates.ErrTemplateNotFound) {
		t.Fatalf("want ErrTemplateNotFound, got %v", err)
	}
}

func TestGenerateIncompleteDataRejected(t *testing.T) {
	f := newDocumentFixture(t)
	f.dataFetch.data = templating.Data{
		"locatario": map[string]any{"nome": "Maria Souza"},
	}

	_, err := f.svc.Generate(context.Background(), GenerateInput{Type: "D3", GeneratedBy: "admin"})
	var incomplete *IncompleteDataError
	if !errors.As(err, &incomplete) {
		t.Fatalf("want IncompleteDataError, got %v", err)
	}
	found := false
	for _, path := range incomplete.MissingPaths {
		if path == "proprietario.nome" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing paths should include proprietario.nome, got %v", incomplete.MissingPaths)
	}
}

func TestGenerateStampsEmissionDates(t *testing.T) {
	f := newDocumentFixture(t)

	doc, err := f.svc.Generate(context.Background(), GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	payload := string(doc.Payload)
	if !strings.Contains(payload, `"data_emissao"`) || !strings.Contains(payload, `"data_geracao"`) {
		t.Fatalf("payload missing stamped dates: %s", payload)
	}
}

func TestFinalizeIssuesSequentialNumbers(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := f.svc.Generate(ctx, GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	first, err = f.svc.Finalize(ctx, first.ID)
	if err != nil {
		t.Fatalf("Finalize first: %v", err)
	}
	second, err = f.svc.Finalize(ctx, second.ID)
	if err != nil {
		t.Fatalf("Finalize second: %v", err)
	}

	if first.Status != lifecycle.StatusGenerated {
		t.Fatalf("status: want=%q got=%q", lifecycle.StatusGenerated, first.Status)
	}
	if first.DocumentNumber == nil || !numberPattern.MatchString(*first.DocumentNumber) {
		t.Fatalf("malformed first number: %v", first.DocumentNumber)
	}
	year := time.Now().Year()
	wantFirst := fmt.Sprintf("D3-%d-00001", year)
	wantSecond := fmt.Sprintf("D3-%d-00002", year)
	if *first.DocumentNumber != wantFirst {
		t.Fatalf("first number: want=%q got=%q", wantFirst, *first.DocumentNumber)
	}
	if *second.DocumentNumber != wantSecond {
		t.Fatalf("second number: want=%q got=%q", wantSecond, *second.DocumentNumber)
	}
}

func TestFinalizeTwiceRejected(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	doc, err := f.svc.Generate(ctx, GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := f.svc.Finalize(ctx, doc.ID); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	_, err = f.svc.Finalize(ctx, doc.ID)
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("want InvalidTransitionError, got %v", err)
	}
}

func sendFinalized(t *testing.T, f *documentFixture, signers []SignerInput) (*types.Document, []*types.DocumentSignature) {
	t.Helper()
	ctx := context.Background()
	doc, err := f.svc.Generate(ctx, GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := f.svc.Finalize(ctx, doc.ID); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	doc, sigs, err := f.svc.Send(ctx, doc.ID, signers)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	return doc, sigs
}

func TestSendCreatesSignatureRequestsAndNotifies(t *testing.T) {
	f := newDocumentFixture(t)
	doc, sigs := sendFinalized(t, f, []SignerInput{
		{Name: "Maria Souza", Email: "maria@example.com", Role: "locatario"},
		{Name: "João Pereira", Email: "joao@example.com", Role: "locador"},
	})

	if doc.Status != lifecycle.StatusSent {
		t.Fatalf("status: want=%q got=%q", lifecycle.StatusSent, doc.Status)
	}
	if len(sigs) != 2 {
		t.Fatalf("signature requests: want=2 got=%d", len(sigs))
	}
	for i, sig := range sigs {
		if sig.Status != lifecycle.SignaturePending {
			t.Fatalf("signature %d status: want=pending got=%q", i, sig.Status)
		}
		if sig.SignOrder != i+1 {
			t.Fatalf("signature %d order: want=%d got=%d", i, i+1, sig.SignOrder)
		}
		if sig.SignatureToken == "" {
			t.Fatalf("signature %d missing token", i)
		}
	}
	if len(f.notifier.published) != 2 {
		t.Fatalf("notifications: want=2 got=%d", len(f.notifier.published))
	}
	if f.notifier.published[0].SignerEmail != "maria@example.com" {
		t.Fatalf("notification recipient: got %q", f.notifier.published[0].SignerEmail)
	}
}

func TestSendWithoutSignersRejected(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.Generate(ctx, GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := f.svc.Finalize(ctx, doc.ID); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if _, _, err := f.svc.Send(ctx, doc.ID, nil); err == nil {
		t.Fatalf("Send without signers should fail")
	}
}

func TestSignatureProgression(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, sigs := sendFinalized(t, f, []SignerInput{
		{Name: "Maria Souza", Email: "maria@example.com", Role: "locatario"},
		{Name: "João Pereira", Email: "joao@example.com", Role: "locador"},
	})

	doc, err := f.svc.RegisterSignature(ctx, sigs[0].ID, "203.0.113.7")
	if err != nil {
		t.Fatalf("RegisterSignature first: %v", err)
	}
	if doc.Status != lifecycle.StatusPartiallySigned {
		t.Fatalf("after first signature: want=%q got=%q", lifecycle.StatusPartiallySigned, doc.Status)
	}

	doc, err = f.svc.RegisterSignature(ctx, sigs[1].ID, "203.0.113.8")
	if err != nil {
		t.Fatalf("RegisterSignature second: %v", err)
	}
	if doc.Status != lifecycle.StatusSigned {
		t.Fatalf("after all signatures: want=%q got=%q", lifecycle.StatusSigned, doc.Status)
	}
	if doc.SignedAt == nil {
		t.Fatalf("signed_at not stamped")
	}
	stored, _ := f.sigRepo.GetByID(ctx, nil, sigs[0].ID)
	if stored.SignatureIP != "203.0.113.7" {
		t.Fatalf("signature ip: got %q", stored.SignatureIP)
	}
}

func TestRefusalKeepsDocumentSent(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	_, sigs := sendFinalized(t, f, []SignerInput{
		{Name: "Maria Souza", Email: "maria@example.com", Role: "locatario"},
	})

	doc, err := f.svc.RefuseSignature(ctx, sigs[0].ID, "valores divergentes")
	if err != nil {
		t.Fatalf("RefuseSignature: %v", err)
	}
	if doc.Status != lifecycle.StatusSent {
		t.Fatalf("refusal must not advance document: want=%q got=%q", lifecycle.StatusSent, doc.Status)
	}
	stored, _ := f.sigRepo.GetByID(ctx, nil, sigs[0].ID)
	if stored.Status != lifecycle.SignatureRefused {
		t.Fatalf("signature status: want=refused got=%q", stored.Status)
	}
	if stored.RefusalReason != "valores divergentes" {
		t.Fatalf("refusal reason: got %q", stored.RefusalReason)
	}
}

func TestSignTwiceRejected(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	_, sigs := sendFinalized(t, f, []SignerInput{
		{Name: "Maria Souza", Email: "maria@example.com", Role: "locatario"},
		{Name: "João Pereira", Email: "joao@example.com", Role: "locador"},
	})

	if _, err := f.svc.RegisterSignature(ctx, sigs[0].ID, "203.0.113.7"); err != nil {
		t.Fatalf("RegisterSignature: %v", err)
	}
	_, err := f.svc.RegisterSignature(ctx, sigs[0].ID, "203.0.113.7")
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("want InvalidTransitionError, got %v", err)
	}
}

func TestCancelSignedDocumentRejected(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, sigs := sendFinalized(t, f, []SignerInput{
		{Name: "Maria Souza", Email: "maria@example.com", Role: "locatario"},
	})
	if _, err := f.svc.RegisterSignature(ctx, sigs[0].ID, "203.0.113.7"); err != nil {
		t.Fatalf("RegisterSignature: %v", err)
	}

	_, err := f.svc.Cancel(ctx, doc.ID, "admin", "erro de emissão")
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("cancel of signed document must fail, got %v", err)
	}
}

func TestCancelDraft(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.Generate(ctx, GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	doc, err = f.svc.Cancel(ctx, doc.ID, "admin", "dados incorretos")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if doc.Status != lifecycle.StatusCancelled {
		t.Fatalf("status: want=%q got=%q", lifecycle.StatusCancelled, doc.Status)
	}
	if doc.CancelledBy != "admin" || doc.CancellationReason != "dados incorretos" {
		t.Fatalf("cancellation audit fields not stamped: by=%q reason=%q", doc.CancelledBy, doc.CancellationReason)
	}
}

func TestExpireSweep(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, sigs := sendFinalized(t, f, []SignerInput{
		{Name: "Maria Souza", Email: "maria@example.com", Role: "locatario"},
	})

	past := time.Now().Add(-time.Hour)
	doc.SignatureDeadlineAt = &past
	if err := f.docRepo.Update(ctx, nil, doc); err != nil {
		t.Fatalf("seed deadline: %v", err)
	}

	expired, err := f.svc.ExpireSweep(ctx, time.Now())
	if err != nil {
		t.Fatalf("ExpireSweep: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expired count: want=1 got=%d", expired)
	}
	doc, _ = f.docRepo.GetByID(ctx, nil, doc.ID)
	if doc.Status != lifecycle.StatusExpired {
		t.Fatalf("status: want=%q got=%q", lifecycle.StatusExpired, doc.Status)
	}
	sig, _ := f.sigRepo.GetByID(ctx, nil, sigs[0].ID)
	if sig.Status != lifecycle.SignatureExpired {
		t.Fatalf("signature status: want=expired got=%q", sig.Status)
	}

	// Second sweep finds nothing.
	expired, err = f.svc.ExpireSweep(ctx, time.Now())
	if err != nil {
		t.Fatalf("second ExpireSweep: %v", err)
	}
	if expired != 0 {
		t.Fatalf("second sweep: want=0 got=%d", expired)
	}
}

func TestRenderPDFUsesStoredHTML(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	doc, err := f.svc.Generate(ctx, GenerateInput{Type: "D3", GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	pdf, err := f.svc.RenderPDF(ctx, doc.ID, gotenberg.RenderOptions{Margins: gotenberg.DefaultMargins()})
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty pdf")
	}
	if f.pdf.lastHTML != doc.RenderedHTML {
		t.Fatalf("renderer received different html than stored")
	}
}

func TestLintTemplatesAllClean(t *testing.T) {
	f := newDocumentFixture(t)

	results := f.svc.LintTemplates()
	if len(results) != 10 {
		t.Fatalf("lint results: want=10 got=%d", len(results))
	}
	for docType, result := range results {
		if !result.Valid {
			t.Fatalf("template %s failed lint: %v", docType, result.Errors)
		}
	}
}

func TestGenerateVistoriaFromProperty(t *testing.T) {
	df := newDataFetchFixture(t)
	contrato := seedContrato(df)

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	registry, err := templates.New()
	if err != nil {
		t.Fatalf("templates.New: %v", err)
	}
	svc := NewDocumentService(nil, log, registry, df.svc,
		newFakeDocumentRepo(), newFakeSignatureRepo(), newFakeCounterRepo(), &fakeNotifier{}, &fakePDFRenderer{})

	doc, err := svc.Generate(context.Background(), GenerateInput{
		Type:        "D5",
		ContratoID:  &contrato.ID,
		GeneratedBy: "admin",
	})
	if err != nil {
		t.Fatalf("Generate D5 from contract graph: %v", err)
	}
	if doc.Status != lifecycle.StatusDraft {
		t.Fatalf("status: want=%q got=%q", lifecycle.StatusDraft, doc.Status)
	}
	for _, room := range []string{"Sala", "Cozinha"} {
		if !strings.Contains(doc.RenderedHTML, room) {
			t.Fatalf("rendered html missing room %q:\n%s", room, doc.RenderedHTML)
		}
	}
}

func TestGenerateReajusteRequiresCustomValue(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	f.dataFetch.data = templating.Data{
		"locatario": map[string]any{"nome": "Maria Souza"},
		"contrato":  map[string]any{"valor_aluguel": 2500.0, "indice_reajuste": "IGP-M"},
	}

	// The adjusted value never comes from the entity graph; without
	// custom_data the gate names it.
	_, err := f.svc.Generate(ctx, GenerateInput{Type: "D9", GeneratedBy: "admin"})
	var incomplete *IncompleteDataError
	if !errors.As(err, &incomplete) {
		t.Fatalf("want IncompleteDataError, got %v", err)
	}
	found := false
	for _, path := range incomplete.MissingPaths {
		if path == "novo_valor_aluguel" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing paths should include novo_valor_aluguel, got %v", incomplete.MissingPaths)
	}

	doc, err := f.svc.Generate(ctx, GenerateInput{
		Type:        "D9",
		GeneratedBy: "admin",
		CustomData: templating.Data{
			"locatario":          map[string]any{"nome": "Maria Souza"},
			"contrato":           map[string]any{"valor_aluguel": 2500.0, "indice_reajuste": "IGP-M"},
			"novo_valor_aluguel": 2612.5,
		},
	})
	if err != nil {
		t.Fatalf("Generate D9 with custom_data: %v", err)
	}
	if !strings.Contains(doc.RenderedHTML, "R$ 2.612,50") {
		t.Fatalf("rendered html missing adjusted rent:\n%s", doc.RenderedHTML)
	}
}

func TestGenerateWithCustomData(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	doc, err := f.svc.Generate(ctx, GenerateInput{
		Type:        "D3",
		GeneratedBy: "admin",
		CustomData: templating.Data{
			"locatario":    map[string]any{"nome": "Cliente Avulso"},
			"proprietario": map[string]any{"nome": "Imobiliária Central Ltda"},
			"imovel":       map[string]any{"endereco": "Av. Central, 9", "cidade": "Recife"},
			"contrato":     map[string]any{"data_inicio": "2026-01-15"},
		},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(doc.RenderedHTML, "Cliente Avulso") {
		t.Fatalf("custom data not rendered")
	}
}
