package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/repos"
	"github.com/casalivre/casalivre-backend/internal/templating"
	"github.com/casalivre/casalivre-backend/internal/types"
)

// DataFetchService assembles the nested DocumentData a template renders
// against, resolving entity ids into record maps merged under their semantic
// keys (contrato, imovel, locatario, locador, fiador, parcela).
type DataFetchService interface {
	Assemble(ctx context.Context, in AssembleInput) (templating.Data, error)
}

type AssembleInput struct {
	ContratoID  *uuid.UUID
	ImovelID    *uuid.UUID
	LocatarioID *uuid.UUID
	LocadorID   *uuid.UUID
	FiadorID    *uuid.UUID
	ParcelaID   *uuid.UUID
}

type dataFetchService struct {
	log           *logger.Logger
	contratoRepo  repos.ContratoRepo
	imovelRepo    repos.ImovelRepo
	locatarioRepo repos.LocatarioRepo
	locadorRepo   repos.LocadorRepo
	fiadorRepo    repos.FiadorRepo
	parcelaRepo   repos.ParcelaRepo
}

func NewDataFetchService(
	baseLog *logger.Logger,
	contratoRepo repos.ContratoRepo,
	imovelRepo repos.ImovelRepo,
	locatarioRepo repos.LocatarioRepo,
	locadorRepo repos.LocadorRepo,
	fiadorRepo repos.FiadorRepo,
	parcelaRepo repos.ParcelaRepo,
) DataFetchService {
	serviceLog := baseLog.With("service", "DataFetchService")
	return &dataFetchService{
		log:           serviceLog,
		contratoRepo:  contratoRepo,
		imovelRepo:    imovelRepo,
		locatarioRepo: locatarioRepo,
		locadorRepo:   locadorRepo,
		fiadorRepo:    fiadorRepo,
		parcelaRepo:   parcelaRepo,
	}
}

// Assemble reads entity graphs outside any write transaction; the fetches for
// independent ids run concurrently.
func (s *dataFetchService) Assemble(ctx context.Context, in AssembleInput) (templating.Data, error) {
	var (
		contrato  *types.Contrato
		imovel    *types.Imovel
		locatario *types.Locatario
		locador   *types.Locador
		fiador    *types.Fiador
		parcela   *types.Parcela
	)

	g, gctx := errgroup.WithContext(ctx)
	if in.ParcelaID != nil {
		g.Go(func() error {
			p, err := s.parcelaRepo.GetByID(gctx, nil, *in.ParcelaID)
			if err != nil {
				return fmt.Errorf("fetch parcela: %w", err)
			}
			parcela = p
			return nil
		})
	}
	if in.ImovelID != nil {
		g.Go(func() error {
			im, err := s.imovelRepo.GetByID(gctx, nil, *in.ImovelID)
			if err != nil {
				return fmt.Errorf("fetch imovel: %w", err)
			}
			imovel = im
			return nil
		})
	}
	if in.LocatarioID != nil {
		g.Go(func() error {
			lt, err := s.locatarioRepo.GetByID(gctx, nil, *in.LocatarioID)
			if err != nil {
				return fmt.Errorf("fetch locatario: %w", err)
			}
			locatario = lt
			return nil
		})
	}
	if in.LocadorID != nil {
		g.Go(func() error {
			lc, err := s.locadorRepo.GetByID(gctx, nil, *in.LocadorID)
			if err != nil {
				return fmt.Errorf("fetch locador: %w", err)
			}
			locador = lc
			return nil
		})
	}
	if in.FiadorID != nil {
		g.Go(func() error {
			f, err := s.fiadorRepo.GetByID(gctx, nil, *in.FiadorID)
			if err != nil {
				return fmt.Errorf("fetch fiador: %w", err)
			}
			fiador = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The contract graph carries most of the parties; a parcela without an
	// explicit contract id pulls its own contract in.
	contratoID := in.ContratoID
	if contratoID == nil && parcela != nil {
		contratoID = &parcela.ContratoID
	}
	if contratoID != nil {
		c, err := s.contratoRepo.GetByIDFull(ctx, nil, *contratoID)
		if err != nil {
			return nil, fmt.Errorf("fetch contrato: %w", err)
		}
		contrato = c
	}

	data := templating.Data{}
	if contrato != nil {
		data["contrato"] = contratoMap(contrato)
		if contrato.Imovel != nil && imovel == nil {
			imovel = contrato.Imovel
		}
		if contrato.Locatario != nil && locatario == nil {
			locatario = contrato.Locatario
		}
		if contrato.Fiador != nil && fiador == nil {
			fiador = contrato.Fiador
		}
		if contrato.Locador != nil && locador == nil {
			locador = contrato.Locador
		}
	}
	if locador != nil {
		locadorData := locadorMap(locador)
		data["locador"] = locadorData
		// Templates name the landlord both ways (locador in contracts,
		// proprietario in delivery terms).
		data["proprietario"] = locadorData
	}
	if imovel != nil {
		imovelData := imovelMap(imovel)
		data["imovel"] = imovelData
		// The inspection template iterates rooms at the top level.
		if ambientes, ok := imovelData["ambientes"]; ok {
			data["ambientes"] = ambientes
		}
	}
	if locatario != nil {
		data["locatario"] = locatarioMap(locatario)
	}
	if fiador != nil {
		data["fiador"] = fiadorMap(fiador)
	}
	if parcela != nil {
		data["parcela"] = parcelaMap(parcela)
	}
	return data, nil
}

func contratoMap(c *types.Contrato) map[string]any {
	return map[string]any{
		"id":               c.ID.String(),
		"tipo":             c.Tipo,
		"valor_aluguel":    c.ValorAluguel,
		"valor_condominio": c.ValorCondominio,
		"valor_iptu":       c.ValorIPTU,
		"dia_vencimento":   c.DiaVencimento,
		"data_inicio":      c.DataInicio.Format("2006-01-02"),
		"data_fim":         c.DataFim.Format("2006-01-02"),
		"prazo_meses":      c.PrazoMeses,
		"indice_reajuste":  c.IndiceReajuste,
		"status":           c.Status,
		"observacoes":      c.Observacoes,
	}
}

func imovelMap(im *types.Imovel) map[string]any {
	m := map[string]any{
		"id":          im.ID.String(),
		"tipo":        im.Tipo,
		"endereco":    im.Endereco,
		"numero":      im.Numero,
		"complemento": im.Complemento,
		"bairro":      im.Bairro,
		"cidade":      im.Cidade,
		"estado":      im.Estado,
		"cep":         im.CEP,
		"area_m2":     im.AreaM2,
		"quartos":     im.Quartos,
		"vagas":       im.Vagas,
	}
	if len(im.Ambientes) > 0 {
		var ambientes []any
		if err := json.Unmarshal(im.Ambientes, &ambientes); err == nil {
			m["ambientes"] = ambientes
		}
	}
	return m
}

func locatarioMap(lt *types.Locatario) map[string]any {
	return map[string]any{
		"id":            lt.ID.String(),
		"nome":          lt.Nome,
		"cpf":           lt.CPF,
		"rg":            lt.RG,
		"nacionalidade": lt.Nacionalidade,
		"estado_civil":  lt.EstadoCivil,
		"profissao":     lt.Profissao,
		"email":         lt.Email,
		"telefone":      lt.Telefone,
		"endereco":      lt.Endereco,
	}
}

func locadorMap(lc *types.Locador) map[string]any {
	return map[string]any{
		"id":            lc.ID.String(),
		"nome":          lc.Nome,
		"cpf":           lc.CPF,
		"cnpj":          lc.CNPJ,
		"rg":            lc.RG,
		"nacionalidade": lc.Nacionalidade,
		"estado_civil":  lc.EstadoCivil,
		"profissao":     lc.Profissao,
		"email":         lc.Email,
		"telefone":      lc.Telefone,
		"endereco":      lc.Endereco,
	}
}

func fiadorMap(f *types.Fiador) map[string]any {
	return map[string]any{
		"id":              f.ID.String(),
		"nome":            f.Nome,
		"cpf":             f.CPF,
		"rg":              f.RG,
		"nacionalidade":   f.Nacionalidade,
		"estado_civil":    f.EstadoCivil,
		"profissao":       f.Profissao,
		"email":           f.Email,
		"telefone":        f.Telefone,
		"endereco":        f.Endereco,
		"imovel_garantia": f.ImovelGarantia,
	}
}

func parcelaMap(p *types.Parcela) map[string]any {
	m := map[string]any{
		"id":               p.ID.String(),
		"numero":           p.Numero,
		"competencia":      p.Competencia,
		"valor_aluguel":    p.ValorAluguel,
		"valor_condominio": p.ValorCondominio,
		"valor_iptu":       p.ValorIPTU,
		"valor_multa":      p.ValorMulta,
		"valor_juros":      p.ValorJuros,
		"valor_total":      p.ValorTotal,
		"data_vencimento":  p.DataVencimento.Format("2006-01-02"),
		"forma_pagamento":  p.FormaPagamento,
		"status":           p.Status,
	}
	if p.DataPagamento != nil {
		m["data_pagamento"] = p.DataPagamento.Format("2006-01-02")
	}
	return m
}
