// Package report genera lo scadenzario PDF dello studio: l'elenco delle
// scadenze pending dell'utente, ordinate per data, con i dati del cliente
// e gli importi in formato italiano.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// Row riga dello scadenzario già risolta con il cliente.
type Row struct {
	Deadline *entity.Deadline
	Client   *entity.Client // nil se l'anagrafica è mancante (riga comunque stampata)
	Overdue  bool
}

// ScadenzarioData dati pronti per il rendering.
type ScadenzarioData struct {
	StudioName  string
	GeneratedAt time.Time
	Rows        []Row
	TotalAmount decimal.Decimal
}

// ScadenzarioGenerator porta di rendering del PDF.
type ScadenzarioGenerator interface {
	GenerateScadenzarioPDF(ctx context.Context, data ScadenzarioData) ([]byte, error)
}

// ReportUseCase orchestration: carica i dati, li risolve e delega il
// rendering al generatore.
type ReportUseCase struct {
	userRepo     repository.UserRepository
	clientRepo   repository.ClientRepository
	deadlineRepo repository.DeadlineRepository
	generator    ScadenzarioGenerator
}

// NewReportUseCase costruisce il caso d'uso iniettando tutte le dipendenze.
func NewReportUseCase(
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	deadlineRepo repository.DeadlineRepository,
	generator ScadenzarioGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		userRepo:     userRepo,
		clientRepo:   clientRepo,
		deadlineRepo: deadlineRepo,
		generator:    generator,
	}
}

// Scadenzario genera il PDF delle scadenze pending dell'utente.
//
// Ritorna:
//   - (pdfBytes, filename, nil) in caso di successo
//   - domain.ErrUserNotFound    se l'utente non esiste
func (uc *ReportUseCase) Scadenzario(ctx context.Context, userID string) (pdfBytes []byte, filename string, err error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("report: caricare utente: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}

	deadlines, err := uc.deadlineRepo.List(ctx, userID, repository.DeadlineFilter{
		Status: entity.StatusPending,
	})
	if err != nil {
		return nil, "", fmt.Errorf("report: caricare scadenze: %w", err)
	}
	clients, err := uc.clientRepo.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return nil, "", fmt.Errorf("report: caricare clienti: %w", err)
	}
	byID := make(map[string]*entity.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	now := time.Now()
	data := ScadenzarioData{
		StudioName:  user.StudioName,
		GeneratedAt: now,
		TotalAmount: decimal.Zero,
	}
	for _, d := range deadlines {
		data.Rows = append(data.Rows, Row{
			Deadline: d,
			Client:   byID[d.ClientID],
			Overdue:  d.IsOverdue(now),
		})
		data.TotalAmount = data.TotalAmount.Add(d.Amount)
	}
	sort.Slice(data.Rows, func(i, j int) bool {
		return data.Rows[i].Deadline.DueDate.Before(data.Rows[j].Deadline.DueDate)
	})

	pdfBytes, err = uc.generator.GenerateScadenzarioPDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("report: generare PDF: %w", err)
	}
	filename = fmt.Sprintf("scadenzario_%s.pdf", now.Format("2006-01-02"))
	return pdfBytes, filename, nil
}
