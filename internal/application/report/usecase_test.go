package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/report"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	user *entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}
func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

type stubClientRepo struct {
	clients []*entity.Client
}

func (r *stubClientRepo) Create(ctx context.Context, c *entity.Client) error { return nil }
func (r *stubClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return nil, nil
}
func (r *stubClientRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Client, error) {
	return r.clients, nil
}
func (r *stubClientRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return len(r.clients), nil
}
func (r *stubClientRepo) Update(ctx context.Context, c *entity.Client) error { return nil }
func (r *stubClientRepo) Delete(ctx context.Context, id string) error        { return nil }

type stubDeadlineRepo struct {
	deadlines  []*entity.Deadline
	lastFilter repository.DeadlineFilter
}

func (r *stubDeadlineRepo) Create(ctx context.Context, d *entity.Deadline) error { return nil }
func (r *stubDeadlineRepo) GetByID(ctx context.Context, id string) (*entity.Deadline, error) {
	return nil, nil
}
func (r *stubDeadlineRepo) ListAllByUser(ctx context.Context, userID string) ([]*entity.Deadline, error) {
	return r.deadlines, nil
}
func (r *stubDeadlineRepo) List(ctx context.Context, userID string, f repository.DeadlineFilter) ([]*entity.Deadline, error) {
	r.lastFilter = f
	return r.deadlines, nil
}
func (r *stubDeadlineRepo) Update(ctx context.Context, d *entity.Deadline) error { return nil }
func (r *stubDeadlineRepo) Delete(ctx context.Context, id string) error          { return nil }
func (r *stubDeadlineRepo) DeleteByClient(ctx context.Context, id string) error  { return nil }

// spyGenerator cattura i dati passati al renderer.
type spyGenerator struct {
	got report.ScadenzarioData
}

func (g *spyGenerator) GenerateScadenzarioPDF(ctx context.Context, data report.ScadenzarioData) ([]byte, error) {
	g.got = data
	return []byte("%PDF-1.7 finto"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestScadenzario(t *testing.T) {
	now := time.Now()
	gen := &spyGenerator{}
	uc := report.NewReportUseCase(
		&stubUserRepo{user: &entity.User{ID: "u1", StudioName: "Studio Bianchi"}},
		&stubClientRepo{clients: []*entity.Client{
			{ID: "c1", UserID: "u1", Denominazione: "Rossi SRL"},
		}},
		&stubDeadlineRepo{deadlines: []*entity.Deadline{
			{ID: "d1", UserID: "u1", ClientID: "c1", Type: "IVA", Status: entity.StatusPending,
				DueDate: now.AddDate(0, 0, 10), Amount: decimal.NewFromInt(100)},
			{ID: "d2", UserID: "u1", ClientID: "c1", Type: "IRPEF", Status: entity.StatusPending,
				DueDate: now.AddDate(0, 0, -3), Amount: decimal.NewFromInt(250)},
		}},
		gen,
	)

	pdf, filename, err := uc.Scadenzario(context.Background(), "u1")

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "scadenzario_"+now.Format("2006-01-02")+".pdf", filename)

	assert.Equal(t, "Studio Bianchi", gen.got.StudioName)
	require.Len(t, gen.got.Rows, 2)
	// Righe ordinate per due date crescente, la scaduta per prima e marcata.
	assert.Equal(t, "d2", gen.got.Rows[0].Deadline.ID)
	assert.True(t, gen.got.Rows[0].Overdue)
	assert.False(t, gen.got.Rows[1].Overdue)
	assert.Equal(t, "Rossi SRL", gen.got.Rows[0].Client.Denominazione)
	assert.True(t, gen.got.TotalAmount.Equal(decimal.NewFromInt(350)))
}

func TestScadenzario_SoloPending(t *testing.T) {
	dr := &stubDeadlineRepo{}
	uc := report.NewReportUseCase(
		&stubUserRepo{user: &entity.User{ID: "u1"}},
		&stubClientRepo{},
		dr,
		&spyGenerator{},
	)

	_, _, err := uc.Scadenzario(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, dr.lastFilter.Status)
}

func TestScadenzario_UtenteInesistente(t *testing.T) {
	uc := report.NewReportUseCase(&stubUserRepo{}, &stubClientRepo{}, &stubDeadlineRepo{}, &spyGenerator{})

	_, _, err := uc.Scadenzario(context.Background(), "sconosciuto")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
