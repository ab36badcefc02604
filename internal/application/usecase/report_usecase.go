package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

// ReportUseCase agregados por tipo para dashboard y reportes.
type ReportUseCase struct {
	records    repository.RecordRepository
	identities repository.IdentityRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(records repository.RecordRepository, identities repository.IdentityRepository) *ReportUseCase {
	return &ReportUseCase{records: records, identities: identities}
}

// Summaries un resumen por tipo, en el orden pedido. Las consultas corren en paralelo;
// el primer error cancela las demás.
func (uc *ReportUseCase) Summaries(ctx context.Context, kinds []entity.Kind) ([]repository.Summary, error) {
	out := make([]repository.Summary, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			s, err := uc.summarize(gctx, kind)
			if err != nil {
				return err
			}
			out[i] = *s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ReportUseCase) summarize(ctx context.Context, kind entity.Kind) (*repository.Summary, error) {
	switch kind {
	case entity.KindUsers, entity.KindAgents:
		role := entity.Role("")
		if kind == entity.KindAgents {
			role = entity.RoleAgent
		}
		ids, err := uc.identities.List(ctx, role)
		if err != nil {
			return nil, dataErr(kind, "summary", err)
		}
		s := &repository.Summary{Kind: kind, Count: len(ids), ByStatus: map[string]int{}}
		for _, id := range ids {
			s.ByStatus[string(id.Status)]++
		}
		return s, nil
	}

	spec, ok := entity.SpecFor(kind)
	if !ok || kind == entity.KindTrash {
		return nil, fmt.Errorf("usecase: sin resumen para %q", kind)
	}
	s, err := uc.records.Summarize(ctx, kind, spec.AmountField)
	if err != nil {
		return nil, dataErr(kind, "summary", err)
	}
	return s, nil
}
