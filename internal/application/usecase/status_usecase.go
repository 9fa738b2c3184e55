package usecase

import (
	"context"
	"sort"

	"github.com/tu-usuario/tapiceria-pro/internal/application/dto"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
)

// InvoiceStatusUseCase lectura del catálogo de estados de factura.
type InvoiceStatusUseCase struct {
	repo repository.InvoiceStatusRepository
}

// NewInvoiceStatusUseCase construye el caso de uso.
func NewInvoiceStatusUseCase(repo repository.InvoiceStatusRepository) *InvoiceStatusUseCase {
	return &InvoiceStatusUseCase{repo: repo}
}

// List catálogo completo ordenado por sortOrder.
func (uc *InvoiceStatusUseCase) List(ctx context.Context) ([]*dto.InvoiceStatusResponse, error) {
	statuses, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].SortOrder < statuses[j].SortOrder
	})
	out := make([]*dto.InvoiceStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, &dto.InvoiceStatusResponse{
			Value:        st.Value,
			Label:        st.Label,
			Color:        st.Color,
			IsEndState:   st.IsEndState,
			EndStateType: string(st.EndStateType),
			IsDefault:    st.IsDefault,
			SortOrder:    st.SortOrder,
		})
	}
	return out, nil
}
