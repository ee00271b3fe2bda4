package packages

import (
	"context"

	"tripquote/internal/app/bus"
	"tripquote/internal/app/dto"
	"tripquote/internal/domain/catalog"
)

const listPackagesKey = "packages.list"

// ListPackagesQuery asks for the priced catalog table.
type ListPackagesQuery struct{}

func (q ListPackagesQuery) Key() string { return listPackagesKey }

type ListPackagesHandler struct {
	Catalog *catalog.Catalog
}

func (h *ListPackagesHandler) Handle(ctx context.Context, q ListPackagesQuery) (dto.PackageTable, error) {
	return dto.MapPackageTable(h.Catalog.All()), nil
}

var _ bus.Handler[ListPackagesQuery, dto.PackageTable] = (*ListPackagesHandler)(nil)
