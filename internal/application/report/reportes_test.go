package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

const fuentePeriodoPrueba = `{
	"titulo": "ACOPIOS DEL {{.fechaInicio}} AL {{.fechaFin}}",
	"parametros": ["fechaInicio", "fechaFin", "totalGeneral", "cantidadAcopios"],
	"columnas": [
		{"campo": "numeroAcopio", "titulo": "Número", "ancho": 3},
		{"campo": "fechaAcopio", "titulo": "Fecha", "ancho": 2, "formato": "fecha"},
		{"campo": "estado", "titulo": "Estado", "ancho": 2},
		{"campo": "totalPagar", "titulo": "Total", "ancho": 2, "formato": "moneda"}
	],
	"piePagina": ["TOTAL GENERAL S/. {{.totalGeneral}} ({{.cantidadAcopios}} acopios)"]
}`

type acopioRepoStub struct {
	acopios []*entity.Acopio
}

func (s *acopioRepoStub) Create(*entity.Acopio) error               { return nil }
func (s *acopioRepoStub) CreateDetalle(*entity.AcopioDetalle) error { return nil }
func (s *acopioRepoStub) Update(*entity.Acopio) error               { return nil }
func (s *acopioRepoStub) GetByID(int64) (*entity.Acopio, error)     { return nil, nil }
func (s *acopioRepoStub) FindMaxNumero(string) (string, error)      { return "", nil }
func (s *acopioRepoStub) CountByFechas(_, _ time.Time) (int64, error) {
	return int64(len(s.acopios)), nil
}
func (s *acopioRepoStub) GetDetalles(int64) ([]*entity.AcopioDetalle, error) {
	return nil, nil
}
func (s *acopioRepoStub) List() ([]*entity.Acopio, error) { return s.acopios, nil }
func (s *acopioRepoStub) ListByProveedor(int64) ([]*entity.Acopio, error) {
	return s.acopios, nil
}
func (s *acopioRepoStub) ListByFechas(_, _ time.Time) ([]*entity.Acopio, error) {
	return s.acopios, nil
}

type proveedorRepoStub struct {
	proveedor *entity.Proveedor
}

func (s *proveedorRepoStub) Create(*entity.Proveedor) error { return nil }
func (s *proveedorRepoStub) GetByID(int64) (*entity.Proveedor, error) {
	return s.proveedor, nil
}
func (s *proveedorRepoStub) GetByDocumento(string) (*entity.Proveedor, error) {
	return s.proveedor, nil
}
func (s *proveedorRepoStub) List(bool) ([]*entity.Proveedor, error) { return nil, nil }
func (s *proveedorRepoStub) Update(*entity.Proveedor) error         { return nil }

func TestAcopiosPeriodo(t *testing.T) {
	acopios := []*entity.Acopio{
		{
			NumeroAcopio: "ACO-2025-0001",
			FechaAcopio:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
			Estado:       entity.EstadoActivo,
			TotalPagar:   decimal.RequireFromString("2034.18"),
		},
		{
			NumeroAcopio: "ACO-2025-0002",
			FechaAcopio:  time.Date(2025, 3, 5, 0, 0, 0, 0, time.Local),
			Estado:       entity.EstadoAnulado,
			TotalPagar:   decimal.RequireFromString("1500.00"),
		},
	}
	fuente := &fakeFuente{datos: map[string][]byte{
		PlantillaAcopiosPeriodo: []byte(fuentePeriodoPrueba),
	}}
	cache := armarCache(fuente, newFakeArtefactos())
	uc := NewReportesUseCase(cache, &acopioRepoStub{acopios: acopios}, &proveedorRepoStub{}, logger.Nop())

	inicio := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	fin := time.Date(2025, 3, 31, 0, 0, 0, 0, time.Local)
	r, err := uc.AcopiosPeriodo(context.Background(), inicio, fin)
	require.NoError(t, err)

	assert.Equal(t, "ACOPIOS DEL 01/03/2025 AL 31/03/2025", r.Titulo)
	require.Len(t, r.Paginas, 1)
	require.Len(t, r.Paginas[0].Filas, 2)
	assert.Equal(t, []string{"ACO-2025-0001", "01/03/2025", "ACTIVO", "2,034.18"}, r.Paginas[0].Filas[0])
	require.Len(t, r.PiePagina, 1)
	assert.Equal(t, "TOTAL GENERAL S/. 3,534.18 (2 acopios)", r.PiePagina[0])
}

func TestProveedorHistoricoNoExiste(t *testing.T) {
	cache := armarCache(&fakeFuente{datos: map[string][]byte{}}, newFakeArtefactos())
	uc := NewReportesUseCase(cache, &acopioRepoStub{}, &proveedorRepoStub{}, logger.Nop())

	_, err := uc.ProveedorHistorico(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
