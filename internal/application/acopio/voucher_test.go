package acopio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

const fuenteVoucherPrueba = `{
	"titulo": "COMPROBANTE DE ACOPIO {{.numeroAcopio}}",
	"subtitulo": "Proveedor: {{.proveedorNombre}} ({{.proveedorDocumento}})",
	"parametros": ["numeroAcopio", "fechaAcopio", "proveedorNombre", "proveedorDocumento", "proveedorDireccion", "usuarioNombre", "totalPagar", "observaciones"],
	"columnas": [
		{"campo": "numeroItem", "titulo": "Item", "ancho": 1, "formato": "entero"},
		{"campo": "peso", "titulo": "Peso (g)", "ancho": 2},
		{"campo": "importe", "titulo": "Importe", "ancho": 3, "formato": "moneda"}
	],
	"piePagina": ["TOTAL A PAGAR S/. {{.totalPagar}}", "Atendido por: {{.usuarioNombre}}"]
}`

type fuenteVoucherFake struct{}

func (fuenteVoucherFake) Leer(nombre string) ([]byte, error) {
	if nombre != appreport.PlantillaVoucher {
		return nil, domain.ErrPlantillaNoEncontrada
	}
	return []byte(fuenteVoucherPrueba), nil
}

func (fuenteVoucherFake) Ruta(nombre string) string { return "memoria/" + nombre }

type artefactosNulos struct{}

func (artefactosNulos) Cargar(string) ([]byte, error) { return nil, domain.ErrPlantillaNoEncontrada }
func (artefactosNulos) Guardar(string, []byte) error  { return nil }
func (artefactosNulos) Ruta(nombre string) string     { return "memoria/" + nombre + ".gob" }

func TestGenerarVoucher(t *testing.T) {
	acopioRepo := newFakeAcopioRepo()
	historialRepo := &fakeHistorialRepo{}
	proveedorRepo := newFakeProveedorRepo(proveedorDePrueba())
	uc := armarUseCase(acopioRepo, historialRepo, proveedorRepo)

	fecha := time.Date(2025, 3, 9, 10, 0, 0, 0, time.Local)
	acopio, err := uc.Crear(context.Background(), usuarioDePrueba(), 1, fecha, "entrega de prueba", []Item{itemDePrueba()})
	require.NoError(t, err)

	cache := appreport.NewCachePlantillas(fuenteVoucherFake{}, artefactosNulos{}, logger.Nop())
	voucher := NewVoucherUseCase(acopioRepo, proveedorRepo, historialRepo, cache, logger.Nop())

	r, err := voucher.Generar(context.Background(), usuarioDePrueba(), acopio.ID)
	require.NoError(t, err)

	assert.Equal(t, "COMPROBANTE DE ACOPIO ACO-2025-0001", r.Titulo)
	assert.Equal(t, "Proveedor: Minera El Dorado SAC (20123456789)", r.Subtitulo)
	assert.Equal(t, "09/03/2025", r.Parametros["fechaAcopio"])
	require.Len(t, r.Paginas, 1)
	require.Len(t, r.Paginas[0].Filas, 1)
	assert.Equal(t, []string{"1", "10.000", "2,034.18"}, r.Paginas[0].Filas[0])
	require.Len(t, r.PiePagina, 2)
	assert.Equal(t, "TOTAL A PAGAR S/. 2,034.18", r.PiePagina[0])
	assert.Equal(t, "Atendido por: Juan Pérez", r.PiePagina[1])

	// La generación del voucher queda auditada con la referencia al acopio.
	require.Len(t, historialRepo.movs, 2)
	mov := historialRepo.movs[1]
	assert.Equal(t, entity.AccionImpresionVoucher, mov.Accion)
	assert.Equal(t, acopio.ID, mov.DetallesAdicionales["acopioId"])
}

func TestGenerarVoucherAcopioNoExiste(t *testing.T) {
	acopioRepo := newFakeAcopioRepo()
	cache := appreport.NewCachePlantillas(fuenteVoucherFake{}, artefactosNulos{}, logger.Nop())
	voucher := NewVoucherUseCase(acopioRepo, newFakeProveedorRepo(), &fakeHistorialRepo{}, cache, logger.Nop())

	_, err := voucher.Generar(context.Background(), usuarioDePrueba(), 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerarVoucherUsuarioNuloNoAudita(t *testing.T) {
	acopioRepo := newFakeAcopioRepo()
	historialRepo := &fakeHistorialRepo{}
	proveedorRepo := newFakeProveedorRepo(proveedorDePrueba())
	uc := armarUseCase(acopioRepo, historialRepo, proveedorRepo)

	acopio, err := uc.Crear(context.Background(), usuarioDePrueba(), 1, time.Now(), "", []Item{itemDePrueba()})
	require.NoError(t, err)
	movsPrevios := len(historialRepo.movs)

	cache := appreport.NewCachePlantillas(fuenteVoucherFake{}, artefactosNulos{}, logger.Nop())
	voucher := NewVoucherUseCase(acopioRepo, proveedorRepo, historialRepo, cache, logger.Nop())

	// Actor nulo: el voucher igual se genera, la falta de auditoría solo se
	// registra en el log.
	r, err := voucher.Generar(context.Background(), nil, acopio.ID)
	require.NoError(t, err)
	assert.NotNil(t, r)
	assert.Len(t, historialRepo.movs, movsPrevios)
}
