package report

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysacopio/acopio-api/internal/domain"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

const fuentePrueba = `{
	"titulo": "REPORTE DE ACOPIOS",
	"parametros": ["fechaInicio", "fechaFin"],
	"columnas": [
		{"campo": "numeroAcopio", "titulo": "Número", "ancho": 3},
		{"campo": "totalPagar", "titulo": "Total", "ancho": 2, "formato": "moneda"}
	]
}`

// fakeFuente y fakeArtefactos cuentan cada acceso para poder afirmar qué
// nivel de la caché respondió.
type fakeFuente struct {
	mu       sync.Mutex
	datos    map[string][]byte
	lecturas int
	errLeer  error
}

func (f *fakeFuente) Leer(nombre string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lecturas++
	if f.errLeer != nil {
		return nil, f.errLeer
	}
	src, ok := f.datos[nombre]
	if !ok {
		return nil, domain.ErrPlantillaNoEncontrada
	}
	return src, nil
}

func (f *fakeFuente) Ruta(nombre string) string { return "fuentes/" + nombre + ".reporte.json" }

type fakeArtefactos struct {
	mu         sync.Mutex
	datos      map[string][]byte
	cargas     int
	guardados  int
	errGuardar error
}

func newFakeArtefactos() *fakeArtefactos {
	return &fakeArtefactos{datos: make(map[string][]byte)}
}

func (a *fakeArtefactos) Cargar(nombre string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cargas++
	data, ok := a.datos[nombre]
	if !ok {
		return nil, domain.ErrPlantillaNoEncontrada
	}
	return data, nil
}

func (a *fakeArtefactos) Guardar(nombre string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.errGuardar != nil {
		return a.errGuardar
	}
	a.guardados++
	a.datos[nombre] = data
	return nil
}

func (a *fakeArtefactos) Ruta(nombre string) string { return "compilados/" + nombre + ".reporte.gob" }

func armarCache(fuente *fakeFuente, artefactos *fakeArtefactos) *CachePlantillas {
	return NewCachePlantillas(fuente, artefactos, logger.Nop())
}

func TestResolverCompilaUnaSolaVez(t *testing.T) {
	fuente := &fakeFuente{datos: map[string][]byte{"reporte": []byte(fuentePrueba)}}
	artefactos := newFakeArtefactos()
	cache := armarCache(fuente, artefactos)

	p1, err := cache.Resolver("reporte")
	require.NoError(t, err)
	p2, err := cache.Resolver("reporte")
	require.NoError(t, err)

	assert.Same(t, p1, p2, "la segunda resolución sale del mapa en memoria")
	assert.Equal(t, 1, fuente.lecturas)
	assert.Equal(t, 1, artefactos.guardados, "la compilación persiste el artefacto")
}

func TestResolverPrefiereElArtefacto(t *testing.T) {
	// Pre-compilar y sembrar solo el almacén de artefactos: la fuente no
	// debe tocarse.
	compilada, err := domreport.Compilar("reporte", []byte(fuentePrueba))
	require.NoError(t, err)
	data, err := compilada.Artefacto()
	require.NoError(t, err)

	fuente := &fakeFuente{datos: map[string][]byte{}}
	artefactos := newFakeArtefactos()
	artefactos.datos["reporte"] = data
	cache := armarCache(fuente, artefactos)

	p, err := cache.Resolver("reporte")
	require.NoError(t, err)
	assert.Equal(t, "REPORTE DE ACOPIOS", p.Def.Titulo)
	assert.Equal(t, 0, fuente.lecturas)
}

func TestResolverArtefactoCorruptoRecompila(t *testing.T) {
	fuente := &fakeFuente{datos: map[string][]byte{"reporte": []byte(fuentePrueba)}}
	artefactos := newFakeArtefactos()
	artefactos.datos["reporte"] = []byte("esto no es gob")
	cache := armarCache(fuente, artefactos)

	p, err := cache.Resolver("reporte")
	require.NoError(t, err, "un artefacto ilegible no tumba la resolución")
	assert.Equal(t, "REPORTE DE ACOPIOS", p.Def.Titulo)
	assert.Equal(t, 1, fuente.lecturas)
}

func TestResolverNoEncontradaNombraAmbasUbicaciones(t *testing.T) {
	fuente := &fakeFuente{datos: map[string][]byte{}}
	artefactos := newFakeArtefactos()
	cache := armarCache(fuente, artefactos)

	_, err := cache.Resolver("inexistente")
	require.ErrorIs(t, err, domain.ErrPlantillaNoEncontrada)
	assert.Contains(t, err.Error(), "compilados/inexistente.reporte.gob")
	assert.Contains(t, err.Error(), "fuentes/inexistente.reporte.json")
}

func TestResolverGuardadoFallidoNoImpideElUso(t *testing.T) {
	fuente := &fakeFuente{datos: map[string][]byte{"reporte": []byte(fuentePrueba)}}
	artefactos := newFakeArtefactos()
	artefactos.errGuardar = assert.AnError
	cache := armarCache(fuente, artefactos)

	p, err := cache.Resolver("reporte")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestLimpiarSoloVaciaLaMemoria(t *testing.T) {
	fuente := &fakeFuente{datos: map[string][]byte{"reporte": []byte(fuentePrueba)}}
	artefactos := newFakeArtefactos()
	cache := armarCache(fuente, artefactos)

	_, err := cache.Resolver("reporte")
	require.NoError(t, err)
	require.Equal(t, 1, fuente.lecturas)

	cache.Limpiar()

	_, err = cache.Resolver("reporte")
	require.NoError(t, err)
	assert.Equal(t, 1, fuente.lecturas, "tras limpiar se resuelve desde el artefacto durable, no desde la fuente")
}

func TestResolverConcurrenteDeduplicaLaCompilacion(t *testing.T) {
	fuente := &fakeFuente{datos: map[string][]byte{"reporte": []byte(fuentePrueba)}}
	artefactos := newFakeArtefactos()
	cache := armarCache(fuente, artefactos)

	const n = 25
	var wg sync.WaitGroup
	resultados := make([]*domreport.PlantillaCompilada, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			p, err := cache.Resolver("reporte")
			require.NoError(t, err)
			resultados[i] = p
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, fuente.lecturas, "los resolvers concurrentes comparten una sola compilación")
	for i := 1; i < n; i++ {
		assert.Same(t, resultados[0], resultados[i])
	}
}

func TestPrecompilarTodasAcumulaFallas(t *testing.T) {
	fuente := &fakeFuente{datos: map[string][]byte{
		PlantillaVoucher: []byte(fuentePrueba),
	}}
	cache := armarCache(fuente, newFakeArtefactos())

	fallas := cache.PrecompilarTodas([]string{PlantillaVoucher, PlantillaAcopiosPeriodo})
	require.Len(t, fallas, 1)
	assert.ErrorIs(t, fallas[PlantillaAcopiosPeriodo], domain.ErrPlantillaNoEncontrada)
}
