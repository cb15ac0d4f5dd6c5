package report

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sysacopio/acopio-api/internal/domain"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// CachePlantillas resuelve un nombre de reporte a su plantilla compilada con
// tres niveles: mapa en memoria, artefacto durable y fuente. Es un objeto
// inyectado con dueño explícito, no estado global del proceso.
//
// Resolver concurrente del mismo nombre se deduplica con singleflight:
// compilar dos veces sería solo trabajo duplicado, pero el mapa jamás expone
// entradas a medias.
type CachePlantillas struct {
	fuente     FuentePlantillas
	artefactos AlmacenArtefactos
	log        *logger.Logger

	mu    sync.RWMutex
	mem   map[string]*domreport.PlantillaCompilada
	grupo singleflight.Group
}

// NewCachePlantillas construye la caché con sus colaboradores.
func NewCachePlantillas(fuente FuentePlantillas, artefactos AlmacenArtefactos, log *logger.Logger) *CachePlantillas {
	return &CachePlantillas{
		fuente:     fuente,
		artefactos: artefactos,
		log:        log,
		mem:        make(map[string]*domreport.PlantillaCompilada),
	}
}

// Resolver devuelve la plantilla compilada para el nombre dado.
//
// Orden de resolución:
//  1. mapa en memoria;
//  2. artefacto durable (se carga y se cachea);
//  3. fuente: se compila, se persiste el artefacto (mejor esfuerzo) y se cachea.
//
// Si no hay fuente en ningún nivel retorna domain.ErrPlantillaNoEncontrada
// nombrando las ubicaciones buscadas.
func (c *CachePlantillas) Resolver(nombre string) (*domreport.PlantillaCompilada, error) {
	c.mu.RLock()
	p, ok := c.mem[nombre]
	c.mu.RUnlock()
	if ok {
		c.log.Debug().Str("plantilla", nombre).Msg("plantilla resuelta desde memoria")
		return p, nil
	}

	v, err, _ := c.grupo.Do(nombre, func() (any, error) {
		// Otro goroutine pudo haberla cargado mientras esperábamos el turno.
		c.mu.RLock()
		p, ok := c.mem[nombre]
		c.mu.RUnlock()
		if ok {
			return p, nil
		}
		p, err := c.cargar(nombre)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.mem[nombre] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domreport.PlantillaCompilada), nil
}

func (c *CachePlantillas) cargar(nombre string) (*domreport.PlantillaCompilada, error) {
	// Nivel 2: artefacto pre-compilado en disco.
	data, err := c.artefactos.Cargar(nombre)
	switch {
	case err == nil:
		p, err := domreport.CargarArtefacto(data)
		if err == nil {
			c.log.Debug().Str("plantilla", nombre).Msg("plantilla cargada desde artefacto pre-compilado")
			return p, nil
		}
		// Artefacto ilegible: advertir y recompilar desde la fuente.
		c.log.Warn().Err(err).Str("plantilla", nombre).
			Msg("no se pudo cargar el artefacto pre-compilado, compilando desde la fuente")
	case !errors.Is(err, domain.ErrPlantillaNoEncontrada):
		c.log.Warn().Err(err).Str("plantilla", nombre).
			Msg("error leyendo el artefacto pre-compilado, compilando desde la fuente")
	}

	// Nivel 3: compilar desde la fuente.
	src, err := c.fuente.Leer(nombre)
	if err != nil {
		if errors.Is(err, domain.ErrPlantillaNoEncontrada) {
			return nil, fmt.Errorf("%w: %s (se buscó en %s y %s)",
				domain.ErrPlantillaNoEncontrada, nombre,
				c.artefactos.Ruta(nombre), c.fuente.Ruta(nombre))
		}
		return nil, fmt.Errorf("leer plantilla %s: %w", nombre, err)
	}
	p, err := domreport.Compilar(nombre, src)
	if err != nil {
		return nil, err
	}
	c.log.Info().Str("plantilla", nombre).Msg("plantilla compilada exitosamente")

	// Persistir el artefacto es mejor esfuerzo: si falla, el caller igual
	// recibe su plantilla.
	if data, err := p.Artefacto(); err == nil {
		if err := c.artefactos.Guardar(nombre, data); err != nil {
			c.log.Warn().Err(err).Str("plantilla", nombre).Msg("no se pudo guardar el artefacto compilado")
		}
	} else {
		c.log.Warn().Err(err).Str("plantilla", nombre).Msg("no se pudo serializar el artefacto compilado")
	}
	return p, nil
}

// Limpiar vacía solo el nivel de memoria. Los artefactos durables quedan
// hasta que alguien los borre a mano: un cambio de fuente exige limpiar ambos.
func (c *CachePlantillas) Limpiar() {
	c.mu.Lock()
	c.mem = make(map[string]*domreport.PlantillaCompilada)
	c.mu.Unlock()
	c.log.Info().Msg("caché de plantillas en memoria limpiada")
}

// PrecompilarTodas calienta la caché resolviendo cada nombre. Las fallas se
// acumulan y se registran por nombre sin abortar el lote.
func (c *CachePlantillas) PrecompilarTodas(nombres []string) map[string]error {
	fallas := make(map[string]error)
	for _, nombre := range nombres {
		if _, err := c.Resolver(nombre); err != nil {
			c.log.Error().Err(err).Str("plantilla", nombre).Msg("falló la pre-compilación")
			fallas[nombre] = err
		}
	}
	if len(fallas) == 0 {
		c.log.Info().Int("plantillas", len(nombres)).Msg("reportes pre-compilados exitosamente")
	}
	return fallas
}
