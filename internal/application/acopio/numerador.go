package acopio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// MaxSecuenciaPeriodo es el tope del espacio de 4 dígitos por periodo.
const MaxSecuenciaPeriodo = 9999

// Numerador genera el siguiente número de acopio de un periodo con la
// estrategia max-parse: consulta el mayor número existente del año, extrae la
// secuencia y suma uno.
//
// Leer el máximo y escribir no es atómico por sí solo: dos procesos pueden
// leer el mismo máximo antes de que cualquiera escriba. La unicidad real la
// garantiza el índice único sobre numero_acopio más el reintento del caso de
// uso ante domain.ErrDuplicado; el numerador solo propone el candidato.
type Numerador struct {
	prefijo string
	log     *logger.Logger
}

// NewNumerador construye el numerador con el prefijo del despliegue (ej. ACO).
func NewNumerador(prefijo string, log *logger.Logger) *Numerador {
	return &Numerador{prefijo: prefijo, log: log}
}

// Siguiente propone el siguiente número del periodo: PREFIJO-AÑO-NNNN con la
// secuencia en 4 dígitos, 1-indexada por año. Un máximo ilegible no tumba la
// operación: se registra la advertencia y se arranca en 1. Si la secuencia
// supera 9999 retorna domain.ErrPeriodoAgotado (no reintentable).
func (n *Numerador) Siguiente(repo repository.AcopioRepository, año int) (string, error) {
	patron := fmt.Sprintf("%s-%d-%%", n.prefijo, año)
	max, err := repo.FindMaxNumero(patron)
	if err != nil {
		return "", fmt.Errorf("consultar máximo número de acopio: %w", err)
	}

	secuencia := int64(1)
	if max != "" {
		if parseada, ok := n.parsearSecuencia(max); ok {
			secuencia = parseada + 1
		}
	}
	if secuencia > MaxSecuenciaPeriodo {
		return "", fmt.Errorf("%w: periodo %d con prefijo %s", domain.ErrPeriodoAgotado, año, n.prefijo)
	}
	return n.Formatear(año, secuencia), nil
}

// Formatear arma el número PREFIJO-AÑO-NNNN.
func (n *Numerador) Formatear(año int, secuencia int64) string {
	return fmt.Sprintf("%s-%d-%04d", n.prefijo, año, secuencia)
}

func (n *Numerador) parsearSecuencia(numero string) (int64, bool) {
	partes := strings.Split(numero, "-")
	if len(partes) != 3 {
		n.log.Warn().Str("numero", numero).Msg("número de acopio con formato inesperado, se reinicia en 1")
		return 0, false
	}
	secuencia, err := strconv.ParseInt(partes[2], 10, 64)
	if err != nil {
		n.log.Warn().Str("numero", numero).Msg("no se pudo parsear la secuencia del número de acopio")
		return 0, false
	}
	return secuencia, true
}
