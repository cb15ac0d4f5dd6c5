package printing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysacopio/acopio-api/internal/domain"
)

func TestSelectorConsola(t *testing.T) {
	var out strings.Builder
	s := NewSelectorConsola(strings.NewReader("2\n"), &out)

	elegida, err := s.Seleccionar(context.Background(), []string{"HP-LaserJet", "EPSON-TM20"})
	require.NoError(t, err)
	assert.Equal(t, "EPSON-TM20", elegida)
	assert.Contains(t, out.String(), "1) HP-LaserJet")
	assert.Contains(t, out.String(), "2) EPSON-TM20")
}

func TestSelectorConsolaFueraDeRango(t *testing.T) {
	var out strings.Builder
	s := NewSelectorConsola(strings.NewReader("9\n"), &out)

	_, err := s.Seleccionar(context.Background(), []string{"HP-LaserJet"})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestSelectorConsolaSinImpresoras(t *testing.T) {
	var out strings.Builder
	s := NewSelectorConsola(strings.NewReader(""), &out)

	_, err := s.Seleccionar(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrImpresoraNoEncontrada)
}
