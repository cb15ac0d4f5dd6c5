package printing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain"
)

var _ report.SelectorImpresora = (*SelectorConsola)(nil)

// SelectorConsola implementa el diálogo de selección en la consola del
// proceso: lista las impresoras numeradas y lee la elección. Es el paso no
// determinista de la impresión con diálogo; el resto del pipeline no sabe que
// hubo un humano.
type SelectorConsola struct {
	in  io.Reader
	out io.Writer
}

// NewSelectorConsola construye el selector sobre los streams dados
// (normalmente os.Stdin y os.Stdout).
func NewSelectorConsola(in io.Reader, out io.Writer) *SelectorConsola {
	return &SelectorConsola{in: in, out: out}
}

// Seleccionar muestra la lista y devuelve la impresora elegida.
func (s *SelectorConsola) Seleccionar(ctx context.Context, disponibles []string) (string, error) {
	if len(disponibles) == 0 {
		return "", fmt.Errorf("%w: no hay impresoras para elegir", domain.ErrImpresoraNoEncontrada)
	}

	fmt.Fprintln(s.out, "Impresoras disponibles:")
	for i, nombre := range disponibles {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, nombre)
	}
	fmt.Fprintf(s.out, "Elegir [1-%d]: ", len(disponibles))

	type respuesta struct {
		eleccion string
		err      error
	}
	ch := make(chan respuesta, 1)
	go func() {
		linea, err := bufio.NewReader(s.in).ReadString('\n')
		if err != nil {
			ch <- respuesta{err: fmt.Errorf("leer elección: %w", err)}
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(linea))
		if err != nil || n < 1 || n > len(disponibles) {
			ch <- respuesta{err: fmt.Errorf("%w: elección fuera de rango", domain.ErrEntradaInvalida)}
			return
		}
		ch <- respuesta{eleccion: disponibles[n-1]}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.eleccion, r.err
	}
}
