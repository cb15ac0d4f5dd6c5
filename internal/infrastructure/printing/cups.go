// Package printing implementa el servicio de impresión sobre CUPS usando los
// comandos lpstat y lp del sistema.
package printing

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

var _ report.ServicioImpresion = (*CUPS)(nil)

// CUPS habla con el spooler local. Enumerar y consultar la predeterminada
// usan lpstat; imprimir escribe el PDF a un archivo temporal y lo envía con lp.
type CUPS struct {
	log *logger.Logger
}

// NewCUPS construye el servicio.
func NewCUPS(log *logger.Logger) *CUPS {
	return &CUPS{log: log}
}

// ListarImpresoras enumera las impresoras instaladas (lpstat -e).
func (c *CUPS) ListarImpresoras() ([]string, error) {
	out, err := exec.Command("lpstat", "-e").Output()
	if err != nil {
		return nil, fmt.Errorf("lpstat -e: %w", err)
	}
	var impresoras []string
	for _, linea := range strings.Split(string(out), "\n") {
		if nombre := strings.TrimSpace(linea); nombre != "" {
			impresoras = append(impresoras, nombre)
		}
	}
	return impresoras, nil
}

// ImpresoraPredeterminada consulta la predeterminada del sistema (lpstat -d).
// Retorna "" sin error si no hay ninguna configurada.
func (c *CUPS) ImpresoraPredeterminada() (string, error) {
	out, err := exec.Command("lpstat", "-d").Output()
	if err != nil {
		return "", fmt.Errorf("lpstat -d: %w", err)
	}
	// Salida esperada: "system default destination: <nombre>" o
	// "no system default destination".
	salida := strings.TrimSpace(string(out))
	if idx := strings.LastIndex(salida, ": "); idx >= 0 {
		return strings.TrimSpace(salida[idx+2:]), nil
	}
	return "", nil
}

// Imprimir envía el PDF a la impresora nombrada vía lp.
func (c *CUPS) Imprimir(ctx context.Context, impresora string, pdf []byte) error {
	tmp, err := os.CreateTemp("", "voucher-*.pdf")
	if err != nil {
		return fmt.Errorf("crear archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir PDF temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar PDF temporal: %w", err)
	}

	cmd := exec.CommandContext(ctx, "lp", "-d", impresora, tmp.Name())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("lp -d %s: %w: %s", impresora, err, strings.TrimSpace(stderr.String()))
	}
	c.log.Info().Str("impresora", impresora).Int("bytes", len(pdf)).Msg("trabajo enviado al spooler")
	return nil
}
