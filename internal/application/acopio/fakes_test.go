package acopio

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

// fakeAcopioRepo es un repositorio en memoria que replica la semántica del
// índice único sobre numero_acopio.
type fakeAcopioRepo struct {
	mu        sync.Mutex
	seq       int64
	acopios   map[int64]*entity.Acopio
	detalles  map[int64][]*entity.AcopioDetalle
	numeros   map[string]int64
	errCreate []error // se consumen uno por llamada a Create, antes de insertar
}

func newFakeAcopioRepo() *fakeAcopioRepo {
	return &fakeAcopioRepo{
		acopios:  make(map[int64]*entity.Acopio),
		detalles: make(map[int64][]*entity.AcopioDetalle),
		numeros:  make(map[string]int64),
	}
}

func (r *fakeAcopioRepo) Create(a *entity.Acopio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errCreate) > 0 {
		err := r.errCreate[0]
		r.errCreate = r.errCreate[1:]
		return err
	}
	if _, existe := r.numeros[a.NumeroAcopio]; existe {
		return domain.ErrDuplicado
	}
	r.seq++
	a.ID = r.seq
	copia := *a
	r.acopios[a.ID] = &copia
	r.numeros[a.NumeroAcopio] = a.ID
	return nil
}

func (r *fakeAcopioRepo) CreateDetalle(d *entity.AcopioDetalle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *d
	r.detalles[d.AcopioID] = append(r.detalles[d.AcopioID], &copia)
	return nil
}

func (r *fakeAcopioRepo) Update(a *entity.Acopio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.acopios[a.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *a
	r.acopios[a.ID] = &copia
	return nil
}

func (r *fakeAcopioRepo) GetByID(id int64) (*entity.Acopio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.acopios[id]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}

func (r *fakeAcopioRepo) GetDetalles(acopioID int64) ([]*entity.AcopioDetalle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.AcopioDetalle(nil), r.detalles[acopioID]...), nil
}

func (r *fakeAcopioRepo) List() ([]*entity.Acopio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	todos := make([]*entity.Acopio, 0, len(r.acopios))
	for _, a := range r.acopios {
		copia := *a
		todos = append(todos, &copia)
	}
	return todos, nil
}

func (r *fakeAcopioRepo) ListByProveedor(proveedorID int64) ([]*entity.Acopio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*entity.Acopio
	for _, a := range r.acopios {
		if a.ProveedorID == proveedorID {
			copia := *a
			res = append(res, &copia)
		}
	}
	return res, nil
}

func (r *fakeAcopioRepo) ListByFechas(inicio, fin time.Time) ([]*entity.Acopio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*entity.Acopio
	for _, a := range r.acopios {
		if !a.FechaAcopio.Before(inicio) && a.FechaAcopio.Before(fin) {
			copia := *a
			res = append(res, &copia)
		}
	}
	return res, nil
}

func (r *fakeAcopioRepo) FindMaxNumero(patron string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefijo := strings.TrimSuffix(patron, "%")
	max := ""
	for numero := range r.numeros {
		if strings.HasPrefix(numero, prefijo) && numero > max {
			max = numero
		}
	}
	return max, nil
}

func (r *fakeAcopioRepo) CountByFechas(inicio, fin time.Time) (int64, error) {
	lista, _ := r.ListByFechas(inicio, fin)
	return int64(len(lista)), nil
}

// sembrarNumero registra un numero_acopio existente sin pasar por Create.
func (r *fakeAcopioRepo) sembrarNumero(numero string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.numeros[numero] = r.seq
}

type fakeHistorialRepo struct {
	mu        sync.Mutex
	movs      []*entity.HistorialMovimiento
	errCreate error
}

func (r *fakeHistorialRepo) Create(mov *entity.HistorialMovimiento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errCreate != nil {
		return r.errCreate
	}
	copia := *mov
	r.movs = append(r.movs, &copia)
	return nil
}

func (r *fakeHistorialRepo) List() ([]*entity.HistorialMovimiento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.HistorialMovimiento(nil), r.movs...), nil
}

func (r *fakeHistorialRepo) ListByUsuario(string) ([]*entity.HistorialMovimiento, error) {
	return r.List()
}

func (r *fakeHistorialRepo) ListByModulo(string) ([]*entity.HistorialMovimiento, error) {
	return r.List()
}

func (r *fakeHistorialRepo) ListByFechas(time.Time, time.Time) ([]*entity.HistorialMovimiento, error) {
	return r.List()
}

type fakeProveedorRepo struct {
	proveedores map[int64]*entity.Proveedor
}

func newFakeProveedorRepo(ps ...*entity.Proveedor) *fakeProveedorRepo {
	r := &fakeProveedorRepo{proveedores: make(map[int64]*entity.Proveedor)}
	for _, p := range ps {
		r.proveedores[p.ID] = p
	}
	return r
}

func (r *fakeProveedorRepo) Create(p *entity.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *fakeProveedorRepo) GetByID(id int64) (*entity.Proveedor, error) {
	return r.proveedores[id], nil
}

func (r *fakeProveedorRepo) GetByDocumento(doc string) (*entity.Proveedor, error) {
	for _, p := range r.proveedores {
		if p.NumeroDocumento == doc {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProveedorRepo) List(bool) ([]*entity.Proveedor, error) {
	var res []*entity.Proveedor
	for _, p := range r.proveedores {
		res = append(res, p)
	}
	return res, nil
}

func (r *fakeProveedorRepo) Update(p *entity.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

// fakeTxRunner serializa las transacciones y revierte los repos mediante
// snapshot si la función falla, imitando el commit/rollback real.
type fakeTxRunner struct {
	mu sync.Mutex
	a  *fakeAcopioRepo
	h  *fakeHistorialRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	acopioRepo repository.AcopioRepository,
	historialRepo repository.HistorialRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	sa := t.snapshotAcopios()
	sh := append([]*entity.HistorialMovimiento(nil), t.h.movs...)
	if err := fn(t.a, t.h); err != nil {
		t.restoreAcopios(sa)
		t.h.movs = sh
		return err
	}
	return nil
}

type acopioSnapshot struct {
	seq      int64
	acopios  map[int64]*entity.Acopio
	detalles map[int64][]*entity.AcopioDetalle
	numeros  map[string]int64
}

func (t *fakeTxRunner) snapshotAcopios() acopioSnapshot {
	t.a.mu.Lock()
	defer t.a.mu.Unlock()
	s := acopioSnapshot{
		seq:      t.a.seq,
		acopios:  make(map[int64]*entity.Acopio, len(t.a.acopios)),
		detalles: make(map[int64][]*entity.AcopioDetalle, len(t.a.detalles)),
		numeros:  make(map[string]int64, len(t.a.numeros)),
	}
	for k, v := range t.a.acopios {
		s.acopios[k] = v
	}
	for k, v := range t.a.detalles {
		s.detalles[k] = v
	}
	for k, v := range t.a.numeros {
		s.numeros[k] = v
	}
	return s
}

func (t *fakeTxRunner) restoreAcopios(s acopioSnapshot) {
	t.a.mu.Lock()
	defer t.a.mu.Unlock()
	t.a.seq = s.seq
	t.a.acopios = s.acopios
	t.a.detalles = s.detalles
	t.a.numeros = s.numeros
}
