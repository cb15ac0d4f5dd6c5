package repository

import "github.com/sysacopio/acopio-api/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia para Proveedor.
type ProveedorRepository interface {
	Create(p *entity.Proveedor) error
	GetByID(id int64) (*entity.Proveedor, error)
	GetByDocumento(numeroDocumento string) (*entity.Proveedor, error)
	List(soloActivos bool) ([]*entity.Proveedor, error)
	Update(p *entity.Proveedor) error
}
