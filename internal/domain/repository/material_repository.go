package repository

import "github.com/sysacopio/acopio-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material.
type MaterialRepository interface {
	Create(m *entity.Material) error
	GetByID(id int64) (*entity.Material, error)
	List(soloActivos bool) ([]*entity.Material, error)
	Count() (int64, error)
}
