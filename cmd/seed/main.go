// seed prepara el esquema y los datos mínimos para operar: el usuario
// administrador y el material Oro. Es idempotente: correr dos veces no
// duplica nada.
//
// Uso: go run ./cmd/seed
// El password del admin se toma de SEED_ADMIN_PASSWORD (default "admin123").
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sysacopio/acopio-api/internal/application/auth"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/infrastructure/postgres"
	"github.com/sysacopio/acopio-api/pkg/config"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("preparar esquema")
	}

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	existe, err := usuarioRepo.ExistsByUsername("admin")
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuario admin")
	}
	if existe {
		log.Info().Msg("usuario admin ya existe, se omite")
	} else {
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password del admin")
		}
		admin := &entity.Usuario{
			ID:             uuid.New().String(),
			Username:       "admin",
			PasswordHash:   hash,
			NombreCompleto: "Administrador del Sistema",
			Rol:            entity.RolAdmin,
			Activo:         true,
			FechaCreacion:  time.Now(),
		}
		if err := usuarioRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear usuario admin")
		}
		log.Info().Str("username", admin.Username).Msg("usuario admin creado")
	}

	materialRepo := postgres.NewMaterialRepository(pool)
	total, err := materialRepo.Count()
	if err != nil {
		log.Fatal().Err(err).Msg("contar materiales")
	}
	if total > 0 {
		log.Info().Int64("materiales", total).Msg("catálogo de materiales ya poblado, se omite")
	} else {
		oro := &entity.Material{
			Nombre:      "Oro",
			Descripcion: "Mineral aurífero en bruto",
			Activo:      true,
		}
		if err := materialRepo.Create(oro); err != nil {
			log.Fatal().Err(err).Msg("crear material Oro")
		}
		log.Info().Int64("id", oro.ID).Msg("material Oro creado")
	}

	log.Info().Msg("seed completado")
}
