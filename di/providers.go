package di

import (
	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/shared/cache"
	"lodge/shared/constant"

	bookingRepository "lodge/internal/domains/booking/repository"
	roomRepository "lodge/internal/domains/room/repository"
	wizardRepository "lodge/internal/domains/wizard/repository"
)

// ProvidePostgres connects to postgres only when it backs the stores. The
// in-memory backing runs without a database.
func ProvidePostgres(cfg *config.Config) *postgres.Connection {
	if cfg.Store.Backend == constant.StoreBackendMemory {
		return nil
	}

	return postgres.New(cfg)
}

func ProvideRoomRepository(cfg *config.Config, db *postgres.Connection, ot otel.Otel) roomRepository.Room {
	if cfg.Store.Backend == constant.StoreBackendMemory {
		return roomRepository.NewMemory()
	}

	return roomRepository.New(db, ot)
}

func ProvideBookingRepository(cfg *config.Config, db *postgres.Connection, ot otel.Otel) bookingRepository.Booking {
	if cfg.Store.Backend == constant.StoreBackendMemory {
		return bookingRepository.NewMemory()
	}

	return bookingRepository.New(db, ot)
}

func ProvideSessionStore(cfg *config.Config, redisCache cache.RedisCache) wizardRepository.SessionStore {
	if cfg.Store.Session == constant.SessionStoreMemory {
		return wizardRepository.NewMemory(cfg)
	}

	return wizardRepository.NewRedis(redisCache, cfg)
}
