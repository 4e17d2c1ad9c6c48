package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// seedDemo fills the in-memory store with one shop's worth of data and logs a
// token per role so the API can be tried without an identity provider.
func seedDemo(store *memory.Store, cfg *config.Config, clock timezone.Clock) {
	admin := store.PutUser(models.User{Name: "Admin", Email: "admin@barbershop.local", Role: models.RoleAdmin, Active: true})
	customer := store.PutUser(models.User{Name: "Cliente Demo", Email: "cliente@barbershop.local", Role: models.RoleUser, Active: true})

	var firstBarberUser models.User
	for i, name := range []string{"Andrés", "Camilo", "Julián"} {
		u := store.PutUser(models.User{Name: name, Email: name + "@barbershop.local", Role: models.RoleBarber, Active: true})
		b := store.PutBarber(models.Barber{UserID: u.ID, Name: name, Active: true, Featured: i == 0})
		if i == 0 {
			firstBarberUser = u
		}

		var week []models.WorkingHours
		for day := time.Monday; day <= time.Saturday; day++ {
			wh := models.WorkingHours{Weekday: int(day), StartTime: "08:00", EndTime: "19:00", LunchStart: "12:00", LunchEnd: "13:00", Active: true}
			if day == time.Saturday {
				wh.EndTime, wh.LunchStart, wh.LunchEnd = "14:00", "", ""
			}
			week = append(week, wh)
		}
		if err := store.ReplaceWorkingHours(context.Background(), b.ID, week); err != nil {
			log.Error().Err(err).Str("barber", name).Msg("demo working hours rejected")
		}
	}

	store.PutService(models.Service{Name: "Corte clásico", DurationMin: 30, Price: 25000, Active: true})
	store.PutService(models.Service{Name: "Corte + barba", DurationMin: 60, Price: 40000, Active: true})
	store.PutService(models.Service{Name: "Arreglo de barba", DurationMin: 30, Price: 18000, Active: true})

	for _, a := range []struct {
		label string
		who   actor.Actor
	}{
		{"admin", actor.Actor{ID: admin.ID, Role: actor.RoleAdmin}},
		{"barber", actor.Actor{ID: firstBarberUser.ID, Role: actor.RoleBarber}},
		{"user", actor.Actor{ID: customer.ID, Role: actor.RoleUser}},
	} {
		token, err := middleware.IssueToken(cfg.JWT.Secret, a.who, 24*time.Hour)
		if err != nil {
			log.Error().Err(err).Msg("failed to issue demo token")
			continue
		}
		log.Info().Str("role", a.label).Str("token", token).Msg("demo token")
	}

	log.Info().Time("now", clock.Now()).Str("timezone", clock.Location().String()).Msg("demo data seeded")
}
