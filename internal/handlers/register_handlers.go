package handlers

import (
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/zenledger/ledger_backend/internal/core/services"
)

// Services bundles everything the HTTP layer needs.
type Services struct {
	Account   *services.AccountService
	Currency  *services.CurrencyService
	Journal   *services.JournalService
	Reporting *services.ReportingService
	Favorite  *services.FavoriteService
	Backup    *services.BackupService
	Setting   *services.SettingService
}

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, svc *Services) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, svc.Account)
	registerCurrencyRoutes(v1, svc.Currency)
	registerJournalRoutes(v1, svc.Journal)
	registerReportingRoutes(v1, svc.Reporting)
	registerFavoriteRoutes(v1, svc.Favorite)
	registerBackupRoutes(v1, svc.Backup)
	registerSettingRoutes(v1, svc.Setting)
}

// registerValidators teaches the binding validator about decimal.Decimal so
// tags like gt=0 work on monetary request fields.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}
