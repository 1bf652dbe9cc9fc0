package api

import (
	"context"
	"net/http"
	"sync"

	"clothing-store/bootstrap"
	"clothing-store/config"
	_ "clothing-store/docs"

	"github.com/gin-gonic/gin"
)

var (
	app     *bootstrap.App
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		app, initErr = bootstrap.New(context.Background(), cfg, config.NewLogger(cfg))
	})
}

// Handler is the serverless entry point. The app is built on the first
// request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"error":"Service unavailable"}`))
		return
	}
	app.Router.ServeHTTP(w, r)
}

