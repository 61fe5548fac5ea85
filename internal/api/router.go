package api

import (
	"net/http"

	"github.com/AlexZinkM/hd-derive/derive"
	_ "github.com/AlexZinkM/hd-derive/docs" // registers the swagger document
	"github.com/AlexZinkM/hd-derive/internal/handler"
	"github.com/AlexZinkM/hd-derive/internal/model"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(d derive.Deriver, secret model.MasterSecret, numDerive int) (http.Handler, error) {
	deriveHandler, err := handler.NewDeriveHandler(d, secret, numDerive)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Derivation endpoints
	mux.HandleFunc("/derive", deriveHandler.Derive)
	mux.HandleFunc("/coins", deriveHandler.Coins)
	mux.HandleFunc("/healthz", deriveHandler.Health)

	return mux, nil
}
