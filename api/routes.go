package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	accounthandler "github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	transferhandler "github.com/carson-networks/ledger-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("ledger-server", "1.0.0"))

	accounthandler.NewRegisterAccountHandler(r.Service.Account).Register(humaAPI)
	accounthandler.NewGetBalanceHandler(r.Service.Account).Register(humaAPI)
	accounthandler.NewValidateAccountHandler(r.Service.Account).Register(humaAPI)
	accounthandler.NewRenameAccountHandler(r.Service.Account).Register(humaAPI)

	transferhandler.NewDirectTransferHandler(r.Service.Transfer).Register(humaAPI)
	transferhandler.NewInitiateTransferHandler(r.Service.Transfer).Register(humaAPI)
	transferhandler.NewConfirmTransferHandler(r.Service.Transfer).Register(humaAPI)
	transferhandler.NewCancelTransferHandler(r.Service.Transfer).Register(humaAPI)
	transferhandler.NewHistoryHandler(r.Service.Transfer).Register(humaAPI)
	transferhandler.NewGetTransferHandler(r.Service.Transfer).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
