package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"poskernel/core"
	"poskernel/posserver/config"
	"poskernel/posserver/controllers"
	"poskernel/posserver/routes"
	"poskernel/posserver/services"
)

func main() {
	if err := config.Load(); err != nil {
		logrus.Fatal(err)
	}
	svc := services.NewService(core.Default())
	if err := svc.InitializeTerminal(config.AppConfig.TerminalID); err != nil {
		logrus.Fatal(err)
	}
	ctrl := controllers.NewTransactionController(svc)

	r := mux.NewRouter()
	routes.Register(r, ctrl, core.Default())

	logrus.Infof("pos server listening on %s (terminal %s)", config.AppConfig.Addr, config.AppConfig.TerminalID)
	if err := http.ListenAndServe(config.AppConfig.Addr, r); err != nil {
		logrus.Fatal(err)
	}
}
