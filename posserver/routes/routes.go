package routes

import (
	"github.com/gorilla/mux"

	"poskernel/core"
	"poskernel/posserver/controllers"
	"poskernel/posserver/middleware"
)

func Register(r *mux.Router, tc *controllers.TransactionController, reg *core.Registry) {
	r.Use(middleware.RequestLogger(reg))
	r.HandleFunc("/api/version", tc.Version).Methods("GET")
	r.HandleFunc("/api/terminal", tc.Terminal).Methods("GET")
	r.HandleFunc("/api/tx", tc.Begin).Methods("POST")
	r.HandleFunc("/api/tx/{handle}", tc.Close).Methods("DELETE")
	r.HandleFunc("/api/tx/{handle}/lines", tc.AddLine).Methods("POST")
	r.HandleFunc("/api/tx/{handle}/lines", tc.Lines).Methods("GET")
	r.HandleFunc("/api/tx/{handle}/lines/void", tc.VoidLine).Methods("POST")
	r.HandleFunc("/api/tx/{handle}/lines/modify", tc.ModifyLine).Methods("POST")
	r.HandleFunc("/api/tx/{handle}/tender", tc.Tender).Methods("POST")
	r.HandleFunc("/api/tx/{handle}/void", tc.Void).Methods("POST")
	r.HandleFunc("/api/tx/{handle}/totals", tc.Totals).Methods("GET")
}
