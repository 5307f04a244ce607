package cli

// -----------------------------------------------------------------------------
// serve.go – HTTP façade over the kernel
// -----------------------------------------------------------------------------
// Commands exposed after `RegisterServe(rootCmd)`:
//   ~serve [--addr :8082]
// -----------------------------------------------------------------------------

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"poskernel/core"
	"poskernel/posserver/controllers"
	"poskernel/posserver/routes"
	"poskernel/posserver/services"
)

func serveHandleRun(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = posCfg.Server.Addr
	}

	svc := services.NewService(core.Default())
	ctrl := controllers.NewTransactionController(svc)
	r := mux.NewRouter()
	routes.Register(r, ctrl, core.Default())

	logrus.Infof("pos server listening on %s (terminal %s)", addr, posCfg.Terminal.ID)
	return http.ListenAndServe(addr, r)
}

var serveCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "serve",
		Short:             "Serve the HTTP façade over the kernel",
		PersistentPreRunE: posInitMiddleware,
		RunE:              serveHandleRun,
	}
	cmd.Flags().String("addr", "", "listen address (default from config)")
	return cmd
}()

// RegisterServe attaches the serve command to the CLI root.
func RegisterServe(root *cobra.Command) { root.AddCommand(serveCmd) }
