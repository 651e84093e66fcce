package api

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kc0bfv/power-sensor-monitor/api/resources"
	nuts "github.com/vaudience/go-nuts"
)

type Router struct {
	router    *mux.Router
	handler   http.Handler
	resources *resources.Resources
	urlBase   string
}

// NewRouter wires every route. Access logs in combined format go to
// accessLog; a nil writer disables them.
func NewRouter(res *resources.Resources, urlBase string, accessLog io.Writer) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: res,
		urlBase:   urlBase,
	}

	r.setupRoutes()

	var h http.Handler = r.router
	if accessLog != nil {
		h = handlers.CombinedLoggingHandler(accessLog, h)
	}
	r.handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(h)
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	v1 := r.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/health", r.resources.System.Health).Methods(http.MethodGet)
	v1.HandleFunc("/metrics", r.resources.System.Metrics).Methods(http.MethodGet)
	v1.HandleFunc("/swagger.json", r.resources.System.Swagger).Methods(http.MethodGet)

	// Sample catcher
	hook := r.router.PathPrefix("/" + r.urlBase).Subrouter()
	hook.HandleFunc("/get/{key}", r.resources.Webhook.History).Methods(http.MethodGet)
	hook.HandleFunc("/{key}", r.resources.Webhook.Catch).Methods(http.MethodPost)

	// Dashboard
	r.router.HandleFunc("/dashboard", r.resources.Dashboard.Shim).Methods(http.MethodGet)
	r.router.HandleFunc("/dashboard/", r.resources.Dashboard.Shim).Methods(http.MethodGet)
	dash := r.router.PathPrefix("/dashboard").Subrouter()
	dash.HandleFunc("/{key}", r.resources.Dashboard.Page).Methods(http.MethodGet)
	dash.HandleFunc("/{key}/charts/{chart:[a-z_]+}.png", r.resources.Dashboard.Chart).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	nuts.L.Errorf("[Router] Recovered from panic: %v", v)
}
