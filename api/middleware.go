package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fopmanager/fop-api/internal/models"
	"github.com/fopmanager/fop-api/internal/utils"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)

func initMetrics() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration)
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Logger logs every request with its duration and status
func (app *application) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		app.infoLog.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, duration)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path).Observe(duration.Seconds())
	})
}

// Authenticate validates the bearer token and stores the claims in the context
func (app *application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, models.Response{
				Error:   true,
				Status:  "failed",
				Message: "missing or malformed Authorization header",
			})
			return
		}

		user, err := utils.ParseJWT(strings.TrimPrefix(header, "Bearer "), app.config.JWT)
		if err != nil {
			app.errorLog.Println("ERROR_01_Authenticate:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, models.Response{
				Error:   true,
				Status:  "failed",
				Message: "invalid or expired token",
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}

// RequireAdmin gates admin-only routes. Runs after Authenticate.
func (app *application) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := utils.GetUser(r)
		if user == nil || user.Role != models.RoleAdmin {
			utils.WriteJSON(w, http.StatusForbidden, models.Response{
				Error:   true,
				Status:  "failed",
				Message: "admin role required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
