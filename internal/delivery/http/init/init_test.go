package http_init

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

type ControllerPoolSuite struct {
	suite.Suite
}

func (s *ControllerPoolSuite) BeforeEach(t provider.T) {
	gin.SetMode(gin.TestMode)
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (s *ControllerPoolSuite) TestRegister(t provider.T) {
	t.Run("Should mount controllers at root by default", func(t provider.T) {
		pool := NewControllerPool()
		pool.Add(pingController{})
		pool.Register()

		assert.Equal(t, "pong", serve(pool.Handler(), "/ping").Body.String())
		assert.JSONEq(t, `{"status":"ok"}`, serve(pool.Handler(), "/healthz").Body.String())
	})

	t.Run("Should honour prefix", func(t provider.T) {
		pool := NewControllerPool(WithPrefix("/api"))
		pool.Add(pingController{})
		pool.Register()

		assert.Equal(t, http.StatusOK, serve(pool.Handler(), "/api/ping").Code)
		assert.Equal(t, http.StatusNotFound, serve(pool.Handler(), "/ping").Code)
	})

	t.Run("Should apply handler wrapper", func(t provider.T) {
		wrapped := false
		pool := NewControllerPool(WithHandlerWrapper(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				wrapped = true
				next.ServeHTTP(w, r)
			})
		}))
		pool.Register()

		serve(pool.Handler(), "/healthz")
		assert.True(t, wrapped)
	})
}

func TestControllerPoolSuite(t *testing.T) {
	suite.RunSuite(t, new(ControllerPoolSuite))
}
